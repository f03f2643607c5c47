package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mo-shab/tutor/internal/middlewares"
	"github.com/mo-shab/tutor/internal/relay"
)

// Handler upgrades authenticated requests to a websocket and keeps the relay
// registry in sync with connection lifecycle.
type Handler struct {
	reg      *relay.Registry
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewHandler(reg *relay.Registry, allowedOrigin string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		reg: reg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Serve handles GET /ws. The socket is push-only: inbound frames are read and
// discarded, the read loop exists to detect close.
func (h *Handler) Serve(c *gin.Context) {
	userID := middlewares.Subject(c)

	wsConn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := relay.NewConn(wsConn)
	h.reg.Register(userID, conn)
	h.log.Info("user connected", zap.String("user_id", userID))

	defer func() {
		h.reg.Unregister(conn)
		_ = conn.Close()
		h.log.Info("user disconnected", zap.String("user_id", userID))
	}()

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			return
		}
	}
}
