package relay

import (
	"go.uber.org/zap"

	"github.com/mo-shab/tutor/internal/domain"
)

// Event names pushed to clients.
const (
	EventNewMessage          = "newMessage"
	EventConversationUpdated = "conversationUpdated"
	EventForceLogout         = "forceLogout"
)

// Relay implements service.Notifier over the connection registry. Delivery is
// at-most-once: no connection means the event is dropped, and a failed write
// tears the connection down rather than retrying.
type Relay struct {
	reg *Registry
	log *zap.Logger
}

func New(reg *Registry, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{reg: reg, log: log}
}

func (r *Relay) NewMessage(userID string, msg *domain.Message) {
	r.push(userID, EventNewMessage, msg)
}

func (r *Relay) ConversationUpdated(userID string, view *domain.ConversationSummary) {
	r.push(userID, EventConversationUpdated, view)
}

func (r *Relay) ForceLogout(userID string) {
	r.push(userID, EventForceLogout, nil)
}

func (r *Relay) push(userID, event string, data any) {
	conn, ok := r.reg.Lookup(userID)
	if !ok {
		return
	}
	if err := conn.Send(event, data); err != nil {
		r.log.Debug("relay push failed, dropping connection",
			zap.String("user_id", userID), zap.String("event", event), zap.Error(err))
		r.reg.Unregister(conn)
		_ = conn.Close()
	}
}
