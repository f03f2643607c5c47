package relay

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Event is the wire envelope pushed to clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Conn wraps a websocket connection with a write lock; gorilla allows only
// one concurrent writer.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) Send(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(Event{Event: event, Data: data})
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
