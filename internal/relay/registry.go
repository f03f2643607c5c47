package relay

import "sync"

// Registry maps a user id to their live connection. It is owned by the
// transport layer and injected where needed; entries are advisory
// (best-effort delivery), so last writer wins on reconnect.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Conn)}
}

// Register binds the user to a connection, replacing any previous entry.
func (r *Registry) Register(userID string, c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[userID] = c
}

// Unregister removes every entry referencing this connection. Scanning by
// connection (not user id) cleans up stale entries after a reconnect raced
// the old socket's close.
func (r *Registry) Unregister(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, conn := range r.conns {
		if conn == c {
			delete(r.conns, id)
		}
	}
}

func (r *Registry) Lookup(userID string) (*Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[userID]
	return c, ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
