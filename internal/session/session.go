package session

import "sync"

// Session is the per-connection record: the stable id the transport assigned,
// the display name set at join time, and the room the connection is bound to.
// It replaces ad hoc attributes hung off the connection object; other
// components never reach into it directly.
type Session struct {
	ID   string
	Name string
	Room string
}

// Registry maps connection ids to their session, for the lifetime of the
// connection only.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]Session{}}
}

// Bind records or overwrites the session for a connection id.
func (r *Registry) Bind(id, name, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = Session{ID: id, Name: name, Room: room}
}

func (r *Registry) Lookup(id string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Unbind(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
