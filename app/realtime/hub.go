package realtime

import (
	"log/slog"
	"sync"
)

// Subscriber is a connected viewer that can receive events. Send must not
// block: a subscriber that cannot accept the event reports failure and is
// removed from the hub.
type Subscriber interface {
	Send(ev Event) bool
	Close()
}

// Hub fans out events to all connected viewer sessions. Delivery is
// best-effort: no acknowledgment, no retry, no backlog. A viewer that is
// disconnected (or too slow to drain its buffer) simply misses updates.
type Hub struct {
	mu       sync.Mutex
	sessions map[Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[Subscriber]struct{})}
}

func (h *Hub) Add(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s] = struct{}{}
}

func (h *Hub) Remove(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s)
}

// Publish delivers the event to every connected session. Sessions whose
// send fails are dropped. Publishing with zero sessions is a no-op.
func (h *Hub) Publish(name string, data any) {
	ev := Event{Name: name, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.sessions {
		if !s.Send(ev) {
			slog.Warn("dropping slow viewer session", "event", name)
			delete(h.sessions, s)
			s.Close()
		}
	}
}

// Count returns the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}
