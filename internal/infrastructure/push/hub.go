// Package push holds the in-process session registry for the real-time
// notification channel. Sessions are keyed by the authenticated email; one
// identity may hold several simultaneous sessions and a delivery fans out to
// all of them. Missed deliveries are acceptable: the persisted notification
// record is the durable source of truth.
package push

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/staffhub/staffhub-api/internal/core/ports"
)

const sessionBuffer = 16

// Session is one live client connection's delivery queue.
type Session struct {
	ch chan ports.NotificationView
}

// C is the channel the connection handler drains.
func (s *Session) C() <-chan ports.NotificationView {
	return s.ch
}

// Hub tracks live sessions per identity and fans payloads out to them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Session]struct{}
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]map[*Session]struct{}),
		log:      log,
	}
}

// Register adds a session for the identity and returns it.
func (h *Hub) Register(email string) *Session {
	s := &Session{ch: make(chan ports.NotificationView, sessionBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[email] == nil {
		h.sessions[email] = make(map[*Session]struct{})
	}
	h.sessions[email][s] = struct{}{}
	return s
}

// Unregister removes the session. Safe to call with an already-removed session.
func (h *Hub) Unregister(email string, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.sessions[email]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.sessions, email)
		}
	}
}

// Deliver sends the payload to every live session of the identity without
// blocking. A session whose buffer is full is skipped: at-most-once per
// connection, no retry.
func (h *Hub) Deliver(email string, payload ports.NotificationView) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.sessions[email] {
		select {
		case s.ch <- payload:
		default:
			h.log.Debug().Str("email", email).Msg("session buffer full, push dropped")
		}
	}
}

// Sessions reports the number of live sessions for the identity.
func (h *Hub) Sessions(email string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[email])
}

// PubSubMessage is the subset of the redis message the hub consumes; an
// interface keeps the hub testable without a broker.
type PubSubMessage struct {
	Email   string
	Payload ports.NotificationView
}

// Run drains the bus channel into local sessions until ctx is cancelled.
func (h *Hub) Run(ctx context.Context, bus <-chan PubSubMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-bus:
			if !ok {
				return
			}
			h.Deliver(msg.Email, msg.Payload)
		}
	}
}
