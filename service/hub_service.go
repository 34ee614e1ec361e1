package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kodekulture/taboo-server/game"
)

// gcCycle is how often finished and abandoned sessions are collected.
const gcCycle = 15 * time.Minute

// terminalLinger keeps finished sessions around long enough for clients to
// read the final state.
const terminalLinger = 15 * time.Minute

// hub is the registry of live sessions. Each session guards its own state;
// the hub only guards the map.
type hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*game.Session
	ended    map[uuid.UUID]time.Time
}

func newHub(ctx context.Context) *hub {
	h := &hub{
		sessions: make(map[uuid.UUID]*game.Session),
		ended:    make(map[uuid.UUID]time.Time),
	}
	go h.gc(ctx)
	return h
}

// GetSession returns the session with the given id and whether it was found.
func (h *hub) GetSession(id uuid.UUID) (*game.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// SetSession registers the session.
func (h *hub) SetSession(s *game.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID] = s
}

// DeleteSession removes the session with the given id.
func (h *hub) DeleteSession(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
	delete(h.ended, id)
}

func (h *hub) gc(ctx context.Context) {
	ticker := time.NewTicker(gcCycle)
	defer ticker.Stop()

	sweep := func() {
		var garbage []uuid.UUID
		now := time.Now()

		h.mu.Lock()
		defer h.mu.Unlock()
		for id, s := range h.sessions {
			if s.Status().Terminal() {
				endedAt, seen := h.ended[id]
				if !seen {
					h.ended[id] = now
					continue
				}
				if now.Sub(endedAt) >= terminalLinger {
					garbage = append(garbage, id)
				}
				continue
			}
			if now.Sub(s.CreatedAt) >= game.MaxDuration {
				garbage = append(garbage, id)
			}
		}
		for _, id := range garbage {
			delete(h.sessions, id)
			delete(h.ended, id)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
