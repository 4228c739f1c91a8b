package flow

import (
	"context"
	"sync"
)

// History fetches and browses a user's past sessions. The detail view only
// ever shows what the list response embedded; there is no per-session fetch.
type History struct {
	backend Backend

	mu       sync.Mutex
	epoch    uint64
	loading  bool
	loaded   bool
	sessions []Session
	selected string
	errMsg   string
}

// HistorySnapshot is a read-only view of the retriever for rendering.
type HistorySnapshot struct {
	Loading  bool
	Loaded   bool
	Sessions []Session
	Selected *Session
	Err      string
}

func NewHistory(backend Backend) *History {
	return &History{backend: backend}
}

// Load issues the one list request. An identity that has not finished
// loading, or has no user, yields the explicit unloaded state: no request
// is sent. A failed request ends the loading indicator with an empty set
// and is not retried automatically.
func (h *History) Load(ctx context.Context, id Identity) error {
	if !id.Ready {
		return ErrIdentityNotReady
	}
	if id.UserID == "" {
		return ErrSignInRequired
	}

	h.mu.Lock()
	if h.loading {
		h.mu.Unlock()
		return ErrBusy
	}
	h.loading = true
	h.errMsg = ""
	h.epoch++
	epoch := h.epoch
	h.mu.Unlock()

	sessions, err := h.backend.ListInterviews(ctx, id.UserID)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.epoch != epoch {
		return nil
	}
	h.loading = false
	h.loaded = true

	if err != nil {
		h.sessions = nil
		h.errMsg = bannerMessage(err)
		return nil
	}

	h.sessions = sessions
	return nil
}

// Select drills into one listed session. Selection is local; the session's
// record is whatever the list embedded.
func (h *History) Select(sessionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.sessions {
		if s.ID == sessionID {
			h.selected = sessionID
			return true
		}
	}
	return false
}

// Deselect returns from the detail view to the list.
func (h *History) Deselect() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selected = ""
}

// Abandon invalidates an in-flight load; its response is dropped on arrival.
func (h *History) Abandon() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.epoch++
	h.loading = false
}

// Snapshot returns a copy of the current view state.
func (h *History) Snapshot() HistorySnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions := make([]Session, len(h.sessions))
	copy(sessions, h.sessions)

	var selected *Session
	if h.selected != "" {
		for i := range sessions {
			if sessions[i].ID == h.selected {
				selected = &sessions[i]
				break
			}
		}
	}

	return HistorySnapshot{
		Loading:  h.loading,
		Loaded:   h.loaded,
		Sessions: sessions,
		Selected: selected,
		Err:      h.errMsg,
	}
}
