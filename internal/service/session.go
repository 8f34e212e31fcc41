package service

import (
	"context"
	"fmt"
	"sync"
)

// SessionManager hands out one tracker session per user, loading the
// user's full snapshot from the store on first use. Sessions live for
// the process lifetime; the store is the durable copy.
type SessionManager struct {
	mu       sync.Mutex
	store    StoreGateway
	sessions map[uint]*TrackerService
}

func NewSessionManager(store StoreGateway) *SessionManager {
	return &SessionManager{
		store:    store,
		sessions: make(map[uint]*TrackerService),
	}
}

// Session returns the user's tracker, loading it on first access.
func (m *SessionManager) Session(ctx context.Context, userID uint) (*TrackerService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tracker, ok := m.sessions[userID]; ok {
		return tracker, nil
	}

	tracker := NewTrackerService(m.store, userID)
	if err := tracker.Load(ctx); err != nil {
		return nil, fmt.Errorf("tracker.Load -> %w", err)
	}
	m.sessions[userID] = tracker

	return tracker, nil
}

// Evict drops a user's in-memory session. Unsaved deferred-tier edits
// are lost, matching an unloaded browser tab.
func (m *SessionManager) Evict(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
