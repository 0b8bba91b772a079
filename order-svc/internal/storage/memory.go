package storage

import (
	"context"
	"sync"

	"food-delivery/order-svc/internal/domain"
)

// MemorySessionStore is the in-process session backend. Sessions live for
// the lifetime of the process and are never evicted.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.Session)}
}

func (s *MemorySessionStore) Get(_ context.Context, userID string) (domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return session, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[userID]; ok {
		return session, nil
	}
	session = domain.NewSession(userID)
	s.sessions[userID] = session
	return session, nil
}

func (s *MemorySessionStore) Upsert(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	s.sessions[session.UserID] = session
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
