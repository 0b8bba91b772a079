package service

import (
	"context"
	"sync"

	"food-delivery/order-svc/internal/domain"
)

// SessionManager reads and patches chat sessions and serialises turns of the
// same user.
type SessionManager struct {
	store SessionStore
	locks *KeyedMutex
}

func NewSessionManager(store SessionStore) *SessionManager {
	return &SessionManager{store: store, locks: NewKeyedMutex()}
}

// Get returns the user's session, creating a default one on first use.
func (m *SessionManager) Get(ctx context.Context, userID string) (domain.Session, error) {
	return m.store.Get(ctx, userID)
}

// Update applies the patch to the stored session and returns the result.
// It takes the user's lock, so it must not be called while holding
// Lock(userID).
func (m *SessionManager) Update(ctx context.Context, userID string, patch domain.SessionPatch) (domain.Session, error) {
	unlock := m.locks.Lock(userID)
	defer unlock()

	session, err := m.store.Get(ctx, userID)
	if err != nil {
		return domain.Session{}, err
	}
	session.Apply(patch)
	if err := m.store.Upsert(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Save overwrites the stored session. Callers hold Lock(session.UserID).
func (m *SessionManager) Save(ctx context.Context, session domain.Session) error {
	return m.store.Upsert(ctx, session)
}

// Lock blocks until no other turn of userID is in progress. The returned
// function releases the lock.
func (m *SessionManager) Lock(userID string) func() {
	return m.locks.Lock(userID)
}

// KeyedMutex is a set of mutexes addressed by string. Entries are dropped
// once no goroutine holds or waits for them.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
