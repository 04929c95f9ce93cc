package quiz

import (
	"sync"

	"learnhub/pkg/models"
)

// Store tracks the active session per user. A user runs at most one attempt
// at a time; starting a second one requires finishing or abandoning the
// first. Sessions are ephemeral so the store is purely in-memory.
type Store struct {
	mu     sync.RWMutex
	byUser map[string]*Session
}

func NewStore() *Store {
	return &Store{byUser: make(map[string]*Session)}
}

// Put registers a session for a user. Fails with ErrSessionActive while a
// prior session is still in play; finished or abandoned leftovers are
// replaced silently.
func (st *Store) Put(userID string, s *Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if existing, ok := st.byUser[userID]; ok {
		state := existing.State()
		if state == StateSelection || state == StateInProgress {
			return models.ErrSessionActive
		}
	}
	st.byUser[userID] = s
	return nil
}

// Get returns the user's current session.
func (st *Store) Get(userID string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.byUser[userID]
	return s, ok
}

// Delete drops the user's session, if any.
func (st *Store) Delete(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.byUser, userID)
}

// Remove drops the user's session only if it is still this exact instance.
// A finalizer holding a reference to an old session cannot evict a newer one
// that replaced it in the meantime.
func (st *Store) Remove(userID string, s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.byUser[userID] == s {
		delete(st.byUser, userID)
	}
}
