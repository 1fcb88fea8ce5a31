// Package state holds short-lived per-user conversation state.
// Nothing here survives a process restart.
package state

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value V
	setAt time.Time
}

// Store is a concurrency-safe map from Telegram user ID to a conversation value.
// Every method is a single critical section, so check-and-remove is atomic.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[int64]entry[V]
	now     func() time.Time
}

// NewStore creates an empty store
func NewStore[V any]() *Store[V] {
	return &Store[V]{
		entries: make(map[int64]entry[V]),
		now:     time.Now,
	}
}

// Set stores value for the user, replacing any existing entry
func (s *Store[V]) Set(userID int64, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = entry[V]{value: value, setAt: s.now()}
}

// TryGet returns the user's value without removing it
func (s *Store[V]) TryGet(userID int64) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	return e.value, ok
}

// Take removes and returns the user's value.
// Of several concurrent callers, at most one gets ok == true.
func (s *Store[V]) Take(userID int64) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if ok {
		delete(s.entries, userID)
	}
	return e.value, ok
}

// Consume removes the user's entry and reports whether one was present
func (s *Store[V]) Consume(userID int64) bool {
	_, ok := s.Take(userID)
	return ok
}

// Clear removes the user's entry; no-op if absent
func (s *Store[V]) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

// Len returns the number of active entries
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Expire drops entries set more than maxAge ago and returns how many were dropped
func (s *Store[V]) Expire(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	removed := 0
	for userID, e := range s.entries {
		if e.setAt.Before(cutoff) {
			delete(s.entries, userID)
			removed++
		}
	}
	return removed
}
