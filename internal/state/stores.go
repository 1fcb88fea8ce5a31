package state

import (
	"time"

	"nastaran/internal/domain"
)

// IntentStore tracks a single-use "the next qualifying update continues this flow" flag.
// Enabling twice overwrites; intents never queue.
type IntentStore struct {
	store *Store[struct{}]
}

// NewIntentStore creates an empty intent store
func NewIntentStore() *IntentStore {
	return &IntentStore{store: NewStore[struct{}]()}
}

// Enable marks an intent as pending for the user
func (s *IntentStore) Enable(userID int64) {
	s.store.Set(userID, struct{}{})
}

// Pending reports whether an intent is set, without consuming it
func (s *IntentStore) Pending(userID int64) bool {
	_, ok := s.store.TryGet(userID)
	return ok
}

// Consume atomically checks and clears the intent.
// It returns true exactly once per Enable.
func (s *IntentStore) Consume(userID int64) bool {
	return s.store.Consume(userID)
}

// Clear drops any pending intent
func (s *IntentStore) Clear(userID int64) {
	s.store.Clear(userID)
}

// Expire drops intents older than maxAge
func (s *IntentStore) Expire(maxAge time.Duration) int {
	return s.store.Expire(maxAge)
}

// EditStore tracks which inspiration field a user's next text message replaces
type EditStore = Store[domain.EditContext]

// NewEditStore creates an empty edit context store
func NewEditStore() *EditStore {
	return NewStore[domain.EditContext]()
}

// Expirer is implemented by every store the janitor sweeps
type Expirer interface {
	Expire(maxAge time.Duration) int
}
