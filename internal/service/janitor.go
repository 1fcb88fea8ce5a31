package service

import (
	"time"

	"nastaran/internal/state"

	"go.uber.org/zap"
)

// StateJanitor drops conversation state that users abandoned
type StateJanitor struct {
	stores map[string]state.Expirer
	maxAge time.Duration
	logger *zap.Logger
}

// NewStateJanitor creates a janitor over the named stores
func NewStateJanitor(stores map[string]state.Expirer, maxAge time.Duration, logger *zap.Logger) *StateJanitor {
	return &StateJanitor{
		stores: stores,
		maxAge: maxAge,
		logger: logger,
	}
}

// Sweep expires stale entries in every store and returns the total removed
func (j *StateJanitor) Sweep() int {
	total := 0
	for name, store := range j.stores {
		removed := store.Expire(j.maxAge)
		if removed > 0 {
			j.logger.Info("Expired stale conversation state",
				zap.String("store", name),
				zap.Int("removed", removed),
				zap.Duration("max_age", j.maxAge),
			)
		}
		total += removed
	}
	return total
}
