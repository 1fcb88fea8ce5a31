package state

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nastaran/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestStore_SetTryGetClear(t *testing.T) {
	s := NewEditStore()

	_, ok := s.TryGet(1)
	assert.False(t, ok)

	s.Set(1, domain.EditContext{TargetID: "E1", Field: domain.EditContent})
	s.Set(1, domain.EditContext{TargetID: "E2", Field: domain.EditTags})

	ctx, ok := s.TryGet(1)
	require.True(t, ok)
	assert.Equal(t, "E2", ctx.TargetID)
	assert.Equal(t, domain.EditTags, ctx.Field)

	// lookup does not consume
	_, ok = s.TryGet(1)
	assert.True(t, ok)

	s.Clear(1)
	_, ok = s.TryGet(1)
	assert.False(t, ok)

	// clearing an absent entry is a no-op
	s.Clear(1)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Take(t *testing.T) {
	s := NewStore[string]()
	s.Set(5, "value")

	v, ok := s.Take(5)
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = s.Take(5)
	assert.False(t, ok)
}

func TestStore_UsersAreIndependent(t *testing.T) {
	s := NewIntentStore()
	s.Enable(1)

	assert.False(t, s.Consume(2))
	assert.True(t, s.Pending(1))
	assert.True(t, s.Consume(1))
}

func TestIntentStore_ConsumeOnce(t *testing.T) {
	s := NewIntentStore()

	assert.False(t, s.Consume(42))

	s.Enable(42)
	s.Enable(42)
	assert.True(t, s.Consume(42))
	assert.False(t, s.Consume(42))
}

func TestIntentStore_ConcurrentConsume(t *testing.T) {
	s := NewIntentStore()
	s.Enable(7)

	const workers = 64
	var wins int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if s.Consume(7) {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func TestIntentStore_ConsumeProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewIntentStore()
		enables := rapid.IntRange(0, 5).Draw(rt, "enables")
		callers := rapid.IntRange(1, 16).Draw(rt, "callers")

		total := 0
		for i := 0; i < enables; i++ {
			s.Enable(99)

			var wins int32
			var wg sync.WaitGroup
			for c := 0; c < callers; c++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if s.Consume(99) {
						atomic.AddInt32(&wins, 1)
					}
				}()
			}
			wg.Wait()

			if wins != 1 {
				rt.Fatalf("expected exactly one successful consume, got %d", wins)
			}
			total += int(wins)
		}
		if total != enables {
			rt.Fatalf("expected %d consumes, got %d", enables, total)
		}
	})
}

func TestStore_Expire(t *testing.T) {
	s := NewStore[int]()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Set(1, 1)
	now = now.Add(20 * time.Minute)
	s.Set(2, 2)
	now = now.Add(15 * time.Minute)

	removed := s.Expire(30 * time.Minute)

	assert.Equal(t, 1, removed)
	_, ok := s.TryGet(1)
	assert.False(t, ok)
	_, ok = s.TryGet(2)
	assert.True(t, ok)
}
