package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reviewhub/backend/internal/adapters/snapshot"
	"github.com/reviewhub/backend/internal/store"
)

// testClock is a manually advanced time source shared by a test's store.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newSeededStore loads a store over an in-memory slot so every test starts
// from the seed dataset.
func newSeededStore(t *testing.T) (*store.Store, *snapshot.MemoryAdapter, *testClock) {
	t.Helper()
	slot := snapshot.NewMemoryAdapter()
	clock := newTestClock()
	st := store.New(slot, store.WithClock(clock.Now))
	require.NoError(t, st.Load(context.Background()))
	return st, slot, clock
}
