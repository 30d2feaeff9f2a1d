package snapshot

import (
	"context"
	"sync"

	"github.com/reviewhub/backend/internal/domain/providers"
)

// MemoryAdapter keeps the snapshot document in memory. Used in tests and
// when running without any durable slot.
type MemoryAdapter struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryAdapter creates a new in-memory snapshot adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

var _ providers.SnapshotProvider = (*MemoryAdapter)(nil)

// Load returns the last saved document.
func (a *MemoryAdapter) Load(_ context.Context) ([]byte, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.data == nil {
		return nil, false, nil
	}
	out := append([]byte(nil), a.data...)
	return out, true, nil
}

// Save overwrites the document.
func (a *MemoryAdapter) Save(_ context.Context, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data = append([]byte(nil), data...)
	a.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (a *MemoryAdapter) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}

// Bytes returns the current document.
func (a *MemoryAdapter) Bytes() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]byte(nil), a.data...)
}
