package store

import (
	"context"
	"encoding/json"

	"github.com/reviewhub/backend/internal/domain/entities"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

// Export serializes the current state as an indented document suitable for
// download and later re-import.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to serialize snapshot", err)
	}
	return raw, nil
}

// Import replaces the whole in-memory state with the supplied document and
// persists it. A document that does not parse leaves the state untouched.
func (s *Store) Import(ctx context.Context, raw []byte) error {
	var data entities.Snapshot
	if err := json.Unmarshal(raw, &data); err != nil {
		return apperrors.NewInvalidFormatError("import document is not valid JSON", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data.Normalize()
	s.data = &data
	s.reindex()
	return s.persist(ctx)
}

// Reset restores the seed dataset and persists it.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = Seed(s.now())
	s.data.Normalize()
	s.reindex()
	return s.persist(ctx)
}
