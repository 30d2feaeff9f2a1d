package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reviewhub/backend/internal/domain/providers"
)

// FileAdapter implements the SnapshotProvider interface on a local file.
// Used when Redis is unavailable and by the seed tool.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a new file snapshot adapter.
func NewFileAdapter(path string) providers.SnapshotProvider {
	return &FileAdapter{path: path}
}

// Load reads the snapshot file.
func (a *FileAdapter) Load(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return data, true, nil
}

// Save writes the document via a temp file rename so a crash mid-write
// cannot leave a torn snapshot behind.
func (a *FileAdapter) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
