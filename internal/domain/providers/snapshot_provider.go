package providers

import "context"

// SnapshotProvider defines the durable slot the store writes its serialized
// state into. One key, whole-document semantics: every save overwrites the
// previous document.
type SnapshotProvider interface {
	// Load retrieves the current snapshot document. ok is false when the
	// slot has never been written.
	Load(ctx context.Context) (data []byte, ok bool, err error)

	// Save overwrites the snapshot document.
	Save(ctx context.Context, data []byte) error
}
