package out

import (
	"context"

	"hdt/internal/modules/progress/domain"
)

// KVStore holds opaque blobs under string keys. Get returns
// apperrors.ErrNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Exporter interface {
	WriteSnapshot(ctx context.Context, dir string, snapshot domain.Snapshot) (string, error)
	WriteJournal(ctx context.Context, dir string, entries []domain.JournalEntry) ([]string, error)
}
