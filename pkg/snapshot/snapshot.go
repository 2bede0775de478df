package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"svdata-hq/svast/pkg/svast/codec"
)

// ErrNotFound is returned by Get and Latest when no snapshot matches.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one recorded pipeline state: the encoded tree after pass
// Index of run RunID. Index 0 is the pipeline input and carries an empty
// Pass.
type Snapshot struct {
	ID        string
	RunID     string
	Index     int
	Pass      string
	Document  codec.Document
	Digest    string
	CreatedAt time.Time
}

// Store persists snapshots. Implementations are safe for concurrent use.
type Store interface {
	// Put stores s, filling in ID, Digest and CreatedAt when unset.
	Put(ctx context.Context, s *Snapshot) error

	// Get returns the snapshot with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// List returns the snapshots of runID ordered by index. An empty runID
	// lists every snapshot, oldest first.
	List(ctx context.Context, runID string) ([]*Snapshot, error)

	// Latest returns the highest-index snapshot of runID or ErrNotFound.
	Latest(ctx context.Context, runID string) (*Snapshot, error)

	// Count returns the number of stored snapshots.
	Count(ctx context.Context) (int64, error)

	// DeleteOlderThan removes snapshots created before cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes the oldest snapshots until at most keep remain.
	DeleteOldest(ctx context.Context, keep int64) (int64, error)

	// Ping reports whether the store is usable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // "memory" or "sqlite"
	Operation string // "put", "list", "delete", ...
	Cause error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("snapshot storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

func newStorageError(backend, operation string, cause error) error {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

// prepare fills the derived fields of s before it is stored.
func prepare(s *Snapshot) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Digest == "" {
		s.Digest = s.Document.Digest()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
}
