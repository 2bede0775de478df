package snapshot

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps snapshots in process memory. It backs tests and
// one-shot `svast run` invocations that only need the current run.
type MemoryStore struct {
	mu sync.RWMutex
	snapshots []*Snapshot // insertion order
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var errClosed = errors.New("store is closed")

// Put stores a copy of s.
func (m *MemoryStore) Put(_ context.Context, s *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return newStorageError("memory", "put", errClosed)
	}
	prepare(s)
	cp := *s
	m.snapshots = append(m.snapshots, &cp)
	return nil
}

// Get returns a copy of the snapshot with the given ID.
func (m *MemoryStore) Get(_ context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.snapshots {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List returns copies of the matching snapshots.
func (m *MemoryStore) List(_ context.Context, runID string) ([]*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Snapshot
	for _, s := range m.snapshots {
		if runID == "" || s.RunID == runID {
			cp := *s
			out = append(out, &cp)
		}
	}
	if runID != "" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	}
	return out, nil
}

// Latest returns the highest-index snapshot of runID.
func (m *MemoryStore) Latest(ctx context.Context, runID string) (*Snapshot, error) {
	list, err := m.List(ctx, runID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[len(list)-1], nil
}

// Count returns the number of stored snapshots.
func (m *MemoryStore) Count(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.snapshots)), nil
}

// DeleteOlderThan removes snapshots created before cutoff.
func (m *MemoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.snapshots[:0]
	var deleted int64
	for _, s := range m.snapshots {
		if s.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	m.snapshots = kept
	return deleted, nil
}

// DeleteOldest removes the oldest snapshots until at most keep remain.
func (m *MemoryStore) DeleteOldest(_ context.Context, keep int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	excess := int64(len(m.snapshots)) - keep
	if excess <= 0 {
		return 0, nil
	}
	sort.SliceStable(m.snapshots, func(i, j int) bool {
		return m.snapshots[i].CreatedAt.Before(m.snapshots[j].CreatedAt)
	})
	m.snapshots = append([]*Snapshot(nil), m.snapshots[excess:]...)
	return excess, nil
}

// Ping fails once the store is closed.
func (m *MemoryStore) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return newStorageError("memory", "ping", errClosed)
	}
	return nil
}

// Close discards every snapshot.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.snapshots = nil
	return nil
}
