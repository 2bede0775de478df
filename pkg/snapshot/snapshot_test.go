package snapshot

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"svdata-hq/svast/pkg/config"
	"svdata-hq/svast/pkg/svast/codec"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(config.SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "snapshots.db"),
		Driver:      "sqlite",
		JournalMode: "WAL",
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func doc(s string) codec.Document { return codec.NewDocument([]byte(s)) }

func TestStore_PutGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := &Snapshot{RunID: "run-1", Index: 0, Document: doc(`{"kind": "SourceText"}`)}
			if err := store.Put(ctx, s); err != nil {
				t.Fatalf("Put() failed: %v", err)
			}
			if s.ID == "" || s.Digest == "" || s.CreatedAt.IsZero() {
				t.Fatalf("Put() did not fill derived fields: %+v", s)
			}

			got, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if !got.Document.Equal(s.Document) {
				t.Errorf("Document = %q, want %q", got.Document, s.Document)
			}
			if got.Digest != s.Document.Digest() {
				t.Errorf("Digest = %s, want %s", got.Digest, s.Document.Digest())
			}
			if !got.CreatedAt.Equal(s.CreatedAt) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, s.CreatedAt)
			}

			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_ListLatest(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, s := range []*Snapshot{
				{RunID: "a", Index: 1, Pass: "rename", Document: doc("1")},
				{RunID: "b", Index: 0, Document: doc("x")},
				{RunID: "a", Index: 0, Document: doc("0")},
				{RunID: "a", Index: 2, Pass: "lint", Document: doc("2")},
			} {
				if err := store.Put(ctx, s); err != nil {
					t.Fatal(err)
				}
			}

			list, err := store.List(ctx, "a")
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != 3 {
				t.Fatalf("List(a) returned %d snapshots, want 3", len(list))
			}
			for i, s := range list {
				if s.Index != i {
					t.Errorf("List(a)[%d].Index = %d", i, s.Index)
				}
			}

			all, err := store.List(ctx, "")
			if err != nil {
				t.Fatal(err)
			}
			if len(all) != 4 {
				t.Errorf("List(\"\") returned %d snapshots, want 4", len(all))
			}

			latest, err := store.Latest(ctx, "a")
			if err != nil {
				t.Fatal(err)
			}
			if latest.Index != 2 || latest.Pass != "lint" {
				t.Errorf("Latest(a) = %d %q, want 2 lint", latest.Index, latest.Pass)
			}
			if _, err := store.Latest(ctx, "none"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Latest(none) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < 5; i++ {
				s := &Snapshot{RunID: "r", Index: i, Document: doc("d"), CreatedAt: base.Add(time.Duration(i) * time.Hour)}
				if err := store.Put(ctx, s); err != nil {
					t.Fatal(err)
				}
			}

			deleted, err := store.DeleteOlderThan(ctx, base.Add(90*time.Minute))
			if err != nil {
				t.Fatal(err)
			}
			if deleted != 2 {
				t.Errorf("DeleteOlderThan() = %d, want 2", deleted)
			}

			deleted, err = store.DeleteOldest(ctx, 1)
			if err != nil {
				t.Fatal(err)
			}
			if deleted != 2 {
				t.Errorf("DeleteOldest(1) = %d, want 2", deleted)
			}

			latest, err := store.Latest(ctx, "r")
			if err != nil {
				t.Fatal(err)
			}
			if latest.Index != 4 {
				t.Errorf("remaining snapshot index = %d, want 4", latest.Index)
			}
			if n, _ := store.Count(ctx); n != 1 {
				t.Errorf("Count() = %d, want 1", n)
			}
		})
	}
}

func TestStore_Ping(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Ping(context.Background()); err != nil {
				t.Errorf("Ping() = %v", err)
			}
		})
	}

	m := NewMemoryStore()
	m.Close()
	var se *StorageError
	if err := m.Ping(context.Background()); !errors.As(err, &se) {
		t.Errorf("Ping() after Close = %v, want *StorageError", err)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{"memory", false},
		{"sqlite", false},
		{"postgres", true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := &config.SnapshotsConfig{
				Backend: tt.backend,
				SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "s.db")},
			}
			store, err := Open(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if store != nil {
				store.Close()
			}
		})
	}
}
