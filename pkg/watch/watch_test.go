package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls, last atomic.Int64

	for i := 1; i <= 5; i++ {
		n := int64(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	if calls.Load() != 1 {
		t.Errorf("callback ran %d times, want 1", calls.Load())
	}
	if last.Load() != 5 {
		t.Errorf("ran callback %d, want the last one", last.Load())
	}

	d.Stop()
	d.Stop()
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(80 * time.Millisecond)
	if calls.Load() != 1 {
		t.Error("trigger after Stop ran")
	}
}

func TestNewFileWatcher_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"missing", filepath.Join(dir, "missing.json")},
		{"directory", dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFileWatcher(Config{Path: tt.path}, nil); err == nil {
				t.Error("NewFileWatcher() should fail")
			}
		})
	}
}

func TestFileWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "top.json")
	other := filepath.Join(dir, "other.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(Config{Path: path, Debounce: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- fw.Watch(ctx, func(context.Context) error {
			changed <- struct{}{}
			return nil
		})
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !fw.Running() {
		if time.Now().After(deadline) {
			t.Fatal("watcher did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}
	// Give fsnotify time to register the directory.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(`{"kind": "SourceText"}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change callback")
	}
	time.Sleep(150 * time.Millisecond)
	if n := fw.Changes(); n != 1 {
		t.Errorf("Changes() = %d, want 1", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
	if fw.Running() {
		t.Error("Running() after stop")
	}
}
