package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Config configures a FileWatcher.
type Config struct {
	// Path is the document to watch.
	Path string

	// Debounce is the quiet period after the last event before onChange
	// runs.
	Debounce time.Duration
}

// FileWatcher calls back when a document file changes. It watches the
// file's directory so that editors replacing the file by rename are
// seen as well.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	path     string
	debounce *Debouncer

	running atomic.Bool
	changes atomic.Int64
}

// NewFileWatcher creates a watcher for cfg.Path.
func NewFileWatcher(cfg Config, logger *slog.Logger) (*FileWatcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch path cannot be empty")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", cfg.Path, err)
	}
	if info, err := os.Stat(path); err != nil {
		return nil, err
	} else if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", cfg.Path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &FileWatcher{
		watcher:  w,
		logger:   logger.With("component", "watch"),
		path:     path,
		debounce: NewDebouncer(cfg.Debounce),
	}, nil
}

// Watch blocks until ctx is cancelled, calling onChange after each burst
// of writes to the watched file. Errors from onChange are logged and
// watching continues. Calls to onChange never overlap.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(context.Context) error) error {
	if !fw.running.CompareAndSwap(false, true) {
		return errors.New("watcher already running")
	}
	defer fw.running.Store(false)
	defer fw.debounce.Stop()
	defer fw.watcher.Close()

	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fw.path, err)
	}
	fw.logger.Info("watching document", "path", fw.path)

	var mu sync.Mutex
	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !fw.relevant(event) {
				continue
			}
			fw.logger.Debug("document event", "op", event.Op.String())

			fw.debounce.Trigger(func() {
				mu.Lock()
				defer mu.Unlock()
				if ctx.Err() != nil {
					return
				}
				fw.changes.Add(1)
				if err := onChange(ctx); err != nil {
					fw.logger.Error("change handler failed", "path", fw.path, "error", err)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			fw.logger.Error("watcher error", "error", err)
		}
	}
}

// Running reports whether Watch is active.
func (fw *FileWatcher) Running() bool {
	return fw.running.Load()
}

// Changes returns the number of handled change bursts.
func (fw *FileWatcher) Changes() int64 {
	return fw.changes.Load()
}

// Path returns the absolute path of the watched document.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// relevant reports whether event changes the watched file's content.
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
