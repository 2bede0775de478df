package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // "sqlite" (pure Go)

	"svdata-hq/svast/pkg/config"
	"svdata-hq/svast/pkg/svast/codec"
)

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	config config.SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at cfg.Path and
// initializes its schema. cfg.Driver selects "sqlite" or "sqlite3".
func NewSQLiteStore(cfg config.SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}
	if cfg.Driver == "" {
		cfg.Driver = config.DefaultSnapshotsSQLiteDriver
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = config.DefaultSnapshotsMaxOpenConns
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = config.DefaultSnapshotsBusyTimeout
	}

	logger := slog.Default().With("component", "snapshot.sqlite")

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, newStorageError("sqlite", "mkdir", err)
		}
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, newStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	s := &SQLiteStore{db: db, config: cfg, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite snapshot store initialized",
		"path", cfg.Path,
		"driver", cfg.Driver,
		"journal_mode", cfg.JournalMode,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.JournalMode != "" {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA journal_mode=%s;", s.config.JournalMode)); err != nil {
			return newStorageError("sqlite", "journal_mode", err)
		}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return newStorageError("sqlite", "busy_timeout", err)
	}
	if _, err := s.db.Exec(Schema); err != nil {
		return newStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return newStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil {
		return newStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return newStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// Put inserts s.
func (s *SQLiteStore) Put(ctx context.Context, snap *Snapshot) error {
	prepare(snap)
	_, err := s.db.ExecContext(ctx, insertSnapshot,
		snap.ID, snap.RunID, snap.Index, snap.Pass,
		snap.Document.Bytes(), snap.Digest, snap.CreatedAt.UnixNano(),
	)
	if err != nil {
		return newStorageError("sqlite", "put", err)
	}
	return nil
}

// Get returns the snapshot with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, selectByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, newStorageError("sqlite", "get", err)
	}
	return snap, nil
}

// List returns the snapshots of runID, or every snapshot when runID is
// empty.
func (s *SQLiteStore) List(ctx context.Context, runID string) ([]*Snapshot, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if runID == "" {
		rows, err = s.db.QueryContext(ctx, selectAll)
	} else {
		rows, err = s.db.QueryContext(ctx, selectByRun, runID)
	}
	if err != nil {
		return nil, newStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var out []*Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, newStorageError("sqlite", "scan", err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("sqlite", "list", err)
	}
	return out, nil
}

// Latest returns the highest-index snapshot of runID.
func (s *SQLiteStore) Latest(ctx context.Context, runID string) (*Snapshot, error) {
	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, selectLatest, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, newStorageError("sqlite", "latest", err)
	}
	return snap, nil
}

// Count returns the number of stored snapshots.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, countSnapshots).Scan(&n); err != nil {
		return 0, newStorageError("sqlite", "count", err)
	}
	return n, nil
}

// DeleteOlderThan removes snapshots created before cutoff.
func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.exec(ctx, "delete_older", deleteBefore, cutoff.UnixNano())
}

// DeleteOldest removes the oldest snapshots until at most keep remain.
func (s *SQLiteStore) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	return s.exec(ctx, "delete_oldest", deleteOldest, keep)
}

func (s *SQLiteStore) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, newStorageError("sqlite", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, newStorageError("sqlite", op, err)
	}
	return n, nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return newStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*Snapshot, error) {
	var (
		snap    Snapshot
		doc     []byte
		created int64
	)
	if err := row.Scan(&snap.ID, &snap.RunID, &snap.Index, &snap.Pass, &doc, &snap.Digest, &created); err != nil {
		return nil, err
	}
	snap.Document = codec.NewDocument(doc)
	snap.CreatedAt = time.Unix(0, created).UTC()
	return &snap, nil
}
