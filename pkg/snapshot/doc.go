// Package snapshot records pipeline states so a caller can inspect them or
// resume from the last successful tree after a pass fails.
//
// A pipeline run with a store attached records its input as index 0 and
// the output of pass i as index i+1:
//
//	store, err := snapshot.Open(&cfg.Snapshots)
//	p := pass.New(passes, pass.WithStore(store))
//	res, err := p.Run(ctx, tree)
//	last, err := store.Latest(ctx, res.RunID)
//
// # Backends
//
//   - MemoryStore keeps snapshots in process memory.
//   - SQLiteStore persists them with database/sql. The "sqlite" driver
//     (modernc.org/sqlite) is pure Go and the default; "sqlite3"
//     (github.com/mattn/go-sqlite3) needs cgo.
//
// # Retention
//
// Pruner deletes snapshots by age and by count. Scheduler runs it on a
// cron expression such as "0 3 * * *".
package snapshot
