package snapshot

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the snapshot tables. Timestamps are stored as Unix
// nanoseconds so both drivers read them back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    run_id TEXT NOT NULL,
    pass_index INTEGER NOT NULL,
    pass TEXT NOT NULL,
    document BLOB NOT NULL,
    digest TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, pass_index);
CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

const (
	insertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`
	getSchemaVersion    = `SELECT MAX(version) FROM schema_version`

	snapshotColumns = `id, run_id, pass_index, pass, document, digest, created_at`

	insertSnapshot = `INSERT INTO snapshots (` + snapshotColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectByID     = `SELECT ` + snapshotColumns + ` FROM snapshots WHERE id = ?`
	selectByRun    = `SELECT ` + snapshotColumns + ` FROM snapshots WHERE run_id = ? ORDER BY pass_index, seq`
	selectAll      = `SELECT ` + snapshotColumns + ` FROM snapshots ORDER BY created_at, seq`
	selectLatest   = `SELECT ` + snapshotColumns + ` FROM snapshots WHERE run_id = ? ORDER BY pass_index DESC, seq DESC LIMIT 1`
	countSnapshots = `SELECT COUNT(*) FROM snapshots`
	deleteBefore   = `DELETE FROM snapshots WHERE created_at < ?`
	deleteOldest   = `DELETE FROM snapshots WHERE seq NOT IN (SELECT seq FROM snapshots ORDER BY created_at DESC, seq DESC LIMIT ?)`
)
