package history

import "database/sql"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	system      TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	valid       INTEGER NOT NULL,
	nodes       INTEGER NOT NULL,
	edges       INTEGER NOT NULL,
	self_loops  INTEGER NOT NULL,
	error_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_errors (
	run_id   TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq      INTEGER NOT NULL,
	file     TEXT NOT NULL,
	message  TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_system ON runs(system, created_at);
`

// EnsureSchema creates the history tables when missing. Safe to call on
// every open.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
