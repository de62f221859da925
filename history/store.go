// Package history persists validation runs to a local sqlite database so
// repeated runs over a system can be compared over time. The pipeline never
// touches this package; recording is strictly a consumer-side concern.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matlang/go-matlang/compile"
)

const driverName = "sqlite"

// createdAtFormat keeps all nanosecond digits so the stored strings sort
// lexicographically in time order; RFC3339Nano trims trailing zeros and
// would not.
const createdAtFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a sqlite-backed run log.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Open opens (creating if needed) the run store at path.
func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Run is one recorded pipeline run.
type Run struct {
	ID        string    `json:"id"`
	System    string    `json:"system"`
	CreatedAt time.Time `json:"created_at"`
	Valid     bool      `json:"valid"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	SelfLoops int       `json:"self_loops"`
	Errors    int       `json:"errors"`
}

// Record stores one compile result, including its diagnostics.
func (s *Store) Record(result *compile.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var nodes, edges, selfLoops int
	if result.Graph != nil {
		nodes = len(result.Graph.Nodes)
		edges = len(result.Graph.Edges)
		selfLoops = result.Graph.SelfLoops()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, system, created_at, valid, nodes, edges, self_loops, error_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.SystemName,
		result.StartedAt.UTC().Format(createdAtFormat),
		boolInt(result.Valid()),
		nodes,
		edges,
		selfLoops,
		len(result.Diagnostics),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", result.RunID, err)
	}

	for i, diag := range result.Diagnostics {
		_, err = tx.Exec(
			`INSERT INTO run_errors (run_id, seq, file, message) VALUES (?, ?, ?, ?)`,
			result.RunID, i, diag.File, diag.Err.Error(),
		)
		if err != nil {
			return fmt.Errorf("insert run error %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, system, created_at, valid, nodes, edges, self_loops, error_count
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		var valid int
		if err := rows.Scan(&r.ID, &r.System, &createdAt, &valid, &r.Nodes, &r.Edges, &r.SelfLoops, &r.Errors); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Valid = valid != 0
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Errors returns the stored diagnostics of one run, in report order.
func (s *Store) Errors(runID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT file, message FROM run_errors WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run errors: %w", err)
	}
	defer rows.Close()

	var msgs []string
	for rows.Next() {
		var file, message string
		if err := rows.Scan(&file, &message); err != nil {
			return nil, fmt.Errorf("scan run error: %w", err)
		}
		if file != "" {
			msgs = append(msgs, file+": "+message)
		} else {
			msgs = append(msgs, message)
		}
	}
	return msgs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
