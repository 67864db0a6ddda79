// Package history persists linter runs and the violations they produced to a
// local SQLite database, so a CI pipeline or a developer's editor can ask
// "did this file get worse since the last run" instead of only seeing the
// violations of the run in front of it.
package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/sqlfmt/internal/runid"
	"github.com/leapstack-labs/sqlfmt/pkg/lint"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store records lint runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path and
// brings its schema up to date. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("history: create %s: %w", dir, err)
			}
		}
		dsn = fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL", path)
	} else {
		dsn = ":memory:?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("history: set dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one invocation of the linter.
type Run struct {
	ID          string
	StartedAt   time.Time
	CompletedAt *time.Time
	Dialect     string
	FileCount   int
	FixMode     bool
}

// ViolationRecord is a violation as recorded against a run.
type ViolationRecord struct {
	RunID       string
	FilePath    string
	RuleName    string
	RuleCode    string
	Severity    string
	Description string
	Line        int
	Col         int
	Fixable     bool
}

// BeginRun inserts a new run row and returns it, tagged with a fresh id from
// internal/runid.
func (s *Store) BeginRun(ctx context.Context, dialect string, fileCount int, fixMode bool) (*Run, error) {
	run := &Run{
		ID:        runid.New(),
		StartedAt: time.Now().UTC(),
		Dialect:   dialect,
		FileCount: fileCount,
		FixMode:   fixMode,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, dialect, file_count, fix_mode) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.Dialect, run.FileCount, run.FixMode,
	)
	if err != nil {
		return nil, fmt.Errorf("history: begin run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run as finished.
func (s *Store) CompleteRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET completed_at = ? WHERE id = ?`,
		time.Now().UTC(), runID,
	)
	if err != nil {
		return fmt.Errorf("history: complete run: %w", err)
	}
	return nil
}

// RecordViolations stores the violations found in one file during a run.
func (s *Store) RecordViolations(ctx context.Context, runID, filePath string, violations []lint.Violation) error {
	if len(violations) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO violations (run_id, file_path, rule_name, rule_code, severity, description, line, col, fixable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("history: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range violations {
		_, err := stmt.ExecContext(ctx,
			runID, filePath, v.RuleName, v.RuleCode, v.Severity.String(), v.Description,
			v.Pos.Line, v.Pos.Col, v.Fixable,
		)
		if err != nil {
			return fmt.Errorf("history: insert violation: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, completed_at, dialect, file_count, fix_mode
		 FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var completedAt sql.NullTime
		if err := rows.Scan(&run.ID, &run.StartedAt, &completedAt, &run.Dialect, &run.FileCount, &run.FixMode); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		if completedAt.Valid {
			run.CompletedAt = &completedAt.Time
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// ViolationsForRun returns every violation recorded against a run.
func (s *Store) ViolationsForRun(ctx context.Context, runID string) ([]ViolationRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, file_path, rule_name, rule_code, severity, description, line, col, fixable
		 FROM violations WHERE run_id = ? ORDER BY file_path, line, col`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("history: violations for run: %w", err)
	}
	defer rows.Close()

	var out []ViolationRecord
	for rows.Next() {
		var v ViolationRecord
		if err := rows.Scan(&v.RunID, &v.FilePath, &v.RuleName, &v.RuleCode, &v.Severity, &v.Description, &v.Line, &v.Col, &v.Fixable); err != nil {
			return nil, fmt.Errorf("history: scan violation: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// RuleTrend counts how many times each rule has fired across recorded runs,
// keeping only the limit most frequent rule codes. The returned map carries
// no ordering. Useful for "what's our worst rule" reporting.
func (s *Store) RuleTrend(ctx context.Context, limit int) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rule_code, COUNT(*) FROM violations GROUP BY rule_code ORDER BY COUNT(*) DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: rule trend: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var code string
		var count int
		if err := rows.Scan(&code, &count); err != nil {
			return nil, fmt.Errorf("history: scan rule trend: %w", err)
		}
		out[code] = count
	}
	return out, rows.Err()
}
