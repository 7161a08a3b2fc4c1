// Package sqlite provides a SQLite-backed leaderboard store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/plus3/rainbowdrop/leaderboard"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store persists the leaderboard in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database at path and applies the embedded schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the board, best score first.
func (s *Store) Load(ctx context.Context) ([]leaderboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	return s.load(ctx, s.sqlDB)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) load(ctx context.Context, q querier) ([]leaderboard.Entry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name, score, recorded_at
		   FROM scores
		  ORDER BY score DESC, recorded_at ASC, id ASC
		  LIMIT ?`,
		leaderboard.MaxEntries,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	entries := make([]leaderboard.Entry, 0, leaderboard.MaxEntries)
	for rows.Next() {
		var (
			e          leaderboard.Entry
			recordedAt int64
		)
		if err := rows.Scan(&e.Name, &e.Score, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.When = fromMillis(recordedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return entries, nil
}

// Record inserts e and prunes every row that fell off the board.
func (s *Store) Record(ctx context.Context, e leaderboard.Entry) ([]leaderboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	e, err := e.Validate()
	if err != nil {
		return nil, err
	}
	if e.When.IsZero() {
		e.When = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scores (name, score, recorded_at) VALUES (?, ?, ?)`,
		e.Name, e.Score, toMillis(e.When),
	); err != nil {
		return nil, fmt.Errorf("insert score: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM scores
		  WHERE id NOT IN (
		    SELECT id FROM scores
		     ORDER BY score DESC, recorded_at ASC, id ASC
		     LIMIT ?
		  )`,
		leaderboard.MaxEntries,
	); err != nil {
		return nil, fmt.Errorf("prune scores: %w", err)
	}

	entries, err := s.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return entries, nil
}
