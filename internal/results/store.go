// internal/results/store.go
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vmunix/arrscout/internal/source"
)

// SaveOptions control how SaveResults treats an existing entry.
type SaveOptions struct {
	// MarkDone flags the key as finished so later runs can skip it.
	MarkDone bool
	// Replace overwrites the stored list. When false, results whose hash
	// is not stored yet are appended after the existing ones.
	Replace bool
}

// Store is the result cache used by the job runner and the CLI.
type Store interface {
	SaveResults(ctx context.Context, key string, results []source.Result, opts SaveOptions) error
	GetResults(ctx context.Context, key string) ([]source.Result, error)
	KeyExists(ctx context.Context, key string) bool
	IsDone(ctx context.Context, key string) bool
	MarkDone(ctx context.Context, key string) error
}

// SQLiteStore keeps one JSON array of results per key.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store on an already migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// SaveResults writes results under key in a single transaction.
func (s *SQLiteStore) SaveResults(ctx context.Context, key string, results []source.Result, opts SaveOptions) error {
	if key == "" {
		return ErrEmptyKey
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		existing []source.Result
		done     bool
	)
	if !opts.Replace {
		existing, done, err = load(ctx, tx, key)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	merged := merge(existing, results)
	value, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode results for %s: %w", key, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO results (key, value, done, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, done = excluded.done, updated_at = excluded.updated_at`,
		key, string(value), flag(opts.MarkDone || done), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save results for %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results for %s: %w", key, err)
	}
	return nil
}

// GetResults returns the stored list for key, or ErrNotFound.
func (s *SQLiteStore) GetResults(ctx context.Context, key string) ([]source.Result, error) {
	results, _, err := load(ctx, s.db, key)
	return results, err
}

// KeyExists reports whether anything is stored under key.
func (s *SQLiteStore) KeyExists(ctx context.Context, key string) bool {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM results WHERE key = ?", key).Scan(&n)
	return err == nil && n > 0
}

// IsDone reports whether key has been marked done.
func (s *SQLiteStore) IsDone(ctx context.Context, key string) bool {
	var done bool
	err := s.db.QueryRowContext(ctx, "SELECT done FROM results WHERE key = ?", key).Scan(&done)
	return err == nil && done
}

// MarkDone flags key as finished, creating an empty entry if needed.
func (s *SQLiteStore) MarkDone(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (key, done, updated_at)
		 VALUES (?, 1, ?)
		 ON CONFLICT(key) DO UPDATE SET done = 1, updated_at = excluded.updated_at`,
		key, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("mark done %s: %w", key, err)
	}
	return nil
}

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func load(ctx context.Context, q querier, key string) ([]source.Result, bool, error) {
	var (
		value string
		done  bool
	)
	err := q.QueryRowContext(ctx, "SELECT value, done FROM results WHERE key = ?", key).Scan(&value, &done)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("load results for %s: %w", key, err)
	}

	var results []source.Result
	if err := json.Unmarshal([]byte(value), &results); err != nil {
		return nil, false, fmt.Errorf("decode results for %s: %w", key, err)
	}
	return results, done, nil
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// merge appends the entries of added whose hash is not already present.
func merge(existing, added []source.Result) []source.Result {
	out := make([]source.Result, 0, len(existing)+len(added))
	seen := make(map[string]bool, len(existing)+len(added))
	for _, list := range [][]source.Result{existing, added} {
		for _, r := range list {
			if seen[r.Hash] {
				continue
			}
			seen[r.Hash] = true
			out = append(out, r)
		}
	}
	return out
}
