// Package sqlite provides a SQLite-backed storage driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/papercomputeco/crucible/pkg/element"
	"github.com/papercomputeco/crucible/pkg/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS combinations (
	combo_key TEXT PRIMARY KEY,
	element1  TEXT NOT NULL,
	element2  TEXT NOT NULL,
	result    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_combinations_result ON combinations (result);
`

// Driver implements storage.Driver using SQLite.
type Driver struct {
	db *sql.DB
}

// NewDriver creates a new SQLite-backed storer.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewDriver(dbPath string) (*Driver, error) {
	// Open the database using the github.com/mattn/go-sqlite3 driver (registered as "sqlite3")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite-specific pragmas
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Driver{db: db}, nil
}

// Put upserts a combination under its forward key. The upsert keeps the
// original rowid, so insertion order survives an overwrite.
func (s *Driver) Put(ctx context.Context, combo *element.Combination) error {
	if combo == nil {
		return errors.New("cannot store nil combination")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO combinations (combo_key, element1, element2, result)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (combo_key) DO UPDATE SET
			element1 = excluded.element1,
			element2 = excluded.element2,
			result   = excluded.result`,
		combo.Key(), combo.Element1, combo.Element2, combo.Result,
	)
	if err != nil {
		return fmt.Errorf("storing combination %s: %w", combo.Key(), err)
	}

	return nil
}

// Get retrieves a combination by forward key, then by reversed key.
func (s *Driver) Get(ctx context.Context, element1, element2 string) (*element.Combination, error) {
	for _, key := range []string{element.Key(element1, element2), element.Key(element2, element1)} {
		combo, err := s.getByKey(ctx, key)
		if err == nil {
			return combo, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("getting combination %s: %w", key, err)
		}
	}

	return nil, storage.ErrNotFound{Key: element.Key(element1, element2)}
}

func (s *Driver) getByKey(ctx context.Context, key string) (*element.Combination, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT element1, element2, result
		FROM combinations
		WHERE combo_key = ?`,
		key,
	)

	combo := &element.Combination{}
	if err := row.Scan(&combo.Element1, &combo.Element2, &combo.Result); err != nil {
		return nil, err
	}

	return combo, nil
}

// ResultPrefix returns all combinations whose result begins with prefix,
// oldest first.
func (s *Driver) ResultPrefix(ctx context.Context, prefix string) ([]*element.Combination, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT element1, element2, result
		FROM combinations
		WHERE result LIKE ? ESCAPE '\'
		ORDER BY rowid`,
		storage.EscapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("querying result prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	return scanCombinations(rows)
}

// List returns all combinations, oldest first.
func (s *Driver) List(ctx context.Context) ([]*element.Combination, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT element1, element2, result
		FROM combinations
		ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing combinations: %w", err)
	}
	defer rows.Close()

	return scanCombinations(rows)
}

// Count returns the number of stored combinations.
func (s *Driver) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM combinations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting combinations: %w", err)
	}

	return count, nil
}

// Close closes the underlying database handle.
func (s *Driver) Close() error {
	return s.db.Close()
}

func scanCombinations(rows *sql.Rows) ([]*element.Combination, error) {
	var combos []*element.Combination
	for rows.Next() {
		combo := &element.Combination{}
		if err := rows.Scan(&combo.Element1, &combo.Element2, &combo.Result); err != nil {
			return nil, fmt.Errorf("scanning combination row: %w", err)
		}
		combos = append(combos, combo)
	}

	return combos, rows.Err()
}

var _ storage.Driver = (*Driver)(nil)
