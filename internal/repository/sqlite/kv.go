package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_posts (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	body TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS job_applications (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	body TEXT NOT NULL
);
`

// Migrate creates the key-value tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

var errNoEntry = errors.New("no entry for key")

// table stores JSON encoded records keyed by id. seq preserves first-insertion order;
// the upsert only rewrites the body, so replacing an entry keeps its position.
type table[T any] struct {
	db   *sql.DB
	name string
}

func (t table[T]) get(ctx context.Context, id string) (T, error) {
	var value T
	var body string
	err := t.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT body FROM %s WHERE id = ?`, t.name), id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return value, errNoEntry
		}
		return value, err
	}
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		return value, fmt.Errorf("decode %s/%s: %w", t.name, id, err)
	}
	return value, nil
}

func (t table[T]) put(ctx context.Context, id string, value T) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = t.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (id, body) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body`, t.name), id, string(body))
	return err
}

func (t table[T]) remove(ctx context.Context, id string) (T, error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var value T
	var body string
	if err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT body FROM %s WHERE id = ?`, t.name), id).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return value, errNoEntry
		}
		return value, err
	}
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		return value, fmt.Errorf("decode %s/%s: %w", t.name, id, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.name), id); err != nil {
		return value, err
	}
	committed = true
	return value, tx.Commit()
}

func (t table[T]) values(ctx context.Context) ([]T, error) {
	rows, err := t.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, body FROM %s ORDER BY seq`, t.name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []T{}
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		var value T
		if err := json.Unmarshal([]byte(body), &value); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", t.name, id, err)
		}
		items = append(items, value)
	}
	return items, rows.Err()
}
