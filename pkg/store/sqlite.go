package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS templates (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    template   TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS templates_updated_at_idx ON templates (updated_at DESC);`

var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=10000",
	"PRAGMA synchronous=NORMAL",
}

// SQLite stores templates in a single database file. Timestamps are kept
// as Unix microseconds.
type SQLite struct {
	db   *sql.DB
	opts options
}

// OpenSQLite opens or creates the database at path and ensures the schema.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	for _, pragma := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, errors.Join(ErrFailedToOpenDBConnection, fmt.Errorf("%s: %w", pragma, err))
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToApplyMigrations, err)
	}
	return &SQLite{db: db, opts: newOptions(opts)}, nil
}

const sqliteUpsert = `
INSERT INTO templates (id, name, template, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE
SET name = excluded.name, template = excluded.template, updated_at = excluded.updated_at
RETURNING created_at, updated_at`

func (s *SQLite) Save(ctx context.Context, rec Record) (Record, error) {
	if err := validate(rec); err != nil {
		return Record{}, err
	}
	data, err := encodeTemplate(rec.Template)
	if err != nil {
		return Record{}, err
	}

	now := s.opts.timestamp().UnixMicro()
	var created, updated int64
	err = s.db.QueryRowContext(ctx, sqliteUpsert, rec.ID, rec.Name, string(data), now, now).
		Scan(&created, &updated)
	if err != nil {
		return Record{}, fmt.Errorf("save template %s: %w", rec.ID, err)
	}
	rec.CreatedAt, rec.UpdatedAt = fromMicros(created), fromMicros(updated)
	return clone(rec), nil
}

func (s *SQLite) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, template, created_at, updated_at FROM templates WHERE id = ?`, id)
	rec, err := scanSQLRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *SQLite) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, template, created_at, updated_at FROM templates ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanSQLRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Healthcheck pings the database.
func (s *SQLite) Healthcheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLRecord(row scanner) (Record, error) {
	var (
		rec              Record
		data             string
		created, updated int64
	)
	if err := row.Scan(&rec.ID, &rec.Name, &data, &created, &updated); err != nil {
		return Record{}, err
	}
	t, err := decodeTemplate([]byte(data))
	if err != nil {
		return Record{}, err
	}
	rec.Template = t
	rec.CreatedAt, rec.UpdatedAt = fromMicros(created), fromMicros(updated)
	return rec, nil
}

func fromMicros(us int64) time.Time {
	return time.UnixMicro(us).UTC()
}
