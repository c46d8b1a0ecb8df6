// Package store persists named email templates.
//
// Four backends implement Store: Memory for tests and one-off CLI runs,
// SQLite for single-binary deployments, Postgres and Redis for shared
// deployments. All of them keep the template as its JSON document, stamp
// CreatedAt on first save and UpdatedAt on every save, list newest first
// and report missing ids as ErrNotFound.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// Record is a stored template.
type Record struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Template  document.Template `json:"template"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Store is implemented by every backend.
type Store interface {
	// Save inserts or replaces rec and returns it with timestamps set.
	Save(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, id string) (Record, error)
	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Config selects and configures the backend.
type Config struct {
	Driver     string `env:"STORE_DRIVER" envDefault:"memory"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"mailforge.db"`
}

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Option configures a backend.
type Option func(*options)

type options struct {
	now    func() time.Time
	prefix string
}

// WithClock replaces time.Now for timestamping. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithKeyPrefix sets the key namespace used by the Redis backend.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		prefix: "mailforge",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) timestamp() time.Time {
	return o.now().UTC().Truncate(time.Microsecond)
}

func validate(rec Record) error {
	if rec.ID == "" {
		return errors.Join(ErrInvalidRecord, errors.New("id is required"))
	}
	if err := document.Validate(rec.Template.Components); err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}
	return nil
}

func encodeTemplate(t document.Template) ([]byte, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Join(ErrEncodeTemplate, err)
	}
	return b, nil
}

func decodeTemplate(data []byte) (document.Template, error) {
	t, err := document.Decode(data)
	if err != nil {
		return document.Template{}, errors.Join(ErrDecodeTemplate, err)
	}
	return t, nil
}
