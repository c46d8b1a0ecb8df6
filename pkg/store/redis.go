package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"mailforge"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// ConnectRedis opens a client and waits until it answers PING.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	for range max(cfg.RetryAttempts, 1) {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrRedisNotReady
}

// RedisHealthcheck returns a probe for the client.
func RedisHealthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Redis stores each record as a JSON string under <prefix>:template:<id>
// and keeps a sorted set <prefix>:templates scored by update time.
type Redis struct {
	client redis.UniversalClient
	opts   options
}

func NewRedis(client redis.UniversalClient, opts ...Option) *Redis {
	return &Redis{client: client, opts: newOptions(opts)}
}

func (r *Redis) key(id string) string { return r.opts.prefix + ":template:" + id }
func (r *Redis) index() string        { return r.opts.prefix + ":templates" }

func (r *Redis) Save(ctx context.Context, rec Record) (Record, error) {
	if err := validate(rec); err != nil {
		return Record{}, err
	}

	now := r.opts.timestamp()
	rec.CreatedAt, rec.UpdatedAt = now, now
	prev, err := r.Get(ctx, rec.ID)
	switch {
	case err == nil:
		rec.CreatedAt = prev.CreatedAt
	case !errors.Is(err, ErrNotFound):
		return Record{}, err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return Record{}, errors.Join(ErrEncodeTemplate, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(rec.ID), data, 0)
		pipe.ZAdd(ctx, r.index(), redis.Z{Score: float64(now.UnixMicro()), Member: rec.ID})
		return nil
	})
	if err != nil {
		return Record{}, fmt.Errorf("save template %s: %w", rec.ID, err)
	}
	return clone(rec), nil
}

func (r *Redis) Get(ctx context.Context, id string) (Record, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get template %s: %w", id, err)
	}
	return decodeRecord(data)
}

func (r *Redis) List(ctx context.Context) ([]Record, error) {
	ids, err := r.client.ZRevRange(ctx, r.index(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := []Record{}
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// Index entry without a value; skipped until the next delete.
			continue
		}
		rec, err := decodeRecord([]byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.key(id))
		pipe.ZRem(ctx, r.index(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func decodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Join(ErrDecodeTemplate, err)
	}
	return rec, nil
}
