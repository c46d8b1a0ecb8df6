package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/mailforge/pkg/config"
	"github.com/dmitrymomot/mailforge/pkg/httpserver"
	"github.com/dmitrymomot/mailforge/pkg/store"
)

// openStore connects the backend selected by cfg.Driver. Driver-specific
// settings are loaded only for the chosen driver, so a memory or SQLite
// deployment does not need PG_CONN_URL. The returned checks feed the
// readiness endpoint.
func openStore(ctx context.Context, cfg store.Config, log *slog.Logger) (store.Store, []httpserver.Check, error) {
	switch cfg.Driver {
	case store.DriverMemory, "":
		return store.NewMemory(), nil, nil

	case store.DriverSQLite:
		st, err := store.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, []httpserver.Check{{Name: "sqlite", Fn: st.Healthcheck}}, nil

	case store.DriverPostgres:
		var pgCfg store.PostgresConfig
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, errors.Join(ErrLoadConfiguration, err)
		}
		pool, err := store.ConnectPostgres(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := store.MigratePostgres(ctx, pool, pgCfg, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store.NewPostgres(pool), []httpserver.Check{{Name: "postgres", Fn: store.PostgresHealthcheck(pool)}}, nil

	case store.DriverRedis:
		var rdCfg store.RedisConfig
		if err := config.Load(&rdCfg); err != nil {
			return nil, nil, errors.Join(ErrLoadConfiguration, err)
		}
		client, err := store.ConnectRedis(ctx, rdCfg)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedis(client, store.WithKeyPrefix(rdCfg.KeyPrefix)), []httpserver.Check{{Name: "redis", Fn: store.RedisHealthcheck(client)}}, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", store.ErrUnknownDriver, cfg.Driver)
	}
}
