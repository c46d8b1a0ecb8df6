package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailforge/internal/api"
	"github.com/dmitrymomot/mailforge/pkg/config"
	"github.com/dmitrymomot/mailforge/pkg/editor"
	"github.com/dmitrymomot/mailforge/pkg/email"
	"github.com/dmitrymomot/mailforge/pkg/httpserver"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/store"
	"github.com/dmitrymomot/mailforge/pkg/upload"
)

type serveConfig struct {
	log    logger.Config
	http   httpserver.Config
	store  store.Config
	editor editor.Config
	email  email.Config
	upload upload.Config
	api    api.Config
}

func loadServeConfig() (serveConfig, error) {
	var c serveConfig
	err := errors.Join(
		config.Load(&c.log),
		config.Load(&c.http),
		config.Load(&c.store),
		config.Load(&c.editor),
		config.Load(&c.email),
		config.Load(&c.upload),
		config.Load(&c.api),
	)
	if err != nil {
		return serveConfig{}, errors.Join(ErrLoadConfiguration, err)
	}
	return c, nil
}

// NewServeCommand runs the HTTP API until interrupted.
func NewServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the editor HTTP API",
		Long: `Starts the HTTP API. Settings come from the environment (HTTP_*, STORE_*,
EDITOR_*, MAIL_*, UPLOAD_*, LOG_*) and an optional .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadServeConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.http.Addr = addr
			}

			log := logger.New(append(logger.FromConfig(cfg.log), logger.WithOutput(cmd.ErrOrStderr()))...)
			logger.SetAsDefault(log)

			st, checks, err := openStore(ctx, cfg.store, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					log.Error("failed to close store", logger.Error(err))
				}
			}()

			uploader, err := upload.FromConfig(ctx, cfg.upload)
			if err != nil {
				return err
			}
			mailer, err := email.New(cfg.email)
			if err != nil {
				return err
			}

			sessionOpts := []editor.Option{editor.WithLogger(log)}
			if uploader != nil {
				sessionOpts = append(sessionOpts, editor.WithUploader(uploader))
			}
			sessions := editor.NewManager(append(editor.FromConfig(cfg.editor),
				editor.WithManagerLogger(log),
				editor.WithSessionOptions(sessionOpts...),
			)...)
			// Close is idempotent; the deferred call covers exits before the server starts.
			defer sessions.Close()

			apiOpts := []api.Option{
				api.WithConfig(cfg.api),
				api.WithLogger(log),
				api.WithStore(st),
				api.WithMailer(mailer),
				api.WithHealthChecks(checks...),
			}
			if cfg.upload.Driver == upload.DriverLocal {
				apiOpts = append(apiOpts, api.WithUploads(cfg.upload.LocalDir, cfg.upload.LocalURL))
			}

			log.Info("starting mailforge",
				logger.Component("cli"),
				"store", cfg.store.Driver,
				"mail", cfg.email.Driver,
				"upload", cfg.upload.Driver,
			)
			out := cmd.OutOrStdout()
			srv := httpserver.NewFromConfig(cfg.http,
				httpserver.WithLogger(log),
				httpserver.OnReady(func(addr string) {
					fmt.Fprintf(out, "mailforge listening on http://%s\n", addr)
				}),
				httpserver.OnShutdown(sessions.Close),
			)
			return srv.Run(ctx, api.New(sessions, apiOpts...).Router())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}
