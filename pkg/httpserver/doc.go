// Package httpserver runs the editor API over net/http with graceful
// shutdown, env-driven timeouts and health probes.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.OnShutdown(sessions.Close),
//	)
//	err := srv.Run(ctx, router)
//
// OnShutdown closers run after the last request drained. Run returns errors
// wrapped with ErrStart; Shutdown wraps with ErrShutdown.
package httpserver
