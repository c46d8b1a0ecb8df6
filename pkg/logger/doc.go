// Package logger builds the service's *slog.Logger and keeps attribute names
// consistent across packages.
//
// New takes functional options (format, level, output, static attributes,
// context extractors). WithEnvironment applies per-environment presets and
// FromConfig maps the env-loaded Config onto options:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.New(logger.FromConfig(cfg)...)
//	log.InfoContext(ctx, "component updated",
//		logger.SessionID(sess.ID()),
//		logger.ComponentID(id),
//	)
//
// ContextWithRequestID and ContextWithSessionID put identifiers on a
// context; every logger from New logs them for records made with that
// context unless the record or logger already carries the same key.
//
// Helpers such as Error and Errors return an empty Attr for nil errors, so
// they can be passed unconditionally.
package logger
