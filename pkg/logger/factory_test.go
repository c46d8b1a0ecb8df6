package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Info("shown", logger.SessionID("s1"))
	entry := decode(t, buf)
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "s1", entry["session_id"])
}

func TestNew_TextFormat(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithLevel(slog.LevelDebug))
	log.Debug("hello", logger.Operation("insert"))
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "op=insert")
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	assert.NotPanics(t, func() { logger.New(logger.WithFormat(logger.FormatText)) })
}

func TestWithAttr(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("app", "mailforge")))
	log.Info("x")
	assert.Equal(t, "mailforge", decode(t, buf)["app"])
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextValue("request_id", ctxKey{}),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			return slog.String("static", "yes"), true
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.With("k", "v").InfoContext(ctx, "x")
	entry := decode(t, buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "yes", entry["static"])
	assert.Equal(t, "v", entry["k"])

	buf.Reset()
	log.InfoContext(context.Background(), "y")
	entry = decode(t, buf)
	assert.NotContains(t, entry, "request_id")
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))

	ctx := logger.ContextWithRequestID(context.Background(), "req-1")
	ctx = logger.ContextWithSessionID(ctx, "s1")
	assert.Equal(t, "req-1", logger.RequestIDFromContext(ctx))
	assert.Equal(t, "s1", logger.SessionIDFromContext(ctx))

	log.InfoContext(ctx, "x")
	entry := decode(t, buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "s1", entry["session_id"])

	buf.Reset()
	empty := logger.ContextWithSessionID(context.Background(), "")
	assert.Equal(t, context.Background(), empty)
	log.InfoContext(empty, "y")
	entry = decode(t, buf)
	assert.NotContains(t, entry, "request_id")
	assert.NotContains(t, entry, "session_id")
}

func TestContextIDs_NotRepeated(t *testing.T) {
	t.Parallel()

	ctx := logger.ContextWithSessionID(context.Background(), "from-ctx")

	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want string
	}{
		{
			name: "record attr wins",
			log:  func(l *slog.Logger) { l.InfoContext(ctx, "x", logger.SessionID("from-record")) },
			want: "from-record",
		},
		{
			name: "bound attr wins",
			log:  func(l *slog.Logger) { l.With(logger.SessionID("bound")).InfoContext(ctx, "x") },
			want: "bound",
		},
		{
			name: "bound before group still wins",
			log: func(l *slog.Logger) {
				l.With(logger.SessionID("bound")).WithGroup("g").InfoContext(ctx, "x", slog.Int("n", 1))
			},
			want: "bound",
		},
		{
			name: "context fills the gap",
			log:  func(l *slog.Logger) { l.With(logger.Component("api")).InfoContext(ctx, "x") },
			want: "from-ctx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			tt.log(logger.New(logger.WithOutput(buf)))
			assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"session_id"`)), buf.String())
			assert.Equal(t, tt.want, decode(t, buf)["session_id"])
		})
	}
}

func TestContextExtractors_FirstKeyWins(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextValue("request_id", ctxKey{}),
	)

	ctx := logger.ContextWithRequestID(context.Background(), "builtin")
	ctx = context.WithValue(ctx, ctxKey{}, "custom")
	log.InfoContext(ctx, "x")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"request_id"`)), buf.String())
	assert.Equal(t, "builtin", decode(t, buf)["request_id"])
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env      string
		wantEnv  string
		wantJSON bool
		debug    bool
	}{
		{"development", logger.EnvDevelopment, false, true},
		{"", logger.EnvDevelopment, false, true},
		{"stage", logger.EnvStaging, true, false},
		{"production", logger.EnvProduction, true, false},
		{"prod", logger.EnvProduction, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			log := logger.New(logger.WithEnvironment(tt.env, "svc"), logger.WithOutput(buf))
			log.Debug("d")
			if !tt.debug {
				assert.Empty(t, buf.String())
			}
			buf.Reset()
			log.Info("i")
			if tt.wantJSON {
				entry := decode(t, buf)
				assert.Equal(t, "svc", entry["service"])
				assert.Equal(t, tt.wantEnv, entry["env"])
				return
			}
			assert.Contains(t, buf.String(), "service=svc")
			assert.Contains(t, buf.String(), "env="+tt.wantEnv)
		})
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts := logger.FromConfig(logger.Config{Env: "production", Service: "mf", Level: "debug", Format: "TEXT"})
	log := logger.New(append(opts, logger.WithOutput(buf))...)
	log.Debug("d")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "env=production")

	buf.Reset()
	opts = logger.FromConfig(logger.Config{Env: "production", Level: "nonsense"})
	log = logger.New(append(opts, logger.WithOutput(buf))...)
	log.Debug("d")
	assert.Empty(t, buf.String())
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.False(t, logger.Discard().Enabled(context.Background(), slog.LevelError))
}
