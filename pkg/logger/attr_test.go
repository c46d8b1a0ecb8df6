package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailforge/pkg/logger"
)

func TestIdentifierAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want string
	}{
		{"session", logger.SessionID("s1"), "session_id", "s1"},
		{"component", logger.ComponentID("c1"), "component_id", "c1"},
		{"template", logger.TemplateID("t1"), "template_id", "t1"},
		{"request", logger.RequestID("r1"), "request_id", "r1"},
		{"block type", logger.BlockType("hero"), "block_type", "hero"},
		{"operation", logger.Operation("move"), "op", "move"},
		{"subsystem", logger.Component("api"), "component", "api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.String())
		})
	}
}

func TestIdentifierAttrs_Empty(t *testing.T) {
	t.Parallel()

	for _, a := range []slog.Attr{
		logger.SessionID(""),
		logger.ComponentID(""),
		logger.TemplateID(""),
		logger.RequestID(""),
	} {
		assert.True(t, a.Equal(slog.Attr{}))
	}
}

func TestDuration(t *testing.T) {
	t.Parallel()

	a := logger.Duration(150 * time.Millisecond)
	assert.Equal(t, "duration", a.Key)
	assert.Equal(t, 150*time.Millisecond, a.Value.Duration())
}

func TestErrorAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))

	err := errors.New("boom")
	a := logger.Error(err)
	assert.Equal(t, "error", a.Key)
	assert.Equal(t, err, a.Value.Any())

	grouped := logger.Errors(nil, err)
	assert.Equal(t, "errors", grouped.Key)
	group := grouped.Value.Group()
	if assert.Len(t, group, 1) {
		assert.Equal(t, "1", group[0].Key)
	}
}

func TestGroup(t *testing.T) {
	t.Parallel()

	g := logger.Group("tree", slog.Int("nodes", 3))
	assert.Equal(t, "tree", g.Key)
	assert.Len(t, g.Value.Group(), 1)
}
