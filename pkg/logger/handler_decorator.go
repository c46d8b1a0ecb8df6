package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls an attribute out of a record's context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator adds context attributes to each record before
// delegating to next. An extracted attribute is skipped when its key is
// already present on the record or was bound with WithAttrs, so a logger
// carrying session_id does not repeat it for a context that carries the
// same identifier. Attributes bound after WithGroup live in that group and
// do not shadow extracted keys.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
	bound      map[string]struct{}
	grouped    bool
}

// NewLogHandlerDecorator wraps next. Nil extractors are dropped.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &LogHandlerDecorator{next: next, extractors: clean}
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds the extracted attributes to rec and forwards it. When two
// extractors yield the same key the first one wins.
func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 {
		return h.next.Handle(ctx, rec)
	}

	seen := make(map[string]struct{}, rec.NumAttrs()+len(h.extractors))
	if !h.grouped {
		rec.Attrs(func(a slog.Attr) bool {
			seen[a.Key] = struct{}{}
			return true
		})
	}

	extra := make([]slog.Attr, 0, len(h.extractors))
	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok || attr.Equal(slog.Attr{}) {
			continue
		}
		if _, dup := h.bound[attr.Key]; dup {
			continue
		}
		if _, dup := seen[attr.Key]; dup {
			continue
		}
		seen[attr.Key] = struct{}{}
		extra = append(extra, attr)
	}
	rec.AddAttrs(extra...)
	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := h.bound
	if !h.grouped && len(attrs) > 0 {
		bound = make(map[string]struct{}, len(h.bound)+len(attrs))
		for k := range h.bound {
			bound[k] = struct{}{}
		}
		for _, a := range attrs {
			bound[a.Key] = struct{}{}
		}
	}
	return &LogHandlerDecorator{
		next:       h.next.WithAttrs(attrs),
		extractors: h.extractors,
		bound:      bound,
		grouped:    h.grouped,
	}
}

func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &LogHandlerDecorator{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
		bound:      h.bound,
		grouped:    true,
	}
}
