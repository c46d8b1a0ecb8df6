package logger

import (
	"context"
	"log/slog"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	sessionIDKey
)

// ContextWithRequestID stores id so loggers built by New attach it to every
// record logged with the returned context. Empty ids leave ctx unchanged.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithSessionID is ContextWithRequestID for editor session ids.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// SessionIDFromContext returns the id stored by ContextWithSessionID.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := RequestIDFromContext(ctx)
	return RequestID(id), id != ""
}

func sessionIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := SessionIDFromContext(ctx)
	return SessionID(id), id != ""
}
