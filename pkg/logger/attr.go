package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// SessionID records the editor session identifier under "session_id".
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// ComponentID records a template node identifier under "component_id".
func ComponentID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("component_id", id)
}

// TemplateID records a stored template identifier under "template_id".
func TemplateID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("template_id", id)
}

// BlockType records a block type under "block_type".
func BlockType(t string) slog.Attr {
	return slog.String("block_type", t)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Operation records the editor operation name under "op".
func Operation(name string) slog.Attr {
	return slog.String("op", name)
}

// Duration records a duration under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the emitting subsystem under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
