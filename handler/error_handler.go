package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/mailforge/pkg/binder"
	"github.com/dmitrymomot/mailforge/pkg/logger"
)

// ErrorMapper translates a domain error into an HTTPError. It returns false
// for errors it does not know.
type ErrorMapper func(error) (HTTPError, bool)

// ErrorTarget is the element Datastar clients receive error patches into.
const ErrorTarget = "#editor-error"

// NewErrorHandler returns the API error handler. Errors pass through mappers
// first; client errors are logged at warn and server errors at error, with
// the chi request id. Datastar clients get an element patch into
// ErrorTarget, other clients a JSON envelope.
func NewErrorHandler(log *slog.Logger, mappers ...ErrorMapper) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	mappers = append(mappers[:len(mappers):len(mappers)], BindErrors)
	return func(ctx Context, err error) {
		err = mapError(err, mappers)
		status, detail := errorToDetail(err)

		r := ctx.Request()
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("api"),
		)

		if IsDataStar(r) {
			sse := datastar.NewSSE(ctx.ResponseWriter(), r)
			_ = sse.PatchElementTempl(errorAlert(status, detail.Message), datastar.WithSelector(ErrorTarget))
			return
		}
		_ = JSONError(err).Render(ctx.ResponseWriter(), r)
	}
}

// mappedError keeps the domain message while classifying as HTTPError.
type mappedError struct {
	status HTTPError
	cause  error
}

func (e mappedError) Error() string   { return e.cause.Error() }
func (e mappedError) Unwrap() []error { return []error{e.status, e.cause} }

// BindErrors maps binder failures to client errors. NewErrorHandler always
// consults it after the caller's mappers.
func BindErrors(err error) (HTTPError, bool) {
	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrUnsupportedMediaType, true
	case errors.Is(err, binder.ErrFileTooLarge):
		return ErrRequestEntityTooLarge, true
	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrInvalidPath),
		errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidFile),
		errors.Is(err, binder.ErrMissingFile):
		return ErrBadRequest, true
	}
	return HTTPError{}, false
}

func mapError(err error, mappers []ErrorMapper) error {
	var herr HTTPError
	if errors.As(err, &herr) {
		return err
	}
	for _, m := range mappers {
		if mapped, ok := m(err); ok {
			return mappedError{status: mapped, cause: err}
		}
	}
	return err
}

func errorAlert(status int, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="editor-error" role="alert" data-status="%d">%s</div>`,
			status, templ.EscapeString(message))
		return err
	})
}
