package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailforge/handler"
	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/editor"
	"github.com/dmitrymomot/mailforge/pkg/email"
	"github.com/dmitrymomot/mailforge/pkg/store"
	"github.com/dmitrymomot/mailforge/pkg/upload"
)

var (
	errNotConfigured  = handler.NewHTTPError(http.StatusNotImplemented, "not_configured")
	errStoreMissing   = errors.New("template store is not configured")
	errMailerMissing  = errors.New("mailer is not configured")
	errUploadRejected = handler.NewHTTPError(http.StatusBadGateway, "upload_failed")
	errSendFailed     = handler.NewHTTPError(http.StatusBadGateway, "send_failed")
)

// mapError classifies domain errors for handler.NewErrorHandler.
func mapError(err error) (handler.HTTPError, bool) {
	switch {
	case errors.Is(err, editor.ErrSessionNotFound),
		errors.Is(err, editor.ErrComponentNotFound),
		errors.Is(err, store.ErrNotFound):
		return handler.ErrNotFound, true
	case errors.Is(err, editor.ErrNotImage),
		errors.Is(err, upload.ErrNotImage),
		errors.Is(err, upload.ErrEmptyFile),
		errors.Is(err, store.ErrInvalidRecord),
		errors.Is(err, email.ErrInvalidMessage),
		errors.Is(err, editor.ErrInvalidUpdate),
		isDocumentError(err):
		return handler.ErrUnprocessableEntity, true
	case errors.Is(err, upload.ErrTooLarge):
		return handler.ErrRequestEntityTooLarge, true
	case errors.Is(err, upload.ErrUploaderMissing),
		errors.Is(err, errStoreMissing),
		errors.Is(err, errMailerMissing):
		return errNotConfigured, true
	case errors.Is(err, upload.ErrUploadFailed),
		errors.Is(err, upload.ErrUnexpectedStatus),
		errors.Is(err, upload.ErrNoURL):
		return errUploadRejected, true
	case errors.Is(err, email.ErrFailedToSendEmail):
		return errSendFailed, true
	case errors.Is(err, editor.ErrManagerClosed):
		return handler.ErrServiceUnavailable, true
	}
	return handler.HTTPError{}, false
}

func isDocumentError(err error) bool {
	for _, target := range []error{
		document.ErrMalformedTemplate,
		document.ErrDuplicateID,
		document.ErrEmptyID,
		document.ErrUnknownType,
		document.ErrLeafChildren,
		document.ErrColumnMismatch,
		document.ErrInvalidColumn,
		document.ErrUnencodableProps,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
