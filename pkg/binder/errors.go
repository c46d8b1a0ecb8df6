package binder

import "errors"

var (
	// ErrBinderNotApplicable tells Wrap to skip a binder for this request.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidPath          = errors.New("invalid path parameter")
	ErrInvalidQuery         = errors.New("invalid query parameter")
	ErrInvalidFile          = errors.New("invalid file upload")
	ErrMissingFile          = errors.New("missing file")
	ErrFileTooLarge         = errors.New("file too large")
)
