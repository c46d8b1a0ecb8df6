// Package upload turns image bytes into a public URL for the src prop of an
// image block.
//
// Three Uploader implementations are provided:
//   - Func adapts a plain function supplied by the host application
//   - Endpoint POSTs a multipart form to an HTTP endpoint and reads the URL back
//   - Storage writes into a file.Storage (local disk or S3) and returns its URL
package upload

import (
	"context"
	"errors"
)

var (
	ErrEmptyFile         = errors.New("upload: empty file")
	ErrNotImage          = errors.New("upload: file is not an image")
	ErrTooLarge          = errors.New("upload: file too large")
	ErrUploadFailed      = errors.New("upload: request failed")
	ErrUnexpectedStatus  = errors.New("upload: unexpected response status")
	ErrNoURL             = errors.New("upload: response carries no url")
	ErrInvalidEndpoint   = errors.New("upload: invalid endpoint url")
	ErrUploaderMissing   = errors.New("upload: no uploader configured")
	ErrStorageNotDefined = errors.New("upload: storage is nil")
)

// File is a binary payload handed to an Uploader.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (f File) Size() int64 { return int64(len(f.Data)) }

// Uploader stores a file and returns the URL it is reachable at.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// Func adapts an ordinary function to the Uploader interface.
type Func func(ctx context.Context, f File) (string, error)

// Upload calls fn.
func (fn Func) Upload(ctx context.Context, f File) (string, error) {
	return fn(ctx, f)
}
