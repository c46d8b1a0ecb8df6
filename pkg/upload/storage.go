package upload

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/file"
	"github.com/dmitrymomot/mailforge/pkg/idgen"
)

// DefaultMaxSize is the upload limit applied by Storage unless overridden.
const DefaultMaxSize = 5 << 20

// Storage uploads images into a file.Storage under "<prefix>/<id><ext>".
type Storage struct {
	store   file.Storage
	prefix  string
	maxSize int64
	gen     idgen.Generator
}

// StorageOption configures a Storage uploader.
type StorageOption func(*Storage)

// WithPrefix sets the key prefix, "images" by default.
func WithPrefix(prefix string) StorageOption {
	return func(s *Storage) {
		s.prefix = strings.Trim(prefix, "/")
	}
}

// WithMaxSize sets the size limit in bytes. Zero disables it.
func WithMaxSize(n int64) StorageOption {
	return func(s *Storage) {
		s.maxSize = n
	}
}

// WithKeyGenerator sets the source of object names.
func WithKeyGenerator(gen idgen.Generator) StorageOption {
	return func(s *Storage) {
		if gen != nil {
			s.gen = gen
		}
	}
}

// NewStorage returns an uploader writing into store.
func NewStorage(store file.Storage, opts ...StorageOption) (*Storage, error) {
	if store == nil {
		return nil, ErrStorageNotDefined
	}
	s := &Storage{
		store:   store,
		prefix:  "images",
		maxSize: DefaultMaxSize,
		gen:     idgen.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Upload validates f as an image, stores it and returns its public URL.
// The content type is sniffed from the data; the client-declared one is
// only used for SVG, which cannot be sniffed.
func (s *Storage) Upload(ctx context.Context, f File) (string, error) {
	if len(f.Data) == 0 {
		return "", ErrEmptyFile
	}
	if err := file.ValidateSize(f.Size(), s.maxSize); err != nil {
		return "", errors.Join(ErrTooLarge, err)
	}

	name := file.SanitizeFilename(f.Name)
	if f.ContentType == "image/svg+xml" && !strings.EqualFold(path.Ext(name), ".svg") {
		name += ".svg"
	}
	contentType := file.DetectContentType(f.Data, name)
	if err := file.ValidateMIMEType(contentType, file.ImageMIMETypes()...); err != nil {
		return "", errors.Join(ErrNotImage, err)
	}

	key := s.gen() + extension(contentType)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	obj, err := s.store.Put(ctx, key, bytes.NewReader(f.Data), contentType)
	if err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}
	return s.store.URL(obj.Key), nil
}

var extensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/bmp":     ".bmp",
	"image/avif":    ".avif",
}

func extension(contentType string) string {
	return extensions[contentType]
}
