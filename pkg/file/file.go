package file

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Object describes a stored blob.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage is a flat key/value blob store with public URLs.
type Storage interface {
	// Put stores the content of r under key, replacing any previous object.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Object, error)
	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) bool
	// URL returns the public URL of key.
	URL(key string) string
}

var imageMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"image/bmp",
	"image/avif",
}

// ImageMIMETypes returns the content types accepted as email images.
func ImageMIMETypes() []string {
	return slices.Clone(imageMIMETypes)
}

// IsImage reports whether the content type is an accepted image type.
// Parameters such as "; charset=utf-8" are ignored.
func IsImage(contentType string) bool {
	return slices.Contains(imageMIMETypes, baseType(contentType))
}

// DetectContentType sniffs the content type from the first bytes of data.
// SVG is detected by its extension, since sniffing reports it as text.
func DetectContentType(data []byte, filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".svg") {
		return "image/svg+xml"
	}
	return baseType(http.DetectContentType(data))
}

// ValidateMIMEType checks contentType against allowed. No allowed types
// means everything passes.
func ValidateMIMEType(contentType string, allowed ...string) error {
	if len(allowed) == 0 || slices.Contains(allowed, baseType(contentType)) {
		return nil
	}
	return fmt.Errorf("MIME type %s not in allowed types %v: %w", contentType, allowed, ErrMIMETypeNotAllowed)
}

// ValidateSize checks that size does not exceed maxBytes. Zero disables the check.
func ValidateSize(size, maxBytes int64) error {
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", size, maxBytes, ErrFileTooLarge)
	}
	return nil
}

// SanitizeFilename removes path components and NUL bytes from a client
// supplied filename. Returns "unnamed" for empty or special references.
//
//	file.SanitizeFilename("../../../etc/passwd") // "passwd"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = path.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}

// cleanKey normalizes an object key and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if key == "" || slices.Contains(strings.Split(key, "/"), "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return path.Clean(key), nil
}

func baseType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
