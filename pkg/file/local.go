package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage implements Storage on the local filesystem.
// All operations are confined to baseDir.
type LocalStorage struct {
	baseDir       string
	baseURL       string
	uploadTimeout time.Duration
}

// LocalOption configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalUploadTimeout bounds the duration of a single Put.
func WithLocalUploadTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.uploadTimeout = timeout
	}
}

// NewLocalStorage creates baseDir when missing and serves objects under
// baseURL (e.g. "/uploads/").
func NewLocalStorage(baseDir, baseURL string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}
	if err := os.MkdirAll(absBaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &LocalStorage{baseDir: absBaseDir, baseURL: baseURL}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the absolute base directory, for serving files over HTTP.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// Put writes r to key. Partial files are removed on failure.
func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, contentType string) (Object, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	key, absPath, err := s.resolve(key)
	if err != nil {
		return Object{}, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return Object{}, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return Object{}, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	written, err := io.Copy(dst, &ctxReader{ctx: ctx, r: r})
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Object{}, ctxErr
		}
		return Object{}, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return Object{Key: key, Size: written, ContentType: contentType}, nil
}

// Delete removes the file under key.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, absPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// Exists reports whether a regular file is stored under key.
func (s *LocalStorage) Exists(ctx context.Context, key string) bool {
	if ctx.Err() != nil {
		return false
	}
	_, absPath, err := s.resolve(key)
	if err != nil {
		return false
	}
	info, err := os.Stat(absPath)
	return err == nil && !info.IsDir()
}

// URL returns baseURL joined with key.
func (s *LocalStorage) URL(key string) string {
	key = strings.TrimPrefix(filepath.ToSlash(filepath.Clean(key)), "/")
	return s.baseURL + key
}

// resolve validates key and maps it to an absolute path inside baseDir.
func (s *LocalStorage) resolve(key string) (string, string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", "", err
	}
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}
	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return key, absPath, nil
}

// ctxReader stops a copy once the context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
