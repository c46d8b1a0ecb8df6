package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/mailforge/pkg/file"
)

// Supported drivers.
const (
	DriverNone     = "none"
	DriverLocal    = "local"
	DriverS3       = "s3"
	DriverEndpoint = "endpoint"
)

var ErrUnknownDriver = errors.New("upload: unknown driver")

// Config selects the uploader used by image blocks.
type Config struct {
	Driver      string `env:"UPLOAD_DRIVER" envDefault:"local"`
	LocalDir    string `env:"UPLOAD_DIR" envDefault:"uploads"`
	LocalURL    string `env:"UPLOAD_BASE_URL" envDefault:"/uploads/"`
	EndpointURL string `env:"UPLOAD_ENDPOINT"`
	// EndpointAuth is sent as the Authorization header to EndpointURL.
	EndpointAuth string `env:"UPLOAD_ENDPOINT_AUTH"`
	MaxSize      int64  `env:"UPLOAD_MAX_SIZE" envDefault:"5242880"`
	S3           file.S3Config
}

// FromConfig builds the uploader cfg describes. DriverNone yields a nil
// Uploader, which makes image uploads fail with ErrUploaderMissing.
func FromConfig(ctx context.Context, cfg Config) (Uploader, error) {
	switch cfg.Driver {
	case DriverNone:
		return nil, nil
	case DriverLocal, "":
		store, err := file.NewLocalStorage(cfg.LocalDir, cfg.LocalURL)
		if err != nil {
			return nil, fmt.Errorf("upload: local storage: %w", err)
		}
		return NewStorage(store, WithMaxSize(cfg.MaxSize))
	case DriverS3:
		store, err := file.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("upload: s3 storage: %w", err)
		}
		return NewStorage(store, WithMaxSize(cfg.MaxSize))
	case DriverEndpoint:
		var opts []EndpointOption
		if cfg.EndpointAuth != "" {
			opts = append(opts, WithHeader("Authorization", cfg.EndpointAuth))
		}
		return NewEndpoint(cfg.EndpointURL, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
