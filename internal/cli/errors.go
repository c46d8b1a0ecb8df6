package cli

import "errors"

var (
	ErrUnknownFormat     = errors.New("unknown output format")
	ErrUnknownBlock      = errors.New("unknown block type")
	ErrReadTemplate      = errors.New("failed to read template")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrLoadConfiguration = errors.New("failed to load configuration")
)
