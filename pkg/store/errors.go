package store

import "errors"

var (
	ErrNotFound       = errors.New("template not found")
	ErrInvalidRecord  = errors.New("invalid template record")
	ErrUnknownDriver  = errors.New("unknown store driver")
	ErrEncodeTemplate = errors.New("failed to encode template")
	ErrDecodeTemplate = errors.New("failed to decode template")

	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
	ErrFailedToParseRedisURL    = errors.New("failed to parse redis connection string")
	ErrRedisNotReady            = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed        = errors.New("store healthcheck failed")
)
