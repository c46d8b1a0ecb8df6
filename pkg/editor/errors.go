package editor

import "errors"

var (
	ErrSessionNotFound   = errors.New("editor session not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrNotImage          = errors.New("component is not an image")
	ErrManagerClosed     = errors.New("session manager is closed")
	ErrInvalidUpdate     = errors.New("invalid component update")
	ErrGridColumns       = errors.New("grid columns change only through SetColumns")
)
