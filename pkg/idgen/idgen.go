// Package idgen provides pluggable ID generation for template components.
//
// The block factory and the editor accept a Generator, so tests can swap in a
// deterministic Sequence while production code uses UUIDv7.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// UUIDv7 returns a Generator that produces RFC 9562 UUID v7 strings.
// Values are time-sortable and never collide across processes.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Sequence returns a Generator producing "1", "2", "3", ... It is safe for
// concurrent use and intended for tests and fixtures.
func Sequence() Generator {
	var n atomic.Uint64
	return func() string {
		return strconv.FormatUint(n.Add(1), 10)
	}
}

// Prefixed wraps gen and prepends prefix to every ID.
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Default is the generator used when none is injected.
var Default Generator = UUIDv7()

// New produces an ID using the Default generator.
func New() string {
	return Default()
}
