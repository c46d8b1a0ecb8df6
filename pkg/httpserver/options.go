package httpserver

import (
	"log/slog"
	"time"
)

// Option configures a Server.
type Option func(*config)

// WithAddr sets the listen address. An empty addr keeps the current one.
func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

// WithTimeouts sets the read, write and idle timeouts of the underlying
// http.Server. Non-positive values leave that timeout unset.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(c *config) {
		c.readTimeout = max(read, 0)
		c.writeTimeout = max(write, 0)
		c.idleTimeout = max(idle, 0)
	}
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight requests.
// Non-positive values are ignored.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WithLogger sets the logger. Nil means discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// OnReady registers fn to receive the bound address once the listener is
// open, before the first request is served.
func OnReady(fn func(addr string)) Option {
	return func(c *config) {
		if fn != nil {
			c.ready = append(c.ready, fn)
		}
	}
}

// OnShutdown registers closers that run in order after in-flight requests
// have drained: the session manager, the template store. Their errors are
// joined into the Shutdown result.
func OnShutdown(closers ...func() error) Option {
	return func(c *config) {
		for _, fn := range closers {
			if fn != nil {
				c.closers = append(c.closers, fn)
			}
		}
	}
}
