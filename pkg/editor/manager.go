package editor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/idgen"
	"github.com/dmitrymomot/mailforge/pkg/logger"
)

// Config holds the session manager settings.
type Config struct {
	IdleTTL       time.Duration `env:"EDITOR_SESSION_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"EDITOR_SWEEP_INTERVAL" envDefault:"1m"`
	MaxSessions   int           `env:"EDITOR_MAX_SESSIONS" envDefault:"1000"`
	HistoryLimit  int           `env:"EDITOR_HISTORY_LIMIT" envDefault:"100"`
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithIdleTTL sets how long an untouched session survives. Zero keeps
// sessions until they are deleted.
func WithIdleTTL(d time.Duration) ManagerOption {
	return func(m *Manager) { m.ttl = d }
}

// WithSweepInterval sets how often idle sessions are collected. Zero
// disables the background sweep; Sweep can still be called directly.
func WithSweepInterval(d time.Duration) ManagerOption {
	return func(m *Manager) { m.interval = d }
}

// WithMaxSessions caps live sessions. Creating one past the cap evicts the
// least recently used session. Zero means no cap.
func WithMaxSessions(n int) ManagerOption {
	return func(m *Manager) { m.max = n }
}

// WithSessionOptions sets options applied to every session the manager
// creates, before the per-call options.
func WithSessionOptions(opts ...Option) ManagerOption {
	return func(m *Manager) { m.sessionOpts = append(m.sessionOpts, opts...) }
}

func WithSessionIDGenerator(gen idgen.Generator) ManagerOption {
	return func(m *Manager) {
		if gen != nil {
			m.gen = gen
		}
	}
}

// WithClock replaces time.Now. Intended for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// FromConfig converts cfg to manager options.
func FromConfig(cfg Config) []ManagerOption {
	return []ManagerOption{
		WithIdleTTL(cfg.IdleTTL),
		WithSweepInterval(cfg.SweepInterval),
		WithMaxSessions(cfg.MaxSessions),
		WithSessionOptions(WithHistoryLimit(cfg.HistoryLimit)),
	}
}

type managed struct {
	session  *Session
	lastUsed time.Time
}

// Manager keeps editor sessions by id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*managed
	closed   bool

	ttl         time.Duration
	interval    time.Duration
	max         int
	sessionOpts []Option
	gen         idgen.Generator
	now         func() time.Time
	log         *slog.Logger

	ticker *time.Ticker
	done   chan struct{}
}

// NewManager creates a manager and starts the idle sweep when both a TTL
// and a sweep interval are set.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: make(map[string]*managed),
		gen:      idgen.Default,
		now:      time.Now,
		log:      logger.Discard(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("editor"))

	if m.ttl > 0 && m.interval > 0 {
		m.ticker = time.NewTicker(m.interval)
		go m.sweepLoop()
	}
	return m
}

// Create starts a session on initial and registers it.
func (m *Manager) Create(initial document.Template, opts ...Option) (*Session, error) {
	all := make([]Option, 0, len(m.sessionOpts)+len(opts)+2)
	all = append(all, WithID(m.gen()), WithLogger(m.log))
	all = append(all, m.sessionOpts...)
	all = append(all, opts...)
	s := New(initial, all...)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrManagerClosed
	}
	if m.max > 0 && len(m.sessions) >= m.max {
		m.evictOldest()
	}
	m.sessions[s.ID()] = &managed{session: s, lastUsed: m.now()}

	m.log.Debug("session created", logger.SessionID(s.ID()))
	return s, nil
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := m.now()
	if m.expired(e, now) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	e.lastUsed = now
	return e.session, nil
}

// Delete forgets a session. Unknown ids are ignored.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of registered sessions, expired ones included
// until the next sweep.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes idle sessions and returns how many were dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for id, e := range m.sessions {
		if m.expired(e, now) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.log.Info("idle sessions removed", slog.Int("count", n))
	}
	return n
}

// Close stops the background sweep and rejects new sessions.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	if m.ticker != nil {
		m.ticker.Stop()
	}
	close(m.done)
	return nil
}

func (m *Manager) expired(e *managed, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.lastUsed) > m.ttl
}

// evictOldest must be called with m.mu held.
func (m *Manager) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range m.sessions {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
		m.log.Warn("session evicted", logger.SessionID(oldestID))
	}
}

func (m *Manager) sweepLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.Sweep()
		case <-m.done:
			return
		}
	}
}
