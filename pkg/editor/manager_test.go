package editor_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/editor"
	"github.com/dmitrymomot/mailforge/pkg/idgen"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newManager(t *testing.T, opts ...editor.ManagerOption) (*editor.Manager, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts = append([]editor.ManagerOption{
		editor.WithClock(c.Now),
		editor.WithSessionIDGenerator(idgen.Prefixed("s", idgen.Sequence())),
	}, opts...)
	m := editor.NewManager(opts...)
	t.Cleanup(func() { _ = m.Close() })
	return m, c
}

func TestManager_CreateGetDelete(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, editor.WithSessionOptions(editor.WithHistoryLimit(5)))

	s, err := m.Create(document.Template{Components: []document.Component{text("a", "A")}})
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID())

	got, err := m.Get("s1")
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())

	m.Delete("s1")
	_, err = m.Get("s1")
	assert.ErrorIs(t, err, editor.ErrSessionNotFound)
	m.Delete("s1")
}

func TestManager_IdleTTL(t *testing.T) {
	t.Parallel()

	m, c := newManager(t, editor.WithIdleTTL(time.Minute))

	a, err := m.Create(document.Template{})
	require.NoError(t, err)
	b, err := m.Create(document.Template{})
	require.NoError(t, err)

	c.Advance(40 * time.Second)
	_, err = m.Get(a.ID())
	require.NoError(t, err, "touching refreshes the idle timer")

	c.Advance(40 * time.Second)
	assert.Equal(t, 1, m.Sweep())
	_, err = m.Get(b.ID())
	assert.ErrorIs(t, err, editor.ErrSessionNotFound)
	_, err = m.Get(a.ID())
	require.NoError(t, err)

	c.Advance(2 * time.Minute)
	_, err = m.Get(a.ID())
	assert.ErrorIs(t, err, editor.ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManager_MaxSessionsEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	m, c := newManager(t, editor.WithMaxSessions(2))

	a, _ := m.Create(document.Template{})
	c.Advance(time.Second)
	b, _ := m.Create(document.Template{})
	c.Advance(time.Second)
	_, _ = m.Get(a.ID())
	c.Advance(time.Second)
	_, err := m.Create(document.Template{})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
	_, err = m.Get(b.ID())
	assert.ErrorIs(t, err, editor.ErrSessionNotFound)
	_, err = m.Get(a.ID())
	assert.NoError(t, err)
}

func TestManager_Close(t *testing.T) {
	t.Parallel()

	m := editor.NewManager(editor.WithIdleTTL(time.Millisecond), editor.WithSweepInterval(time.Millisecond))
	_, err := m.Create(document.Template{})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	_, err = m.Create(document.Template{})
	assert.ErrorIs(t, err, editor.ErrManagerClosed)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, editor.FromConfig(editor.Config{MaxSessions: 1, HistoryLimit: 2})...)
	s, err := m.Create(document.Template{Components: []document.Component{text("a", "0")}})
	require.NoError(t, err)
	setContent(t, s, "a", "1")
	setContent(t, s, "a", "2")
	assert.Equal(t, 2, s.State().History)

	_, err = m.Create(document.Template{})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}
