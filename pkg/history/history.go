// Package history keeps a linear undo/redo log of whole-tree snapshots.
//
// The log starts with one entry, the initial tree. Commit appends a snapshot
// only when it serializes differently from the entry under the cursor; when
// the cursor is behind the end, the entries after it are discarded first.
// Undo and Redo only move the cursor and are no-ops at the boundaries.
//
// A Manager is not safe for concurrent use; the editor session that owns it
// serializes access.
package history

import (
	"github.com/dmitrymomot/mailforge/pkg/document"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps the number of retained entries. When the cap is exceeded the
// oldest entries are dropped. Values below 2 disable the cap.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n >= 2 {
			m.limit = n
		}
	}
}

// Manager holds snapshots and a cursor into them.
type Manager struct {
	entries []entry
	cursor  int
	limit   int
}

type entry struct {
	tree []document.Component
	key  string
}

// New creates a log whose single entry is initial.
func New(initial []document.Component, opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	m.entries = []entry{snapshot(initial)}
	return m
}

func snapshot(tree []document.Component) entry {
	cp := document.CloneAll(tree)
	if cp == nil {
		cp = []document.Component{}
	}
	return entry{tree: cp, key: string(document.Serialize(cp))}
}

// Commit records tree as the newest entry when it differs from the current
// one and reports whether an entry was appended.
func (m *Manager) Commit(tree []document.Component) bool {
	next := snapshot(tree)
	if next.key == m.entries[m.cursor].key {
		return false
	}
	m.entries = append(m.entries[:m.cursor+1:m.cursor+1], next)
	m.cursor = len(m.entries) - 1

	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		m.entries = append([]entry(nil), m.entries[drop:]...)
		m.cursor -= drop
	}
	return true
}

// Undo steps back one entry. It returns the current tree and whether the
// cursor moved.
func (m *Manager) Undo() ([]document.Component, bool) {
	if m.cursor == 0 {
		return m.Current(), false
	}
	m.cursor--
	return m.Current(), true
}

// Redo steps forward one entry. It returns the current tree and whether the
// cursor moved.
func (m *Manager) Redo() ([]document.Component, bool) {
	if m.cursor >= len(m.entries)-1 {
		return m.Current(), false
	}
	m.cursor++
	return m.Current(), true
}

// Current returns a copy of the entry under the cursor.
func (m *Manager) Current() []document.Component {
	return document.CloneAll(m.entries[m.cursor].tree)
}

// Entries returns copies of every retained snapshot, oldest first.
func (m *Manager) Entries() [][]document.Component {
	out := make([][]document.Component, len(m.entries))
	for i, e := range m.entries {
		out[i] = document.CloneAll(e.tree)
	}
	return out
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries)-1 }
func (m *Manager) Len() int      { return len(m.entries) }
func (m *Manager) Cursor() int   { return m.cursor }

// Reset discards every entry and starts over from tree.
func (m *Manager) Reset(tree []document.Component) {
	m.entries = []entry{snapshot(tree)}
	m.cursor = 0
}
