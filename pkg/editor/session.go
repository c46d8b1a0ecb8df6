package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/mailforge/pkg/blocks"
	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/history"
	"github.com/dmitrymomot/mailforge/pkg/htmlgen"
	"github.com/dmitrymomot/mailforge/pkg/idgen"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/plaintext"
	"github.com/dmitrymomot/mailforge/pkg/sourcegen"
	"github.com/dmitrymomot/mailforge/pkg/upload"
)

// Drop target identifiers used by drag-and-drop clients.
const (
	CanvasID       = "email-canvas"
	DropzoneSuffix = "-dropzone"
)

// DropzoneID returns the drop-zone id rendered inside a container.
func DropzoneID(parentID string) string {
	return parentID + DropzoneSuffix
}

// DragEnd describes a finished drag gesture.
type DragEnd struct {
	// ActiveID is the dragged node, or a palette item id for new blocks.
	ActiveID string `json:"activeId"`
	// OverID is the element the pointer was released over. Empty means the
	// gesture ended outside any target.
	OverID string `json:"overId"`
	// ParentID is the container owning the drop zone under the pointer.
	ParentID string `json:"parentId,omitempty"`
	// IsNew marks a drag that started in the palette.
	IsNew bool `json:"isNew,omitempty"`
	// Type is the block type of a palette drag. When empty it is derived
	// from ActiveID.
	Type document.Type `json:"type,omitempty"`
}

func (d DragEnd) blockType() document.Type {
	if d.Type != "" {
		return d.Type
	}
	return document.Type(strings.TrimPrefix(d.ActiveID, blocks.PalettePrefix))
}

// State is a consistent view of a session.
type State struct {
	ID         string               `json:"id"`
	Components []document.Component `json:"components"`
	Selected   string               `json:"selected,omitempty"`
	CanUndo    bool                 `json:"canUndo"`
	CanRedo    bool                 `json:"canRedo"`
	History    int                  `json:"history"`
	Cursor     int                  `json:"cursor"`
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session identifier. A UUID is generated otherwise.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithOnChange registers fn to receive the full template after every
// committed change, including undo and redo. fn runs synchronously on the
// caller's goroutine after the session lock is released.
func WithOnChange(fn func(document.Template)) Option {
	return func(s *Session) { s.onChange = fn }
}

func WithFactory(f *blocks.Factory) Option {
	return func(s *Session) {
		if f != nil {
			s.factory = f
		}
	}
}

// WithUploader sets the collaborator used by UploadImage.
func WithUploader(u upload.Uploader) Option {
	return func(s *Session) { s.uploader = u }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistoryLimit caps the number of undo entries. Zero keeps all.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.historyLimit = n }
}

// Session is one template being edited.
type Session struct {
	mu       sync.Mutex
	id       string
	tree     []document.Component
	selected string
	hist     *history.Manager

	factory      *blocks.Factory
	uploader     upload.Uploader
	onChange     func(document.Template)
	log          *slog.Logger
	historyLimit int
}

// New starts a session on a copy of initial. The initial tree is the first
// history entry.
func New(initial document.Template, opts ...Option) *Session {
	s := &Session{
		factory: blocks.NewFactory(),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = idgen.New()
	}
	s.tree = document.CloneAll(initial.Components)
	if s.tree == nil {
		s.tree = []document.Component{}
	}
	s.hist = history.New(s.tree, history.WithLimit(s.historyLimit))
	s.log = s.log.With(logger.SessionID(s.id))
	return s
}

func (s *Session) ID() string { return s.id }

// Components returns a copy of the current tree.
func (s *Session) Components() []document.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	return document.CloneAll(s.tree)
}

// Template returns a copy of the current tree wrapped as a template.
func (s *Session) Template() document.Template {
	return document.Template{Components: s.Components()}
}

// State returns the tree, selection and history flags read under one lock.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:         s.id,
		Components: document.CloneAll(s.tree),
		Selected:   s.selected,
		CanUndo:    s.hist.CanUndo(),
		CanRedo:    s.hist.CanRedo(),
		History:    s.hist.Len(),
		Cursor:     s.hist.Cursor(),
	}
}

// Find returns a copy of the node with the given id.
func (s *Session) Find(id string) (document.Component, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := document.FindByID(s.tree, id)
	if !ok {
		return document.Component{}, false
	}
	return c.Clone(), true
}

// Select marks id as the selected node. An empty id clears the selection.
// Unknown ids are ignored.
func (s *Session) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && !document.Contains(s.tree, id) {
		return false
	}
	s.selected = id
	return true
}

// Selected returns the selected node, if any.
func (s *Session) Selected() (document.Component, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return document.Component{}, false
	}
	c, ok := document.FindByID(s.tree, s.selected)
	if !ok {
		return document.Component{}, false
	}
	return c.Clone(), true
}

// Drop applies a finished drag gesture and reports whether the tree changed.
func (s *Session) Drop(d DragEnd) bool {
	if d.OverID == "" {
		return false
	}

	if strings.HasSuffix(d.OverID, DropzoneSuffix) && d.ParentID != "" {
		if d.IsNew {
			_, ok := s.Add(d.blockType(), d.ParentID)
			return ok
		}
		return s.Move(d.ActiveID, d.ParentID)
	}

	if d.IsNew {
		if d.OverID == CanvasID || !strings.HasPrefix(d.OverID, blocks.PalettePrefix) {
			_, ok := s.Add(d.blockType(), "")
			return ok
		}
		return false
	}

	if d.OverID == CanvasID {
		return s.Move(d.ActiveID, "")
	}
	if d.ActiveID == d.OverID {
		return false
	}
	return s.Reorder(d.ActiveID, d.OverID)
}

// Add creates a default block of typ and appends it to parentID, or to the
// root when parentID is empty. The new node becomes the selection.
func (s *Session) Add(typ document.Type, parentID string) (document.Component, bool) {
	if !typ.Valid() {
		return document.Component{}, false
	}
	node := s.factory.New(typ)
	changed := s.apply("add", func(tree []document.Component) []document.Component {
		if parentID == "" {
			return document.AppendRoot(tree, node)
		}
		return document.InsertChild(tree, parentID, node)
	}, func() { s.selected = node.ID })
	if !changed {
		return document.Component{}, false
	}
	return node.Clone(), true
}

// Move detaches id and appends it to parentID, or to the root when
// parentID is empty.
func (s *Session) Move(id, parentID string) bool {
	return s.apply("move", func(tree []document.Component) []document.Component {
		if parentID == "" {
			return document.MoveToRoot(tree, id)
		}
		return document.MoveToParent(tree, id, parentID)
	}, nil)
}

// Reorder moves activeID to overID's position among their shared siblings.
func (s *Session) Reorder(activeID, overID string) bool {
	return s.apply("reorder", func(tree []document.Component) []document.Component {
		return document.Reorder(tree, activeID, overID)
	}, nil)
}

// Update merges u into the node with the given id. A missing node is a
// no-op. The update is refused with ErrInvalidUpdate when it would attach
// children to a leaf, touch a grid's column count (use SetColumns), store a
// prop value JSON cannot encode or leave the tree failing document.Validate.
func (s *Session) Update(id string, u document.Update) (bool, error) {
	u.Props = u.Props.Clone()
	if u.SetChildren {
		u.Children = document.CloneAll(u.Children)
	}
	return s.applyChecked("update", func(tree []document.Component) ([]document.Component, error) {
		node, ok := document.FindByID(tree, id)
		if !ok {
			return tree, nil
		}
		if u.SetChildren && !node.Type.IsContainer() {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidUpdate, document.ErrLeafChildren, id)
		}
		if _, ok := u.Props[document.PropColumns]; ok && node.Type == document.TypeGrid {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidUpdate, ErrGridColumns, id)
		}
		next := document.UpdateByID(tree, id, u)
		if _, err := document.Marshal(next); err != nil {
			return nil, errors.Join(ErrInvalidUpdate, err)
		}
		if err := document.Validate(next); err != nil {
			return nil, errors.Join(ErrInvalidUpdate, err)
		}
		return next, nil
	})
}

// UpdateContent replaces the content prop of a node.
func (s *Session) UpdateContent(id, content string) (bool, error) {
	return s.Update(id, document.Update{Props: document.Props{document.PropContent: content}})
}

// Delete removes the node and its subtree. The selection is cleared when it
// pointed into the removed subtree.
func (s *Session) Delete(id string) bool {
	return s.apply("delete", func(tree []document.Component) []document.Component {
		return document.DeleteByID(tree, id)
	}, func() {
		if s.selected != "" && !document.Contains(s.tree, s.selected) {
			s.selected = ""
		}
	})
}

// SetColumns resizes a grid. Surplus columns are dropped with their content.
func (s *Session) SetColumns(gridID string, n int) bool {
	return s.apply("set_columns", func(tree []document.Component) []document.Component {
		return s.factory.ResizeByID(tree, gridID, n)
	}, nil)
}

// Undo steps back in history and reports whether anything changed.
func (s *Session) Undo() bool {
	return s.travel("undo", s.hist.Undo)
}

// Redo steps forward in history and reports whether anything changed.
func (s *Session) Redo() bool {
	return s.travel("redo", s.hist.Redo)
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanRedo()
}

// RenderHTML renders the current tree as a complete HTML document.
func (s *Session) RenderHTML() string {
	return htmlgen.Render(s.Components())
}

// RenderSource renders the current tree as React Email component source.
func (s *Session) RenderSource() string {
	return sourcegen.Render(s.Components())
}

// RenderText renders the plain-text alternative of the current tree.
func (s *Session) RenderText() (string, error) {
	return plaintext.Render(s.RenderHTML())
}

// UploadImage sends f to the configured uploader and stores the returned
// URL as the src of image node id. On failure the node is left unchanged
// and the error is logged and returned.
func (s *Session) UploadImage(ctx context.Context, id string, f upload.File) (string, error) {
	node, ok := s.Find(id)
	if !ok {
		return "", ErrComponentNotFound
	}
	if node.Type != document.TypeImage {
		return "", ErrNotImage
	}
	if s.uploader == nil {
		return "", upload.ErrUploaderMissing
	}

	url, err := s.uploader.Upload(ctx, f)
	if err != nil {
		s.log.ErrorContext(ctx, "image upload failed",
			logger.ComponentID(id),
			slog.String("file", f.Name),
			logger.Error(err),
		)
		return "", err
	}

	if _, err := s.Update(id, document.Update{Props: document.Props{document.PropSrc: url}}); err != nil {
		return "", err
	}
	return url, nil
}

// apply runs fn on the current tree under the lock and commits the result
// when it serializes differently. after runs under the lock once the new
// tree is in place.
func (s *Session) apply(op string, fn func([]document.Component) []document.Component, after func()) bool {
	changed, _ := s.commit(op, func(tree []document.Component) ([]document.Component, error) {
		return fn(tree), nil
	}, after)
	return changed
}

// applyChecked is apply for edits that can be refused. A non-nil error from
// fn leaves tree and history untouched.
func (s *Session) applyChecked(op string, fn func([]document.Component) ([]document.Component, error)) (bool, error) {
	return s.commit(op, fn, nil)
}

func (s *Session) commit(op string, fn func([]document.Component) ([]document.Component, error), after func()) (bool, error) {
	s.mu.Lock()
	next, err := fn(s.tree)
	if err != nil {
		s.mu.Unlock()
		s.log.Debug("edit refused", logger.Operation(op), logger.Error(err))
		return false, err
	}
	if !s.hist.Commit(next) {
		s.mu.Unlock()
		return false, nil
	}
	s.tree = next
	if after != nil {
		after()
	}
	snapshot := document.CloneAll(s.tree)
	s.mu.Unlock()

	s.log.Debug("template changed", logger.Operation(op))
	s.notify(snapshot)
	return true, nil
}

func (s *Session) travel(op string, step func() ([]document.Component, bool)) bool {
	s.mu.Lock()
	tree, moved := step()
	if !moved {
		s.mu.Unlock()
		return false
	}
	s.tree = tree
	if s.selected != "" && !document.Contains(s.tree, s.selected) {
		s.selected = ""
	}
	snapshot := document.CloneAll(s.tree)
	s.mu.Unlock()

	s.log.Debug("history moved", logger.Operation(op))
	s.notify(snapshot)
	return true
}

func (s *Session) notify(tree []document.Component) {
	if s.onChange != nil {
		s.onChange(document.Template{Components: tree})
	}
}
