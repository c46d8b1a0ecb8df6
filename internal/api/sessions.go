package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailforge/handler"
	"github.com/dmitrymomot/mailforge/pkg/binder"
	"github.com/dmitrymomot/mailforge/pkg/blocks"
	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/editor"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/upload"
)

// wrap binds path parameters first, then binders, and routes failures
// through the API error handler.
func wrap[R any](s *Server, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	all := append([]handler.Bind{binder.Path(chi.URLParam)}, binders...)
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](all...),
		handler.WithErrorHandler[handler.Context, R](s.onError),
	)
}

// mutated answers with the session state and whether the tree changed.
func mutated(sess *editor.Session, changed bool) handler.Response {
	return handler.JSON(sess.State(), handler.WithJSONMeta(map[string]any{"changed": changed}))
}

type sessionRequest struct {
	ID string `path:"id" json:"-"`
}

type componentRequest struct {
	ID          string `path:"id" json:"-"`
	ComponentID string `path:"cid" json:"-"`
}

func (s *Server) listBlocks() http.HandlerFunc {
	return wrap(s, func(handler.Context, struct{}) handler.Response {
		return handler.JSON(blocks.Palette())
	})
}

func (s *Server) createSession() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, req document.Template) handler.Response {
		if err := document.Validate(req.Components); err != nil {
			return handler.Error(err)
		}
		sess, err := s.sessions.Create(req)
		if err != nil {
			return handler.Error(err)
		}
		s.log.InfoContext(ctx, "session opened", logger.SessionID(sess.ID()))
		return handler.JSON(sess.State(), handler.WithJSONStatus(http.StatusCreated))
	}, binder.JSON())
}

func (s *Server) getSession() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req sessionRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		return handler.JSON(sess.State())
	})
}

func (s *Server) closeSession() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req sessionRequest) handler.Response {
		if _, err := s.sessions.Get(req.ID); err != nil {
			return handler.Error(err)
		}
		s.sessions.Delete(req.ID)
		return handler.Empty()
	})
}

type dropRequest struct {
	ID string `path:"id" json:"-"`
	editor.DragEnd
}

func (s *Server) drop() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req dropRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		return mutated(sess, sess.Drop(req.DragEnd))
	}, binder.JSON())
}

type addRequest struct {
	ID       string        `path:"id" json:"-"`
	Type     document.Type `json:"type"`
	ParentID string        `json:"parentId,omitempty"`
}

func (s *Server) addComponent() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req addRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		if !req.Type.Valid() {
			verr := handler.NewValidationError()
			verr.Add("type", "unknown block type")
			return handler.Error(verr)
		}
		node, ok := sess.Add(req.Type, req.ParentID)
		if !ok {
			return handler.Error(editor.ErrComponentNotFound)
		}
		return handler.JSON(node, handler.WithJSONStatus(http.StatusCreated))
	}, binder.JSON())
}

type updateRequest struct {
	ID          string                `path:"id" json:"-"`
	ComponentID string                `path:"cid" json:"-"`
	Props       document.Props        `json:"props,omitempty"`
	Children    *[]document.Component `json:"children,omitempty"`
}

func (s *Server) updateComponent() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, req updateRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		node, ok := sess.Find(req.ComponentID)
		if !ok {
			return handler.Error(editor.ErrComponentNotFound)
		}

		verr := handler.NewValidationError()
		if _, ok := req.Props[document.PropColumns]; ok && node.Type == document.TypeGrid {
			verr.Add("props.columns", "use PUT /sessions/{id}/components/{cid}/columns to resize a grid")
		}
		if req.Children != nil && !node.Type.IsContainer() {
			verr.Add("children", "component does not accept children")
		}
		if !verr.IsEmpty() {
			return handler.Error(verr)
		}

		u := document.Update{Props: s.sanitizeProps(node.Type, req.Props)}
		if req.Children != nil {
			u.Children, u.SetChildren = *req.Children, true
		}
		changed, err := sess.Update(req.ComponentID, u)
		if err != nil {
			return handler.Error(err)
		}
		s.log.DebugContext(ctx, "component updated",
			logger.SessionID(sess.ID()),
			logger.ComponentID(req.ComponentID),
			logger.BlockType(node.Type.String()),
		)
		return mutated(sess, changed)
	}, binder.JSON())
}

// sanitizeProps runs rich-text content through the UGC policy. Code blocks
// are escaped at render time and keep their raw text.
func (s *Server) sanitizeProps(typ document.Type, props document.Props) document.Props {
	if props == nil {
		return nil
	}
	if typ == document.TypeCodeBlock || typ == document.TypeCodeInline || typ == document.TypeMarkdown {
		return props
	}
	if content, ok := props[document.PropContent].(string); ok {
		props[document.PropContent] = s.policy.Sanitize(content)
	}
	return props
}

func (s *Server) deleteComponent() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req componentRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		return mutated(sess, sess.Delete(req.ComponentID))
	})
}

type columnsRequest struct {
	ID          string `path:"id" json:"-"`
	ComponentID string `path:"cid" json:"-"`
	Columns     int    `json:"columns"`
}

func (s *Server) setColumns() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req columnsRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		node, ok := sess.Find(req.ComponentID)
		if !ok {
			return handler.Error(editor.ErrComponentNotFound)
		}
		verr := handler.NewValidationError()
		if node.Type != document.TypeGrid {
			verr.Add("cid", "component is not a grid")
		}
		if req.Columns < 1 {
			verr.Add("columns", "must be at least 1")
		}
		if !verr.IsEmpty() {
			return handler.Error(verr)
		}
		return mutated(sess, sess.SetColumns(req.ComponentID, req.Columns))
	}, binder.JSON())
}

func (s *Server) undo() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req sessionRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		return mutated(sess, sess.Undo())
	})
}

func (s *Server) redo() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req sessionRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		return mutated(sess, sess.Redo())
	})
}

type imageRequest struct {
	ID          string            `path:"id"`
	ComponentID string            `path:"cid"`
	Image       binder.FileUpload `file:"image"`
}

func (s *Server) uploadImage() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, req imageRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		url, err := sess.UploadImage(ctx, req.ComponentID, upload.File{
			Name:        req.Image.Filename,
			ContentType: req.Image.ContentType,
			Data:        req.Image.Content,
		})
		if err != nil {
			return handler.Error(err)
		}
		return handler.JSON(map[string]string{"url": url})
	}, binder.File(s.cfg.MaxUploadSize))
}
