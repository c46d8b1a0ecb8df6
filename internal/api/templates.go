package api

import (
	"net/http"

	"github.com/dmitrymomot/mailforge/handler"
	"github.com/dmitrymomot/mailforge/pkg/binder"
	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/store"
)

type templateRequest struct {
	ID string `path:"id" json:"-"`
}

type createTemplateRequest struct {
	ID         string               `json:"id,omitempty"`
	Name       string               `json:"name"`
	Components []document.Component `json:"components"`
}

func (s *Server) listTemplates() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, _ struct{}) handler.Response {
		if s.store == nil {
			return handler.Error(errStoreMissing)
		}
		recs, err := s.store.List(ctx)
		if err != nil {
			return handler.Error(err)
		}
		if recs == nil {
			recs = []store.Record{}
		}
		return handler.JSON(recs, handler.WithJSONMeta(map[string]any{"total": len(recs)}))
	})
}

func (s *Server) createTemplate() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, req createTemplateRequest) handler.Response {
		if s.store == nil {
			return handler.Error(errStoreMissing)
		}
		verr := handler.NewValidationError()
		if req.Name == "" {
			verr.Add("name", "is required")
		}
		if err := document.Validate(req.Components); err != nil {
			verr.Add("components", err.Error())
		}
		if !verr.IsEmpty() {
			return handler.Error(verr)
		}
		if req.ID == "" {
			req.ID = s.ids()
		}
		rec, err := s.store.Save(ctx, store.Record{
			ID:       req.ID,
			Name:     req.Name,
			Template: document.Template{Components: req.Components},
		})
		if err != nil {
			return handler.Error(err)
		}
		s.log.InfoContext(ctx, "template saved", logger.TemplateID(rec.ID))
		return handler.JSON(rec, handler.WithJSONStatus(http.StatusCreated))
	}, binder.JSON())
}

func (s *Server) getTemplate() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, req templateRequest) handler.Response {
		if s.store == nil {
			return handler.Error(errStoreMissing)
		}
		rec, err := s.store.Get(ctx, req.ID)
		if err != nil {
			return handler.Error(err)
		}
		return handler.JSON(rec)
	})
}

func (s *Server) deleteTemplate() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, req templateRequest) handler.Response {
		if s.store == nil {
			return handler.Error(errStoreMissing)
		}
		if err := s.store.Delete(ctx, req.ID); err != nil {
			return handler.Error(err)
		}
		s.log.InfoContext(ctx, "template deleted", logger.TemplateID(req.ID))
		return handler.Empty()
	})
}

// openTemplate starts an editor session on a stored template.
func (s *Server) openTemplate() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, req templateRequest) handler.Response {
		if s.store == nil {
			return handler.Error(errStoreMissing)
		}
		rec, err := s.store.Get(ctx, req.ID)
		if err != nil {
			return handler.Error(err)
		}
		sess, err := s.sessions.Create(rec.Template)
		if err != nil {
			return handler.Error(err)
		}
		s.log.InfoContext(ctx, "session opened", logger.SessionID(sess.ID()), logger.TemplateID(rec.ID))
		return handler.JSON(sess.State(), handler.WithJSONStatus(http.StatusCreated))
	})
}
