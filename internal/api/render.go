package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailforge/handler"
)

// PreviewTarget is the element id the preview patch replaces.
const PreviewTarget = "preview"

func (s *Server) renderHTML() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req sessionRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		return handler.Raw("text/html; charset=utf-8", sess.RenderHTML())
	})
}

func (s *Server) renderSource() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req sessionRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		return handler.Text(sess.RenderSource())
	})
}

func (s *Server) renderText() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req sessionRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		text, err := sess.RenderText()
		if err != nil {
			return handler.Error(err)
		}
		return handler.Text(text)
	})
}

func (s *Server) preview() http.HandlerFunc {
	return wrap(s, func(_ handler.Context, req sessionRequest) handler.Response {
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		return handler.Templ(previewFrame(sess.RenderHTML()), handler.WithTarget("#"+PreviewTarget))
	})
}

// previewFrame isolates the email document in a sandboxed iframe so its
// styles do not leak into the editor page.
func previewFrame(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div id="%s"><iframe title="Email preview" sandbox="" style="width:100%%;min-height:600px;border:0" srcdoc="%s"></iframe></div>`,
			PreviewTarget, templ.EscapeString(html))
		return err
	})
}
