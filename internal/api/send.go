package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailforge/handler"
	"github.com/dmitrymomot/mailforge/pkg/binder"
	"github.com/dmitrymomot/mailforge/pkg/email"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/store"
)

type sendRequest struct {
	ID      string `path:"id" json:"-"`
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
}

// testSend mails the current rendering with its plain-text alternative.
func (s *Server) testSend() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, req sendRequest) handler.Response {
		if s.mailer == nil {
			return handler.Error(errMailerMissing)
		}
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		text, err := sess.RenderText()
		if err != nil {
			return handler.Error(err)
		}
		msg := email.Message{
			To:      req.To,
			Subject: req.Subject,
			HTML:    sess.RenderHTML(),
			Text:    text,
			Tag:     "test-send",
		}
		if msg.Subject == "" {
			msg.Subject = s.cfg.TestSendSubject
		}
		if err := msg.Validate(); err != nil {
			return handler.Error(err)
		}
		if err := s.mailer.SendEmail(ctx, msg); err != nil {
			if !errors.Is(err, email.ErrFailedToSendEmail) {
				err = errors.Join(email.ErrFailedToSendEmail, err)
			}
			return handler.Error(err)
		}
		s.log.InfoContext(ctx, "test email sent", logger.SessionID(sess.ID()))
		return handler.EmptyWithStatus(http.StatusAccepted)
	}, binder.JSON())
}

type saveRequest struct {
	ID         string `path:"id" json:"-"`
	TemplateID string `json:"templateId,omitempty"`
	Name       string `json:"name,omitempty"`
}

// saveSession stores the session's current tree as a template. Without a
// templateId a new record is created.
func (s *Server) saveSession() http.HandlerFunc {
	return wrap(s, func(ctx handler.Context, req saveRequest) handler.Response {
		if s.store == nil {
			return handler.Error(errStoreMissing)
		}
		sess, err := s.sessions.Get(req.ID)
		if err != nil {
			return handler.Error(err)
		}
		rec := store.Record{ID: req.TemplateID, Name: req.Name, Template: sess.Template()}
		status := http.StatusOK
		if rec.ID == "" {
			rec.ID = s.ids()
			status = http.StatusCreated
		}
		if rec.Name == "" {
			rec.Name = rec.ID
		}
		saved, err := s.store.Save(ctx, rec)
		if err != nil {
			return handler.Error(err)
		}
		s.log.InfoContext(ctx, "session saved", logger.SessionID(sess.ID()), logger.TemplateID(saved.ID))
		return handler.JSON(saved, handler.WithJSONStatus(status))
	}, binder.JSON())
}
