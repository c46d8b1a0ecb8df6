package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkAPI is the subset of the Postmark client used for sending.
type PostmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkSender sends through Postmark's transactional API. Opens and HTML
// link clicks are tracked.
type PostmarkSender struct {
	api     PostmarkAPI
	from    string
	replyTo string
}

// PostmarkOption configures a PostmarkSender.
type PostmarkOption func(*PostmarkSender)

// WithPostmarkAPI replaces the HTTP client. Intended for tests.
func WithPostmarkAPI(api PostmarkAPI) PostmarkOption {
	return func(s *PostmarkSender) {
		if api != nil {
			s.api = api
		}
	}
}

// NewPostmarkSender validates cfg and builds a sender. Both tokens and a
// valid sender address are required; ReplyTo is optional.
func NewPostmarkSender(cfg Config, opts ...PostmarkOption) (*PostmarkSender, error) {
	switch {
	case cfg.PostmarkServerToken == "":
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	case cfg.PostmarkAccountToken == "":
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	case !ValidAddress(cfg.SenderEmail):
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	case cfg.ReplyTo != "" && !ValidAddress(cfg.ReplyTo):
		return nil, fmt.Errorf("%w: ReplyTo must be a valid email address", ErrInvalidConfig)
	}

	s := &PostmarkSender{
		api:     postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		from:    cfg.SenderEmail,
		replyTo: cfg.ReplyTo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *PostmarkSender) SendEmail(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := s.api.SendEmail(ctx, postmark.Email{
		From:       s.from,
		ReplyTo:    s.replyTo,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTML,
		TextBody:   msg.Text,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
