package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender delivers a rendered template.
type Sender interface {
	SendEmail(ctx context.Context, msg Message) error
}

// Message is a rendered email. Text is the optional plain-text part.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidAddress reports whether s looks like a deliverable address.
func ValidAddress(s string) bool {
	return emailRegex.MatchString(s)
}

// Validate checks the fields every sender needs.
func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.To) == "":
		return fmt.Errorf("%w: To is required", ErrInvalidMessage)
	case !ValidAddress(m.To):
		return fmt.Errorf("%w: To must be a valid email address", ErrInvalidMessage)
	case strings.TrimSpace(m.Subject) == "":
		return fmt.Errorf("%w: Subject is required", ErrInvalidMessage)
	case strings.TrimSpace(m.HTML) == "":
		return fmt.Errorf("%w: HTML is required", ErrInvalidMessage)
	}
	return nil
}

// New returns the sender selected by cfg.Driver.
func New(cfg Config) (Sender, error) {
	switch cfg.Driver {
	case DriverDev, "":
		return NewDevSender(cfg.DevDir), nil
	case DriverPostmark:
		return NewPostmarkSender(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
