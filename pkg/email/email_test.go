package email_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/email"
)

func validMessage() email.Message {
	return email.Message{
		To:      "qa@example.com",
		Subject: "Welcome (test)",
		HTML:    "<p>Hello</p>",
		Text:    "Hello",
		Tag:     "welcome",
	}
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(m *email.Message)
		errMsg string
	}{
		{"valid", func(*email.Message) {}, ""},
		{"no text part", func(m *email.Message) { m.Text = "" }, ""},
		{"plus address", func(m *email.Message) { m.To = "test.user+tag@sub.example.com" }, ""},
		{"empty to", func(m *email.Message) { m.To = " " }, "To is required"},
		{"bad to", func(m *email.Message) { m.To = "user@" }, "valid email address"},
		{"empty subject", func(m *email.Message) { m.Subject = "" }, "Subject is required"},
		{"empty html", func(m *email.Message) { m.HTML = "\n" }, "HTML is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := validMessage()
			tt.mutate(&m)
			err := m.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidMessage)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	s := email.NewDevSender(dir)

	require.NoError(t, s.SendEmail(context.Background(), validMessage()))

	htmlFiles, _ := filepath.Glob(filepath.Join(dir, "*_welcome.html"))
	require.Len(t, htmlFiles, 1)
	base := strings.TrimSuffix(htmlFiles[0], ".html")

	html, err := os.ReadFile(base + ".html")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", string(html))

	text, err := os.ReadFile(base + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(text))

	raw, err := os.ReadFile(base + ".json")
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "qa@example.com", meta["to"])
	assert.Equal(t, "Welcome (test)", meta["subject"])
	assert.Equal(t, true, meta["has_text"])
}

func TestDevSender_UsesSubjectWithoutTag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	msg := validMessage()
	msg.Tag, msg.Text = "", ""
	require.NoError(t, email.NewDevSender(dir).SendEmail(context.Background(), msg))

	files, _ := filepath.Glob(filepath.Join(dir, "*_welcome_test.*"))
	assert.Len(t, files, 2, "html and json only")
}

func TestDevSender_Errors(t *testing.T) {
	t.Parallel()

	s := email.NewDevSender(t.TempDir())
	err := s.SendEmail(context.Background(), email.Message{})
	assert.ErrorIs(t, err, email.ErrInvalidMessage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.SendEmail(ctx, validMessage())
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.ErrorIs(t, err, context.Canceled)
}

type mockPostmark struct {
	mock.Mock
}

func (m *mockPostmark) SendEmail(ctx context.Context, e postmark.Email) (postmark.EmailResponse, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(postmark.EmailResponse), args.Error(1)
}

func postmarkConfig() email.Config {
	return email.Config{
		Driver:               email.DriverPostmark,
		PostmarkServerToken:  "server",
		PostmarkAccountToken: "account",
		SenderEmail:          "editor@example.com",
		ReplyTo:              "support@example.com",
	}
}

func TestNewPostmarkSender_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *email.Config)
		errMsg string
	}{
		{"server token", func(c *email.Config) { c.PostmarkServerToken = "" }, "PostmarkServerToken"},
		{"account token", func(c *email.Config) { c.PostmarkAccountToken = "" }, "PostmarkAccountToken"},
		{"sender", func(c *email.Config) { c.SenderEmail = "nope" }, "SenderEmail"},
		{"reply to", func(c *email.Config) { c.ReplyTo = "nope" }, "ReplyTo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := postmarkConfig()
			tt.mutate(&cfg)
			_, err := email.NewPostmarkSender(cfg)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPostmarkSender_SendEmail(t *testing.T) {
	t.Parallel()

	api := &mockPostmark{}
	api.On("SendEmail", mock.Anything, mock.MatchedBy(func(e postmark.Email) bool {
		return e.From == "editor@example.com" &&
			e.ReplyTo == "support@example.com" &&
			e.To == "qa@example.com" &&
			e.HTMLBody == "<p>Hello</p>" &&
			e.TextBody == "Hello" &&
			e.Tag == "welcome" &&
			e.TrackOpens
	})).Return(postmark.EmailResponse{}, nil).Once()

	s, err := email.NewPostmarkSender(postmarkConfig(), email.WithPostmarkAPI(api))
	require.NoError(t, err)
	require.NoError(t, s.SendEmail(context.Background(), validMessage()))
	api.AssertExpectations(t)
}

func TestPostmarkSender_Failures(t *testing.T) {
	t.Parallel()

	api := &mockPostmark{}
	api.On("SendEmail", mock.Anything, mock.Anything).
		Return(postmark.EmailResponse{ErrorCode: 406, Message: "inactive recipient"}, nil).Once()
	api.On("SendEmail", mock.Anything, mock.Anything).
		Return(postmark.EmailResponse{}, errors.New("dial tcp: timeout")).Once()

	s, err := email.NewPostmarkSender(postmarkConfig(), email.WithPostmarkAPI(api))
	require.NoError(t, err)

	err = s.SendEmail(context.Background(), validMessage())
	require.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.Contains(t, err.Error(), "406")

	err = s.SendEmail(context.Background(), validMessage())
	require.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.Contains(t, err.Error(), "timeout")

	err = s.SendEmail(context.Background(), email.Message{})
	assert.ErrorIs(t, err, email.ErrInvalidMessage)
	api.AssertExpectations(t)
}

func TestNew(t *testing.T) {
	t.Parallel()

	s, err := email.New(email.Config{DevDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, s)

	s, err = email.New(postmarkConfig())
	require.NoError(t, err)
	assert.IsType(t, &email.PostmarkSender{}, s)

	_, err = email.New(email.Config{Driver: "smtp"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}
