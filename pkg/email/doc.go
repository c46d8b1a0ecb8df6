// Package email sends test copies of rendered templates.
//
// Sender has two implementations: PostmarkSender for real delivery and
// DevSender, which writes each message to a directory as .html, .txt and
// .json files for inspection. New picks one from Config.Driver.
//
//	sender, err := email.New(cfg)
//	err = sender.SendEmail(ctx, email.Message{
//		To:      "qa@example.com",
//		Subject: "Welcome (test)",
//		HTML:    html,
//		Text:    text,
//	})
//
// Invalid messages fail with ErrInvalidMessage before any I/O. Delivery
// failures wrap ErrFailedToSendEmail.
package email
