// Package notifier delivers account emails: verification, welcome and
// password reset.
package notifier

import (
	"context"
	"fmt"
	"html"
	"log"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no email provider is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Printf("[MAIL] [INFO] to=%s subject=%q body=%q", msg.To, msg.Subject, msg.TextBody)
	return nil
}

func VerificationEmail(to, code string) Message {
	return Message{
		To:       to,
		Subject:  "Verify your email",
		HTMLBody: fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>It expires in 24 hours.</p>", html.EscapeString(code)),
		TextBody: fmt.Sprintf("Your verification code is %s. It expires in 24 hours.", code),
	}
}

func WelcomeEmail(to, name string) Message {
	return Message{
		To:       to,
		Subject:  "Welcome!",
		HTMLBody: fmt.Sprintf("<p>Hi %s,</p><p>Your email is verified. Happy ordering!</p>", html.EscapeString(name)),
		TextBody: fmt.Sprintf("Hi %s,\n\nYour email is verified. Happy ordering!", name),
	}
}

func PasswordResetEmail(to, resetURL string) Message {
	return Message{
		To:       to,
		Subject:  "Reset your password",
		HTMLBody: fmt.Sprintf(`<p>Reset your password using the link below. It expires in one hour.</p><p><a href="%s">Reset password</a></p>`, html.EscapeString(resetURL)),
		TextBody: fmt.Sprintf("Reset your password using this link (expires in one hour): %s", resetURL),
	}
}

func PasswordResetSuccessEmail(to string) Message {
	return Message{
		To:       to,
		Subject:  "Your password was changed",
		HTMLBody: "<p>Your password has been reset successfully.</p>",
		TextBody: "Your password has been reset successfully.",
	}
}
