// Package notify delivers outbound email. The Mailer is constructed once at
// startup; there is no lazy initialization and no teardown requirement.
package notify

import (
	"strings"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/afristar/helpdesk/internal/config"
)

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends messages over SMTP. When no SMTP host is configured it logs
// and drops, so notification paths behave identically in development.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewMailer builds the mailer from notification config.
func NewMailer(cfg config.NotificationConfig, logger *zap.Logger) *Mailer {
	m := &Mailer{from: cfg.EmailFrom, logger: logger}
	if strings.TrimSpace(cfg.SMTPHost) != "" {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return m
}

// Send delivers one message. Failures are returned for the caller to log;
// callers on the notification path must never propagate them further.
func (m *Mailer) Send(msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		m.logger.Warn("email recipient empty, skipping", zap.String("subject", msg.Subject))
		return nil
	}
	if m.dialer == nil {
		m.logger.Info("smtp not configured, dropping email",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
		return nil
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		mail.AddAlternative("text/html", msg.HTMLBody)
	}
	return m.dialer.DialAndSend(mail)
}
