package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	gomail "gopkg.in/mail.v2"
)

// EmailConfig содержит настройки SMTP для отправки писем.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
}

// EmailSender доставляет письма через SMTP.
type EmailSender struct {
	cfg EmailConfig
}

// NewEmailSender создаёт отправителя с заданной SMTP-конфигурацией.
func NewEmailSender(cfg EmailConfig) *EmailSender {
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.SMTPUser
	}
	return &EmailSender{cfg: cfg}
}

// Send реализует app.EmailNotifier: отправляет письмо с HTML-телом.
func (s *EmailSender) Send(ctx context.Context, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		log.Printf("Email error: failed to send to %s (Subject: %s): %v", s.cfg.ToEmail, subject, err)
		return fmt.Errorf("send email: %w", err)
	}

	log.Printf("Email sent to %s: %s", s.cfg.ToEmail, subject)
	return nil
}
