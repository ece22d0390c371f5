package utils

import (
	"log"

	"gopkg.in/gomail.v2"

	"leadforge/config"
)

// Mailer delivers a user-authored message. The SMTP implementation is used
// when credentials are configured; otherwise delivery is simulated and the
// message only lands in the conversation thread.
type Mailer interface {
	Send(to, subject, body string) error
}

// NewMailer picks the SMTP or simulated mailer once at startup.
func NewMailer(cfg config.Config, logger *log.Logger) Mailer {
	if cfg.SMTPHost == "" {
		logger.Println("SMTP not configured; outbound mail is simulated")
		return &SimulatedMailer{logger: logger}
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.FromEmail,
		logger: logger,
	}
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *log.Logger
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		ReportError("smtp_send", err, map[string]interface{}{"to": to})
		return err
	}
	m.logger.Printf("Sent mail to %s", to)
	return nil
}

type SimulatedMailer struct {
	logger *log.Logger
}

func (m *SimulatedMailer) Send(to, subject, _ string) error {
	m.logger.Printf("Simulated send to %s (subject: %q)", to, subject)
	return nil
}
