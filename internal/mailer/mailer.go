// Package mailer is the notification collaborator: it delivers templated
// HTML emails. Workflow services treat delivery as best effort — a send is
// dispatched after the owning mutation commits and a failure is logged, never
// returned to the HTTP caller.
package mailer

import (
	"github.com/campusconnect/lost-and-found-api/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends a single HTML email.
type Mailer interface {
	Send(to, subject, html string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates a Mailer backed by the configured SMTP relay.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}

	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
	}
}

func (m *SMTPMailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}
