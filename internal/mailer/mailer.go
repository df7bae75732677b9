package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

type Config struct {
	Host     string
	Port     int
	From     string
	Password string
}

type Mailer struct {
	cfg Config
	log *zerolog.Logger
}

func New(cfg Config, log *zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// SendStatusEmail notifies a registrant about a payment status change.
func (m *Mailer) SendStatusEmail(eventTitle, status, recipientEmail, recipientName string) error {
	var subject, body string
	switch status {
	case "pending":
		subject = "Registration received"
		body = fmt.Sprintf("Hi %s,\n\nYour registration for %s has been received. Please submit your payment confirmation so we can verify it.", recipientName, eventTitle)
	case "confirmed":
		subject = "Registration confirmed"
		body = fmt.Sprintf("Hi %s,\n\nYour payment for %s has been verified. See you at the starting line!", recipientName, eventTitle)
	case "cancelled":
		subject = "Registration cancelled"
		body = fmt.Sprintf("Hi %s,\n\nYour registration for %s has been cancelled. Contact us if you believe this is a mistake.", recipientName, eventTitle)
	default:
		return fmt.Errorf("unknown status %q", status)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.From, recipientEmail, subject, body,
	)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{recipientEmail}, []byte(msg)); err != nil {
		m.log.Warn().Msgf("failed to send email to %s: %v", recipientEmail, err)
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Msgf("email sent to %s (status: %s)", recipientEmail, status)
	return nil
}
