package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"issueflow/internal/shared/config"
)

type SMTPEmailService struct {
	config config.EmailConfig
	dialer *gomail.Dialer
}

// NewSMTPEmailService returns nil when SMTP is not configured, so callers can
// treat a nil sender as "email disabled".
func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	if !cfg.Enabled() {
		return nil
	}

	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPEmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendPlain delivers a plain-text message.
func (s *SMTPEmailService) SendPlain(to, subject, body string) error {
	m := s.newMessage(to, subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPEmailService) newMessage(to, subject string) *gomail.Message {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	return m
}
