package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/assessmentinc/submission-relay/internal/config"
)

// Sender submits outcome emails to the configured SMTP relay.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender returns an SMTP sender instance.
func NewSender(cfg config.MailConfig) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers one plain-text email. A fresh SMTP session is dialed
// per message, the relay handles one notification per invocation.
func (s *Sender) Send(to string, subject string, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
