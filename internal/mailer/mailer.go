package mailer

import (
	"fmt"

	"reviewhub/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers confirmation codes over SMTP. Delivery is
// fire-and-forget: nothing downstream consumes a delivery receipt.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

func (m *SMTPMailer) SendConfirmationCode(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your confirmation code")
	msg.SetBody("text/plain", fmt.Sprintf("Your confirmation code: %s", code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
