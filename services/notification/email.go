package notification

import (
	"context"
	"fmt"

	"agentlinker/config"

	"gopkg.in/gomail.v2"
)

// SMTPEmailSender is the production EmailSender, delivering via SMTP.
type SMTPEmailSender struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewSMTPEmailSender constructs an SMTPEmailSender from the app config.
func NewSMTPEmailSender() *SMTPEmailSender {
	return &SMTPEmailSender{
		host:     config.AppConfig.SMTPHost,
		port:     config.AppConfig.SMTPPort,
		user:     config.AppConfig.SMTPUser,
		password: config.AppConfig.SMTPPassword,
		from:     config.AppConfig.SMTPFrom,
	}
}

func (s *SMTPEmailSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	d := gomail.NewDialer(s.host, s.port, s.user, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
