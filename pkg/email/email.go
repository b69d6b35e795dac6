package email

import (
	"fmt"
	"net/smtp"
)

// Sender delivers a plain text message to one recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends email over plain SMTP.
type SMTPSender struct {
	From     string
	Password string
	Host     string
	Port     string
}

// NewSMTPSender creates a new SMTPSender.
func NewSMTPSender(from, password, host, port string) *SMTPSender {
	return &SMTPSender{
		From:     from,
		Password: password,
		Host:     host,
		Port:     port,
	}
}

// Send sends a plain text email using SMTP.
func (s *SMTPSender) Send(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	address := s.Host + ":" + s.Port

	if err := smtp.SendMail(address, auth, s.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
