package utils

import (
	"fmt"
	"strings"

	"github.com/badoux/checkmail"
	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers HTML mail over a single SMTP account.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// From reports the configured sender address.
func (m *SMTPMailer) From() string {
	return m.from
}

// Send delivers one HTML message. Bcc may be empty.
func (m *SMTPMailer) Send(to []string, bcc []string, subject, htmlBody string) error {
	if err := ValidateRecipients(to); err != nil {
		return err
	}
	if err := ValidateRecipients(bcc); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	if len(bcc) > 0 {
		msg.SetHeader("Bcc", bcc...)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

// ValidateRecipients checks every address for a syntactically valid format.
func ValidateRecipients(addrs []string) error {
	for _, addr := range addrs {
		if err := checkmail.ValidateFormat(addr); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", addr, err)
		}
	}
	return nil
}

// ReplacePlaceholders substitutes the literal {leadName} and {userEmail}
// tokens in template text. Unknown tokens pass through untouched.
func ReplacePlaceholders(text, leadName, userEmail string) string {
	text = strings.ReplaceAll(text, "{leadName}", leadName)
	text = strings.ReplaceAll(text, "{userEmail}", userEmail)
	return text
}
