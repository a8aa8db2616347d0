package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, user, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     user,
	}
}

func (m *SMTPMailer) Send(to []string, subject, body string, html bool) error {
	msg := email.NewEmail()
	msg.From = m.from
	msg.To = to
	msg.Subject = subject
	if html {
		msg.HTML = []byte(body)
	} else {
		msg.Text = []byte(body)
	}
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	return msg.Send(addr, smtp.PlainAuth("", m.user, m.password, m.host))
}
