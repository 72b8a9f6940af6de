package mail

import (
	"net/smtp"

	"github.com/jordan-wright/email"
)

// SetSender reemplaza el envío SMTP real (solo tests).
func (m *Mailer) SetSender(fn func(e *email.Email, addr string, auth smtp.Auth) error) {
	m.send = fn
}
