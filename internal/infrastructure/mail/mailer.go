// Package mail envía por SMTP las alertas de stock bajo a los administradores.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"

	"github.com/jhoicas/activos-ti-api/internal/application/ports"
	"github.com/jhoicas/activos-ti-api/pkg/config"
)

var _ ports.AdminMailer = (*Mailer)(nil)

// sendFunc permite reemplazar el envío real en tests.
type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Mailer wrapper sobre jordan-wright/email con la configuración SMTP.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
	send     sendFunc
}

// NewMailer construye el mailer. Si From está vacío se usa el usuario SMTP.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		send:     func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

// Send envía un correo de texto plano. Respeta la cancelación del contexto.
func (m *Mailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	e := m.build(to, subject, body)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	done := make(chan error, 1)
	go func() { done <- m.send(e, m.addr, auth) }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mailer: enviar a %d destinatarios: %w", len(to), err)
		}
		return nil
	case <-time.After(30 * time.Second):
		return fmt.Errorf("mailer: timeout SMTP")
	}
}

func (m *Mailer) build(to []string, subject, body string) *email.Email {
	e := email.NewEmail()
	e.From = m.from
	e.To = to
	e.Subject = "[Activos TI] " + subject
	e.Text = []byte(body)
	return e
}
