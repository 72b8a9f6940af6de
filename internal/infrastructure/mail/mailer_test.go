package mail_test

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/internal/infrastructure/mail"
	"github.com/jhoicas/activos-ti-api/pkg/config"
)

func TestMailer_ArmaCorreo(t *testing.T) {
	m := mail.NewMailer(config.SMTPConfig{Host: "smtp.empresa.com", Port: 587, User: "alertas@empresa.com", Password: "x"})
	var got *email.Email
	var gotAddr string
	var gotAuth smtp.Auth
	m.SetSender(func(e *email.Email, addr string, auth smtp.Auth) error {
		got, gotAddr, gotAuth = e, addr, auth
		return nil
	})

	err := m.Send(context.Background(), []string{"a@empresa.com", "b@empresa.com"}, "Stock bajo: Toner", "El producto Toner tiene stock 1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "smtp.empresa.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, "alertas@empresa.com", got.From, "sin From se usa el usuario SMTP")
	assert.Equal(t, []string{"a@empresa.com", "b@empresa.com"}, got.To)
	assert.Equal(t, "[Activos TI] Stock bajo: Toner", got.Subject)
	assert.Equal(t, "El producto Toner tiene stock 1", string(got.Text))
}

func TestMailer_SinDestinatariosNoEnvia(t *testing.T) {
	m := mail.NewMailer(config.SMTPConfig{Host: "smtp.empresa.com", Port: 25})
	m.SetSender(func(*email.Email, string, smtp.Auth) error {
		t.Fatal("no debe enviar")
		return nil
	})
	assert.NoError(t, m.Send(context.Background(), nil, "x", "y"))
}

func TestMailer_PropagaError(t *testing.T) {
	m := mail.NewMailer(config.SMTPConfig{Host: "smtp.empresa.com", Port: 25, From: "noreply@empresa.com"})
	m.SetSender(func(*email.Email, string, smtp.Auth) error { return errors.New("535 auth failed") })
	err := m.Send(context.Background(), []string{"a@empresa.com"}, "x", "y")
	assert.ErrorContains(t, err, "535")
}
