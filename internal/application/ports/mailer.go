package ports

import "context"

// AdminMailer envía avisos por correo. Implementación en infrastructure/mail.
type AdminMailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}
