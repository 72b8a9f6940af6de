package repository

import (
	"context"
	"time"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
)

// Recipient identifica a quién se consultan las notificaciones: las propias más,
// si es administrador, los broadcast a administradores.
type Recipient struct {
	UserID  string
	IsAdmin bool
}

// NotificationRepository define el puerto de persistencia de notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListFor(ctx context.Context, r Recipient, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	MarkAsRead(ctx context.Context, id string, at time.Time) error
	MarkAllAsRead(ctx context.Context, r Recipient, at time.Time) (int64, error)
	CountUnread(ctx context.Context, r Recipient) (int, error)
	// DeleteReadBefore borra notificaciones leídas creadas antes de cutoff.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
