package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

// NotificationUseCase CRUD de notificaciones: alta manual, listado, lectura y limpieza.
// Los broadcast a administradores tienen un único flag de lectura compartido.
type NotificationUseCase struct {
	repo  repository.NotificationRepository
	users repository.UserRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository, users repository.UserRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, users: users}
}

// Create crea una notificación manual. Sin UserID es un broadcast a administradores.
func (uc *NotificationUseCase) Create(ctx context.Context, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if in.Title == "" || in.Message == "" {
		return nil, fmt.Errorf("%w: title y message son obligatorios", domain.ErrInvalidInput)
	}
	typ := in.Type
	if typ == "" {
		typ = entity.NotificationTypeInfo
	}
	if !entity.ValidNotificationType(typ) {
		return nil, fmt.Errorf("%w: type", domain.ErrInvalidInput)
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Message:   in.Message,
		Type:      typ,
		CreatedAt: time.Now().UTC(),
	}
	if in.UserID != "" {
		user, err := uc.users.GetByID(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		n.UserID = user.ID
	} else {
		n.ForAdmins = true
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	out := dto.FromNotification(n)
	return &out, nil
}

// ListForUser lista notificaciones propias y, para administradores, los broadcast.
func (uc *NotificationUseCase) ListForUser(ctx context.Context, r repository.Recipient, unreadOnly bool, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListFor(ctx, r, unreadOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.FromNotification(n))
	}
	return &dto.NotificationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// MarkAsRead marca una notificación visible para r. Una ya leída se devuelve sin cambios.
func (uc *NotificationUseCase) MarkAsRead(ctx context.Context, r repository.Recipient, id string) (*dto.NotificationResponse, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil || !visibleTo(n, r) {
		return nil, domain.ErrNotFound
	}
	if !n.Read {
		at := time.Now().UTC()
		if err := uc.repo.MarkAsRead(ctx, id, at); err != nil {
			return nil, err
		}
		n.Read = true
		n.ReadAt = &at
	}
	out := dto.FromNotification(n)
	return &out, nil
}

// MarkAllAsRead marca todas las notificaciones no leídas visibles para r.
func (uc *NotificationUseCase) MarkAllAsRead(ctx context.Context, r repository.Recipient) (*dto.MarkAllResponse, error) {
	n, err := uc.repo.MarkAllAsRead(ctx, r, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &dto.MarkAllResponse{Updated: n}, nil
}

// CountUnread cuenta notificaciones no leídas visibles para r.
func (uc *NotificationUseCase) CountUnread(ctx context.Context, r repository.Recipient) (*dto.UnreadCountResponse, error) {
	n, err := uc.repo.CountUnread(ctx, r)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Unread: n}, nil
}

// CleanupOld borra notificaciones leídas con más de daysToKeep días.
func (uc *NotificationUseCase) CleanupOld(ctx context.Context, daysToKeep int) (*dto.CleanupResponse, error) {
	if daysToKeep <= 0 {
		return nil, fmt.Errorf("%w: days debe ser mayor a 0", domain.ErrInvalidInput)
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -daysToKeep)
	n, err := uc.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return &dto.CleanupResponse{Deleted: n}, nil
}

func visibleTo(n *entity.Notification, r repository.Recipient) bool {
	if n.UserID != "" {
		return n.UserID == r.UserID
	}
	return n.ForAdmins && r.IsAdmin
}
