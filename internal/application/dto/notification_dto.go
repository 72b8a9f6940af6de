package dto

import "time"

// CreateNotificationRequest notificación manual de un administrador.
// Sin UserID se envía como broadcast a administradores.
type CreateNotificationRequest struct {
	UserID  string `json:"user_id" validate:"omitempty,uuid"`
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
	Type    string `json:"type" validate:"omitempty,oneof=info warning success"`
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id,omitempty"`
	ForAdmins bool       `json:"for_admins"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationListResponse lista paginada de notificaciones.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// UnreadCountResponse salida de GET /api/notifications/unread-count.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// CleanupResponse salida de la limpieza de notificaciones leídas.
type CleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

// MarkAllResponse salida de PATCH /api/notifications/read-all.
type MarkAllResponse struct {
	Updated int64 `json:"updated"`
}
