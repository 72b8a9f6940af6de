package entity

import "time"

// Tipos de notificación.
const (
	NotificationTypeInfo    = "info"
	NotificationTypeWarning = "warning"
	NotificationTypeSuccess = "success"
)

// Notification es una alerta para un usuario o un broadcast a todos los administradores
// (UserID vacío y ForAdmins = true).
type Notification struct {
	ID        string
	UserID    string
	ForAdmins bool
	Title     string
	Message   string
	Type      string
	Read      bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

// ValidNotificationType valida el tipo.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeWarning, NotificationTypeSuccess:
		return true
	}
	return false
}
