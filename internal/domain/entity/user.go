package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del sistema: operadores de TI y colaboradores que reciben equipos.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	DepartmentID string // vacío si no tiene
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario recibe las notificaciones broadcast de administradores.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
