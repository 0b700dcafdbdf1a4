package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// ValidRole verifica que el rol sea uno de los tres permitidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleUser
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Username     string // único
	Email        string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, manager, user
	Image        string // avatar, "no_image.jpg" por defecto
	Status       int16  // 1 activo, 0 inactivo
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
