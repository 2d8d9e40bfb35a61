package entity

import "time"

// Roles válidos para User.
const (
	RoleAdministrador = "administrador"
	RoleOperador      = "operador"
	RoleAnalista      = "analista"
)

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdministrador, RoleOperador, RoleAnalista:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // administrador, operador, analista
	Photo        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
