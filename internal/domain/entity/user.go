package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "ADMIN"
	RoleSupervisor = "SUPERVISOR"
	RoleAuditor    = "AUDITOR"
)

// Roles devuelve los roles conocidos en orden estable.
func Roles() []string {
	return []string{RoleAdmin, RoleSupervisor, RoleAuditor}
}

// User representa un usuario del sistema. Se asocia N:M con locales
// (asignación) y tiene exactamente un rol.
type User struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, SUPERVISOR, AUDITOR
	LocalIDs     []int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole indica si el usuario tiene exactamente ese rol.
func (u *User) HasRole(role string) bool {
	return u.Role == role
}

// InAnyRole indica si el rol del usuario está entre los permitidos.
func (u *User) InAnyRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
