package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token emitido más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest alta de usuario (solo ADMIN).
type RegisterRequest struct {
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Role     string  `json:"role"` // ADMIN, SUPERVISOR, AUDITOR
	LocalIDs []int64 `json:"local_ids"`
}

// UpdateUserRequest actualización parcial de usuario (solo ADMIN).
type UpdateUserRequest struct {
	Name     *string  `json:"name"`
	Username *string  `json:"username"`
	Role     *string  `json:"role"`
	LocalIDs *[]int64 `json:"local_ids"`
}

// UserResponse proyección JSON de un usuario (sin hash).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	LocalIDs  []int64   `json:"local_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
