package repository

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios (DIP).
type UserRepository interface {
	// Create inserta el usuario y asigna su ID.
	Create(ctx context.Context, u *entity.User) error
	// GetByID devuelve el usuario (con locales asignados) o nil.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByUsername devuelve el usuario o nil.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// Update reescribe nombre, username y rol.
	Update(ctx context.Context, u *entity.User) error
	// Delete elimina el usuario.
	Delete(ctx context.Context, id int64) error
	// List lista todos los usuarios.
	List(ctx context.Context) ([]*entity.User, error)
	// ListByRole lista usuarios con un rol dado.
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	// ListByRoleAndLocal lista usuarios con un rol dado asignados a un local.
	ListByRoleAndLocal(ctx context.Context, role string, localID int64) ([]*entity.User, error)
}

// AssignmentRepository puerto para la relación usuario <-> local (user_local).
type AssignmentRepository interface {
	// UserBelongsToLocal verifica la existencia de la asignación.
	UserBelongsToLocal(ctx context.Context, userID, localID int64) (bool, error)
	// Assign crea la asignación (idempotente).
	Assign(ctx context.Context, userID, localID int64) error
	// Replace reemplaza las asignaciones del usuario por el conjunto dado.
	Replace(ctx context.Context, userID int64, localIDs []int64) error
}
