package postgres

import (
	"context"
	"fmt"

	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create inserta el usuario y asigna su ID. Username duplicado devuelve
// ErrUsernameAlreadyUsed.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (name, username, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		u.Name, u.Username, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameAlreadyUsed
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID devuelve el usuario con sus locales asignados, o nil.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := r.scanOne(ctx,
		`SELECT id, name, username, password, role, created_at, updated_at FROM users WHERE id = $1`, id)
	if err != nil || u == nil {
		return u, err
	}
	if err := r.loadLocals(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// FindByUsername devuelve el usuario con sus locales asignados, o nil.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := r.scanOne(ctx,
		`SELECT id, name, username, password, role, created_at, updated_at FROM users WHERE username = $1`, username)
	if err != nil || u == nil {
		return u, err
	}
	if err := r.loadLocals(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) loadLocals(ctx context.Context, u *entity.User) error {
	rows, err := r.q.Query(ctx,
		`SELECT local_id FROM user_local WHERE user_id = $1 ORDER BY local_id`, u.ID)
	if err != nil {
		return fmt.Errorf("list user locals: %w", err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return err
	}
	u.LocalIDs = ids
	return nil
}

// Update reescribe nombre, username y rol.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `UPDATE users SET name = $2, username = $3, role = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Username, u.Role, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameAlreadyUsed
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina el usuario (sus asignaciones caen por cascade).
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// List lista todos los usuarios.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.listMany(ctx,
		`SELECT id, name, username, password, role, created_at, updated_at FROM users ORDER BY name`)
}

// ListByRole lista usuarios con un rol dado.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	return r.listMany(ctx,
		`SELECT id, name, username, password, role, created_at, updated_at FROM users WHERE role = $1 ORDER BY name`,
		role)
}

// ListByRoleAndLocal lista usuarios con un rol dado asignados a un local.
func (r *UserRepo) ListByRoleAndLocal(ctx context.Context, role string, localID int64) ([]*entity.User, error) {
	return r.listMany(ctx, `
		SELECT u.id, u.name, u.username, u.password, u.role, u.created_at, u.updated_at
		FROM users u
		JOIN user_local ul ON ul.user_id = u.id
		WHERE u.role = $1 AND ul.local_id = $2
		ORDER BY u.name`, role, localID)
}

func (r *UserRepo) listMany(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, u := range list {
		if err := r.loadLocals(ctx, u); err != nil {
			return nil, err
		}
	}
	return list, nil
}
