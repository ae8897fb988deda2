package postgres

import (
	"context"
	"fmt"

	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación de AssignmentRepository (tabla user_local).
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador de asignaciones. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// UserBelongsToLocal verifica la existencia de la asignación.
func (r *AssignmentRepo) UserBelongsToLocal(ctx context.Context, userID, localID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM user_local WHERE user_id = $1 AND local_id = $2
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, userID, localID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return exists, nil
}

// Assign crea la asignación; repetirla no falla (ON CONFLICT DO NOTHING).
func (r *AssignmentRepo) Assign(ctx context.Context, userID, localID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_local (user_id, local_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, localID)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// Replace reemplaza las asignaciones del usuario por el conjunto dado.
func (r *AssignmentRepo) Replace(ctx context.Context, userID int64, localIDs []int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_local WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}
	for _, localID := range localIDs {
		if err := r.Assign(ctx, userID, localID); err != nil {
			return err
		}
	}
	return nil
}
