package auth

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// PermissionChecker responde las dos preguntas de autorización del
// sistema: pertenencia a un local y jerarquía de rol. Ambas son checks
// puros sin efectos.
type PermissionChecker struct {
	assignments repository.AssignmentRepository
}

// NewPermissionChecker construye el checker.
func NewPermissionChecker(assignments repository.AssignmentRepository) *PermissionChecker {
	return &PermissionChecker{assignments: assignments}
}

// UserBelongsToLocal verifica la asignación usuario <-> local.
func (p *PermissionChecker) UserBelongsToLocal(ctx context.Context, userID, localID int64) (bool, error) {
	return p.assignments.UserBelongsToLocal(ctx, userID, localID)
}

// MustBeSupervisorOrAdmin falla con ErrForbidden salvo que el actor sea
// ADMIN o SUPERVISOR.
func (p *PermissionChecker) MustBeSupervisorOrAdmin(actor Actor) error {
	if !actor.InAnyRole(entity.RoleAdmin, entity.RoleSupervisor) {
		return domain.ErrForbidden
	}
	return nil
}

// EnsureLocalAccess aplica la política uniforme de los casos de uso:
// ADMIN accede a cualquier local; SUPERVISOR y AUDITOR deben estar
// asignados al local objetivo.
func (p *PermissionChecker) EnsureLocalAccess(ctx context.Context, actor Actor, localID int64) error {
	if actor.HasRole(entity.RoleAdmin) {
		return nil
	}
	ok, err := p.assignments.UserBelongsToLocal(ctx, actor.ID, localID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
