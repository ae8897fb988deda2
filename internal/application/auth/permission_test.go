package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

// memAssignments fake del puerto de asignaciones: (userID, localID) -> existe.
type memAssignments struct {
	pairs map[[2]int64]bool
}

func (m *memAssignments) UserBelongsToLocal(_ context.Context, userID, localID int64) (bool, error) {
	return m.pairs[[2]int64{userID, localID}], nil
}

func (m *memAssignments) Assign(_ context.Context, userID, localID int64) error {
	if m.pairs == nil {
		m.pairs = map[[2]int64]bool{}
	}
	m.pairs[[2]int64{userID, localID}] = true
	return nil
}

func (m *memAssignments) Replace(ctx context.Context, userID int64, localIDs []int64) error {
	for k := range m.pairs {
		if k[0] == userID {
			delete(m.pairs, k)
		}
	}
	for _, id := range localIDs {
		if err := m.Assign(ctx, userID, id); err != nil {
			return err
		}
	}
	return nil
}

func TestEnsureLocalAccess_AdminNoNecesitaAsignacion(t *testing.T) {
	p := auth.NewPermissionChecker(&memAssignments{})
	admin := auth.Actor{ID: 1, Role: entity.RoleAdmin}

	assert.NoError(t, p.EnsureLocalAccess(context.Background(), admin, 99))
}

func TestEnsureLocalAccess_SupervisorAsignado(t *testing.T) {
	assignments := &memAssignments{}
	require.NoError(t, assignments.Assign(context.Background(), 5, 10))
	p := auth.NewPermissionChecker(assignments)

	sup := auth.Actor{ID: 5, Role: entity.RoleSupervisor}
	assert.NoError(t, p.EnsureLocalAccess(context.Background(), sup, 10))
	assert.ErrorIs(t, p.EnsureLocalAccess(context.Background(), sup, 11), domain.ErrForbidden)
}

func TestEnsureLocalAccess_AuditorSinAsignacion(t *testing.T) {
	p := auth.NewPermissionChecker(&memAssignments{})
	aud := auth.Actor{ID: 7, Role: entity.RoleAuditor}

	assert.ErrorIs(t, p.EnsureLocalAccess(context.Background(), aud, 10), domain.ErrForbidden)
}

func TestMustBeSupervisorOrAdmin(t *testing.T) {
	p := auth.NewPermissionChecker(&memAssignments{})

	assert.NoError(t, p.MustBeSupervisorOrAdmin(auth.Actor{Role: entity.RoleAdmin}))
	assert.NoError(t, p.MustBeSupervisorOrAdmin(auth.Actor{Role: entity.RoleSupervisor}))
	assert.ErrorIs(t, p.MustBeSupervisorOrAdmin(auth.Actor{Role: entity.RoleAuditor}), domain.ErrForbidden)
}
