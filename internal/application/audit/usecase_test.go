package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "github.com/auditoriapp/auditoria-api/internal/application/audit"
	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/pkg/logger"
)

func newTestUseCase(w *world) *appaudit.UseCase {
	perms := auth.NewPermissionChecker(w.assignments)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return appaudit.NewUseCase(w.audits, w.cats, w.items, w.locals, perms, w, log)
}

func TestOpen_SiempreCreaIdentidadFresca(t *testing.T) {
	w := newWorld()
	w.locals.add(1, "Sucursal Centro")
	uc := newTestUseCase(w)
	admin := auth.Actor{ID: 10, Role: entity.RoleAdmin}

	first, err := uc.Open(context.Background(), admin, 1)
	require.NoError(t, err)
	assert.Equal(t, "open", first.Status)
	assert.Equal(t, int64(10), first.SupervisorID)

	// sin restricción de "una abierta por local": la segunda convive
	second, err := uc.Open(context.Background(), admin, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.UUID, second.UUID)
	require.Len(t, w.audits.store, 2)
	assert.False(t, w.audits.store[0].IsClosed())
	assert.False(t, w.audits.store[1].IsClosed())
}

func TestOpen_Autorizacion(t *testing.T) {
	w := newWorld()
	w.locals.add(1, "Sucursal Centro")
	uc := newTestUseCase(w)

	_, err := uc.Open(context.Background(), auth.Actor{ID: 7, Role: entity.RoleAuditor}, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Open(context.Background(), auth.Actor{ID: 5, Role: entity.RoleSupervisor}, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden, "supervisor sin asignación al local")

	w.assignments.add(5, 1)
	_, err = uc.Open(context.Background(), auth.Actor{ID: 5, Role: entity.RoleSupervisor}, 1)
	assert.NoError(t, err)
}

func TestOpen_LocalInexistente(t *testing.T) {
	uc := newTestUseCase(newWorld())

	_, err := uc.Open(context.Background(), auth.Actor{ID: 1, Role: entity.RoleAdmin}, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddCategoryWithItems_CreaAuditoriaAbierta(t *testing.T) {
	w := newWorld()
	w.locals.add(1, "Sucursal Centro")
	uc := newTestUseCase(w)
	admin := auth.Actor{ID: 10, Role: entity.RoleAdmin}

	ranking := entity.RankingCompliant
	out, err := uc.AddCategoryWithItems(context.Background(), admin, 1, dto.AddCategoryRequest{
		Name: "  Cocina  ",
		Items: []dto.ItemInput{
			{Name: "Campana", Ranking: &ranking},
			{Name: "Horno"}, // sin ranking: baja a no cumple
			{Name: "   "},   // nombre vacío: se descarta
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Cocina", out.Name, "el nombre se recorta")
	require.Len(t, out.Items, 2)
	require.NotNil(t, out.Items[0].Ranking)
	assert.Equal(t, entity.RankingCompliant, *out.Items[0].Ranking)
	require.NotNil(t, out.Items[1].Ranking)
	assert.Equal(t, entity.RankingNotCompliant, *out.Items[1].Ranking)

	// la auditoría quedó creada, abierta y con el actor como responsable
	require.Len(t, w.audits.store, 1)
	aud := w.audits.store[0]
	assert.False(t, aud.IsClosed())
	assert.NotZero(t, aud.RowID())
	assert.Equal(t, int64(10), aud.SupervisorID())
	assert.Equal(t, int64(10), aud.CreatedBy())
}

func TestAddCategoryWithItems_ReusaAuditoriaAbierta(t *testing.T) {
	w := newWorld()
	w.locals.add(1, "Sucursal Centro")
	uc := newTestUseCase(w)
	admin := auth.Actor{ID: 10, Role: entity.RoleAdmin}

	_, err := uc.AddCategoryWithItems(context.Background(), admin, 1, dto.AddCategoryRequest{Name: "Cocina"})
	require.NoError(t, err)
	_, err = uc.AddCategoryWithItems(context.Background(), admin, 1, dto.AddCategoryRequest{Name: "Baños"})
	require.NoError(t, err)

	require.Len(t, w.audits.store, 1, "la segunda categoría cae en la misma auditoría abierta")
	assert.Len(t, w.audits.store[0].Categories(), 2)
}

func TestAddCategoryWithItems_Autorizacion(t *testing.T) {
	w := newWorld()
	w.locals.add(1, "Sucursal Centro")
	uc := newTestUseCase(w)

	// AUDITOR no escribe
	_, err := uc.AddCategoryWithItems(context.Background(), auth.Actor{ID: 7, Role: entity.RoleAuditor}, 1, dto.AddCategoryRequest{Name: "Cocina"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// SUPERVISOR sin asignación al local tampoco
	_, err = uc.AddCategoryWithItems(context.Background(), auth.Actor{ID: 5, Role: entity.RoleSupervisor}, 1, dto.AddCategoryRequest{Name: "Cocina"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// asignado sí
	w.assignments.add(5, 1)
	_, err = uc.AddCategoryWithItems(context.Background(), auth.Actor{ID: 5, Role: entity.RoleSupervisor}, 1, dto.AddCategoryRequest{Name: "Cocina"})
	assert.NoError(t, err)
}

func TestAddCategoryWithItems_LocalInexistente(t *testing.T) {
	uc := newTestUseCase(newWorld())

	_, err := uc.AddCategoryWithItems(context.Background(), auth.Actor{ID: 1, Role: entity.RoleAdmin}, 99, dto.AddCategoryRequest{Name: "Cocina"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClose_EsTerminal(t *testing.T) {
	w := newWorld()
	w.locals.add(1, "Sucursal Centro")
	uc := newTestUseCase(w)
	admin := auth.Actor{ID: 10, Role: entity.RoleAdmin}

	_, err := uc.AddCategoryWithItems(context.Background(), admin, 1, dto.AddCategoryRequest{Name: "Cocina"})
	require.NoError(t, err)
	id := w.audits.store[0].ID()

	out, err := uc.Close(context.Background(), admin, id)
	require.NoError(t, err)
	assert.Equal(t, "closed", out.Status)

	// repetir el cierre falla
	_, err = uc.Close(context.Background(), admin, id)
	assert.ErrorIs(t, err, domain.ErrAuditClosed)
}

func TestRenameCategory_AuditoriaCerradaRechaza(t *testing.T) {
	w := newWorld()
	w.locals.add(1, "Sucursal Centro")
	uc := newTestUseCase(w)
	admin := auth.Actor{ID: 10, Role: entity.RoleAdmin}

	_, err := uc.AddCategoryWithItems(context.Background(), admin, 1, dto.AddCategoryRequest{Name: "Cocina"})
	require.NoError(t, err)
	aud := w.audits.store[0]
	catID := aud.Categories()[0].ID
	_, err = uc.Close(context.Background(), admin, aud.ID())
	require.NoError(t, err)

	err = uc.RenameCategory(context.Background(), admin, catID, dto.RenameCategoryRequest{Name: "Cocina y bar"})
	assert.ErrorIs(t, err, domain.ErrAuditClosed)
}

func TestClose_Inexistente(t *testing.T) {
	uc := newTestUseCase(newWorld())

	_, err := uc.Close(context.Background(), auth.Actor{ID: 1, Role: entity.RoleAdmin}, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
