package repository

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para categorías (filas, sin agregado).
// Las operaciones con scope de auditoría rechazan colisiones de ids entre auditorías.
type CategoryRepository interface {
	// GetByAudit devuelve la categoría solo si pertenece a esa auditoría, o nil.
	GetByAudit(ctx context.Context, categoryID, auditRowID int64) (*entity.Category, error)
	// GetWithAudit devuelve la categoría y el id de fila de su auditoría, o nil.
	GetWithAudit(ctx context.Context, categoryID int64) (*entity.Category, int64, error)
	// GetWithItems carga la categoría con sus items ordenados, o nil.
	GetWithItems(ctx context.Context, categoryID int64) (*entity.Category, error)
	// FindOrCreate busca por nombre exacto dentro de la auditoría; crea si
	// no existe. El booleano indica si la categoría fue creada.
	FindOrCreate(ctx context.Context, auditRowID int64, name string) (*entity.Category, bool, error)
	// Rename actualiza el nombre.
	Rename(ctx context.Context, categoryID int64, name string) error
	// Delete elimina la categoría (los items caen por cascade).
	Delete(ctx context.Context, categoryID int64) error
	// ListByAudit lista categorías de una auditoría (sin items).
	ListByAudit(ctx context.Context, auditRowID int64) ([]*entity.Category, error)
}
