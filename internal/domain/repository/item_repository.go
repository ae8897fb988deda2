package repository

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

// ItemWithCategory proyección de item con el nombre de su categoría (export/listados).
type ItemWithCategory struct {
	Item         entity.Item
	CategoryID   int64
	CategoryName string
	LocalID      int64
	LocalName    string
}

// ItemFilter filtros del listado global de items.
type ItemFilter struct {
	CompanyID  *int64
	CategoryID *int64
}

// ItemRepository puerto de persistencia para items de auditoría.
type ItemRepository interface {
	// GetByCategory devuelve el item solo si pertenece a esa categoría, o nil.
	GetByCategory(ctx context.Context, itemID, categoryID int64) (*entity.Item, error)
	// GetScoped exige además que la categoría pertenezca a la auditoría, o nil.
	GetScoped(ctx context.Context, itemID, categoryID, auditRowID int64) (*entity.Item, error)
	// FindByName busca por nombre exacto (ya recortado) dentro de la categoría, o nil.
	FindByName(ctx context.Context, categoryID int64, name string) (*entity.Item, error)
	// Create inserta el item bajo la categoría y asigna su ID.
	Create(ctx context.Context, categoryID int64, it *entity.Item) error
	// Update reescribe todos los campos del item.
	Update(ctx context.Context, it *entity.Item) error
	// Delete elimina el item.
	Delete(ctx context.Context, itemID int64) error
	// ListByAudit lista items de una auditoría ordenados por (categoría, nombre).
	ListByAudit(ctx context.Context, auditRowID int64) ([]ItemWithCategory, error)
	// List lista items globales con filtros, ordenados por nombre.
	List(ctx context.Context, f ItemFilter) ([]ItemWithCategory, error)
}
