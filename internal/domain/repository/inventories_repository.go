package repository

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

// AreaWithCount proyección de área con el total de items (listado por local).
type AreaWithCount struct {
	Area  entity.InventoriesArea
	Count int
}

// InventoryWithContext proyección de inventory con su contexto área/local/company.
type InventoryWithContext struct {
	Inventory   entity.Inventory
	AreaName    string
	LocalID     int64
	LocalName   string
	CompanyID   int64
	CompanyName string
}

// InventoryFilter filtros del listado global de inventories.
type InventoryFilter struct {
	CompanyID *int64
	LocalID   *int64
	AreaID    *int64
	Limit     int
	Offset    int
}

// AreaRepository puerto de persistencia para áreas de inventario.
type AreaRepository interface {
	// Create inserta el área y asigna su ID.
	Create(ctx context.Context, area *entity.InventoriesArea) error
	// GetByID devuelve el área o nil.
	GetByID(ctx context.Context, areaID int64) (*entity.InventoriesArea, error)
	// GetByLocal devuelve el área solo si pertenece a ese local, o nil.
	GetByLocal(ctx context.Context, areaID, localID int64) (*entity.InventoriesArea, error)
	// FindByName busca por nombre exacto dentro del local, o nil.
	FindByName(ctx context.Context, localID int64, name string) (*entity.InventoriesArea, error)
	// Rename actualiza el nombre.
	Rename(ctx context.Context, areaID int64, name string) error
	// Delete elimina el área (los inventories caen por cascade).
	Delete(ctx context.Context, areaID int64) error
	// ListByLocal lista áreas del local con conteo de items.
	ListByLocal(ctx context.Context, localID int64) ([]AreaWithCount, error)
}

// InventoryRepository puerto de persistencia para items de inventario.
type InventoryRepository interface {
	// Create inserta el inventory bajo el área y asigna su ID.
	Create(ctx context.Context, inv *entity.Inventory) error
	// GetByArea devuelve el inventory solo si pertenece a esa área, o nil.
	GetByArea(ctx context.Context, inventoryID, areaID int64) (*entity.Inventory, error)
	// GetByID devuelve el inventory o nil.
	GetByID(ctx context.Context, inventoryID int64) (*entity.Inventory, error)
	// FindByName busca por nombre exacto (ya recortado) dentro del área, o nil.
	FindByName(ctx context.Context, areaID int64, name string) (*entity.Inventory, error)
	// Update reescribe todos los campos del inventory.
	Update(ctx context.Context, inv *entity.Inventory) error
	// Delete elimina el inventory.
	Delete(ctx context.Context, inventoryID int64) error
	// ListByArea lista inventories del área ordenados por nombre, con contexto.
	ListByArea(ctx context.Context, areaID int64) ([]InventoryWithContext, error)
	// List lista inventories globales paginados con filtros, más el total.
	List(ctx context.Context, f InventoryFilter) ([]InventoryWithContext, int, error)
}
