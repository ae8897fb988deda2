package importer_test

import (
	"context"
	"strings"
	"time"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// Fakes en memoria con lo mínimo que usan los importadores.

type memCats struct {
	nextID int64
	cats   []*entity.Category
}

func (m *memCats) FindOrCreate(_ context.Context, _ int64, name string) (*entity.Category, bool, error) {
	for _, c := range m.cats {
		if c.Name == name {
			return c, false, nil
		}
	}
	m.nextID++
	c := &entity.Category{ID: m.nextID, Name: name}
	m.cats = append(m.cats, c)
	return c, true, nil
}

func (m *memCats) GetByAudit(context.Context, int64, int64) (*entity.Category, error) {
	return nil, nil
}
func (m *memCats) GetWithAudit(context.Context, int64) (*entity.Category, int64, error) {
	return nil, 0, nil
}
func (m *memCats) GetWithItems(context.Context, int64) (*entity.Category, error) { return nil, nil }
func (m *memCats) Rename(context.Context, int64, string) error                   { return nil }
func (m *memCats) Delete(context.Context, int64) error                           { return nil }
func (m *memCats) ListByAudit(context.Context, int64) ([]*entity.Category, error) {
	return m.cats, nil
}

type memItem struct {
	categoryID int64
	item       entity.Item
}

type memItems struct {
	nextID int64
	items  []*memItem
}

func (m *memItems) Create(_ context.Context, categoryID int64, it *entity.Item) error {
	m.nextID++
	it.ID = m.nextID
	copied := *it
	m.items = append(m.items, &memItem{categoryID: categoryID, item: copied})
	return nil
}

func (m *memItems) Update(_ context.Context, it *entity.Item) error {
	for _, row := range m.items {
		if row.item.ID == it.ID {
			row.item = *it
			return nil
		}
	}
	return nil
}

func (m *memItems) FindByName(_ context.Context, categoryID int64, name string) (*entity.Item, error) {
	for _, row := range m.items {
		if row.categoryID == categoryID && strings.TrimSpace(row.item.Name) == name {
			copied := row.item
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memItems) GetByCategory(context.Context, int64, int64) (*entity.Item, error) {
	return nil, nil
}
func (m *memItems) GetScoped(context.Context, int64, int64, int64) (*entity.Item, error) {
	return nil, nil
}
func (m *memItems) Delete(context.Context, int64) error { return nil }
func (m *memItems) ListByAudit(context.Context, int64) ([]repository.ItemWithCategory, error) {
	return nil, nil
}
func (m *memItems) List(context.Context, repository.ItemFilter) ([]repository.ItemWithCategory, error) {
	return nil, nil
}

type memAreas struct {
	nextID int64
	areas  []*entity.InventoriesArea
}

func (m *memAreas) Create(_ context.Context, area *entity.InventoriesArea) error {
	m.nextID++
	area.ID = m.nextID
	if area.CreationDate.IsZero() {
		area.CreationDate = time.Now()
	}
	m.areas = append(m.areas, area)
	return nil
}

func (m *memAreas) FindByName(_ context.Context, localID int64, name string) (*entity.InventoriesArea, error) {
	for _, a := range m.areas {
		if a.LocalID == localID && a.Name == name {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAreas) GetByID(context.Context, int64) (*entity.InventoriesArea, error) { return nil, nil }
func (m *memAreas) GetByLocal(context.Context, int64, int64) (*entity.InventoriesArea, error) {
	return nil, nil
}
func (m *memAreas) Rename(context.Context, int64, string) error { return nil }
func (m *memAreas) Delete(context.Context, int64) error         { return nil }
func (m *memAreas) ListByLocal(context.Context, int64) ([]repository.AreaWithCount, error) {
	return nil, nil
}

type memInvs struct {
	nextID int64
	invs   []*entity.Inventory
}

func (m *memInvs) Create(_ context.Context, inv *entity.Inventory) error {
	m.nextID++
	inv.ID = m.nextID
	copied := *inv
	m.invs = append(m.invs, &copied)
	return nil
}

func (m *memInvs) Update(_ context.Context, inv *entity.Inventory) error {
	for i, existing := range m.invs {
		if existing.ID == inv.ID {
			copied := *inv
			m.invs[i] = &copied
			return nil
		}
	}
	return nil
}

func (m *memInvs) FindByName(_ context.Context, areaID int64, name string) (*entity.Inventory, error) {
	for _, inv := range m.invs {
		if inv.AreaID == areaID && strings.TrimSpace(inv.Name) == name {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memInvs) GetByArea(context.Context, int64, int64) (*entity.Inventory, error) {
	return nil, nil
}
func (m *memInvs) GetByID(context.Context, int64) (*entity.Inventory, error) { return nil, nil }
func (m *memInvs) Delete(context.Context, int64) error                       { return nil }
func (m *memInvs) ListByArea(context.Context, int64) ([]repository.InventoryWithContext, error) {
	return nil, nil
}
func (m *memInvs) List(context.Context, repository.InventoryFilter) ([]repository.InventoryWithContext, int, error) {
	return nil, 0, nil
}
