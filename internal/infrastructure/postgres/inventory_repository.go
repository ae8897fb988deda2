package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, area_id, name, ranking, observation, price, stock, income,
	other_income, total_stock, physical_stock, difference, creation_date, update_date`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventories. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta el inventory bajo el área y asigna su ID.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (area_id, name, ranking, observation, price, stock, income,
			other_income, total_stock, physical_stock, difference, creation_date, update_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		inv.AreaID, inv.Name, inv.Ranking, inv.Observation, inv.Price, inv.Stock, inv.Income,
		inv.OtherIncome, inv.TotalStock, inv.PhysicalStock, inv.Difference,
		inv.CreationDate, inv.UpdateDate,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByArea devuelve el inventory solo si pertenece a esa área, o nil.
func (r *InventoryRepo) GetByArea(ctx context.Context, inventoryID, areaID int64) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE id = $1 AND area_id = $2`
	return r.scanOne(ctx, query, inventoryID, areaID)
}

// GetByID devuelve el inventory o nil.
func (r *InventoryRepo) GetByID(ctx context.Context, inventoryID int64) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE id = $1`
	return r.scanOne(ctx, query, inventoryID)
}

// FindByName busca por nombre exacto (ya recortado) dentro del área, o nil.
func (r *InventoryRepo) FindByName(ctx context.Context, areaID int64, name string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE area_id = $1 AND name = $2 ORDER BY id LIMIT 1`
	return r.scanOne(ctx, query, areaID, name)
}

func (r *InventoryRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&inv.ID, &inv.AreaID, &inv.Name, &inv.Ranking, &inv.Observation, &inv.Price, &inv.Stock,
		&inv.Income, &inv.OtherIncome, &inv.TotalStock, &inv.PhysicalStock, &inv.Difference,
		&inv.CreationDate, &inv.UpdateDate,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// Update reescribe todos los campos del inventory y sella update_date.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	now := time.Now()
	inv.UpdateDate = &now
	query := `
		UPDATE inventories SET name = $2, ranking = $3, observation = $4, price = $5, stock = $6,
			income = $7, other_income = $8, total_stock = $9, physical_stock = $10,
			difference = $11, update_date = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Name, inv.Ranking, inv.Observation, inv.Price, inv.Stock,
		inv.Income, inv.OtherIncome, inv.TotalStock, inv.PhysicalStock, inv.Difference,
		inv.UpdateDate,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// Delete elimina el inventory.
func (r *InventoryRepo) Delete(ctx context.Context, inventoryID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventories WHERE id = $1`, inventoryID); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

// ListByArea lista inventories del área ordenados por nombre, con contexto.
func (r *InventoryRepo) ListByArea(ctx context.Context, areaID int64) ([]repository.InventoryWithContext, error) {
	areaIDFilter := areaID
	list, _, err := r.List(ctx, repository.InventoryFilter{AreaID: &areaIDFilter})
	return list, err
}

// List lista inventories globales con filtros, ordenados por nombre.
// Limit <= 0 desactiva la paginación (export de local completo).
func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter) ([]repository.InventoryWithContext, int, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CompanyID != nil {
		add("l.company_id = $%d", *f.CompanyID)
	}
	if f.LocalID != nil {
		add("a.local_id = $%d", *f.LocalID)
	}
	if f.AreaID != nil {
		add("i.area_id = $%d", *f.AreaID)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM inventories i
		JOIN inventories_areas a ON a.id = i.area_id
		JOIN locals l ON l.id = a.local_id
		%s`, where)
	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventories: %w", err)
	}

	paging := ""
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		paging = fmt.Sprintf("LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	query := fmt.Sprintf(`
		SELECT i.id, i.area_id, i.name, i.ranking, i.observation, i.price, i.stock, i.income,
			i.other_income, i.total_stock, i.physical_stock, i.difference, i.creation_date, i.update_date,
			a.name, l.id, l.name, c.id, c.name
		FROM inventories i
		JOIN inventories_areas a ON a.id = i.area_id
		JOIN locals l ON l.id = a.local_id
		JOIN companies c ON c.id = l.company_id
		%s
		ORDER BY i.name
		%s`, where, paging)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()

	var list []repository.InventoryWithContext
	for rows.Next() {
		var row repository.InventoryWithContext
		err := rows.Scan(
			&row.Inventory.ID, &row.Inventory.AreaID, &row.Inventory.Name, &row.Inventory.Ranking,
			&row.Inventory.Observation, &row.Inventory.Price, &row.Inventory.Stock, &row.Inventory.Income,
			&row.Inventory.OtherIncome, &row.Inventory.TotalStock, &row.Inventory.PhysicalStock,
			&row.Inventory.Difference, &row.Inventory.CreationDate, &row.Inventory.UpdateDate,
			&row.AreaName, &row.LocalID, &row.LocalName, &row.CompanyID, &row.CompanyName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}
