package postgres

import (
	"context"
	"fmt"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByAudit devuelve la categoría solo si pertenece a esa auditoría, o nil.
func (r *CategoryRepo) GetByAudit(ctx context.Context, categoryID, auditRowID int64) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1 AND audit_id = $2`,
		categoryID, auditRowID,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetWithAudit devuelve la categoría y el id de fila de su auditoría, o nil.
func (r *CategoryRepo) GetWithAudit(ctx context.Context, categoryID int64) (*entity.Category, int64, error) {
	var c entity.Category
	var auditRowID int64
	err := r.q.QueryRow(ctx,
		`SELECT id, name, audit_id FROM categories WHERE id = $1`, categoryID,
	).Scan(&c.ID, &c.Name, &auditRowID)
	if err != nil {
		if isNoRows(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("get category: %w", err)
	}
	return &c, auditRowID, nil
}

// GetWithItems carga la categoría con sus items en orden de inserción, o nil.
func (r *CategoryRepo) GetWithItems(ctx context.Context, categoryID int64) (*entity.Category, error) {
	cat, _, err := r.GetWithAudit(ctx, categoryID)
	if err != nil || cat == nil {
		return cat, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, name, ranking, observation, price, stock, income, other_income,
			total_stock, physical_stock, difference, column_15
		FROM items WHERE category_id = $1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list category items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.Item
		err := rows.Scan(
			&it.ID, &it.Name, &it.Ranking, &it.Observation, &it.Price, &it.Stock, &it.Income,
			&it.OtherIncome, &it.TotalStock, &it.PhysicalStock, &it.Difference, &it.Column15,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		cat.Items = append(cat.Items, &it)
	}
	return cat, rows.Err()
}

// FindOrCreate busca por nombre exacto dentro de la auditoría; crea si
// no existe. El booleano indica si la categoría fue creada.
func (r *CategoryRepo) FindOrCreate(ctx context.Context, auditRowID int64, name string) (*entity.Category, bool, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE audit_id = $1 AND name = $2`,
		auditRowID, name,
	).Scan(&c.ID, &c.Name)
	if err == nil {
		return &c, false, nil
	}
	if !isNoRows(err) {
		return nil, false, fmt.Errorf("find category: %w", err)
	}
	c.Name = name
	err = r.q.QueryRow(ctx,
		`INSERT INTO categories (audit_id, name) VALUES ($1, $2) RETURNING id`,
		auditRowID, name,
	).Scan(&c.ID)
	if err != nil {
		return nil, false, fmt.Errorf("insert category: %w", err)
	}
	return &c, true, nil
}

// Rename actualiza el nombre.
func (r *CategoryRepo) Rename(ctx context.Context, categoryID int64, name string) error {
	_, err := r.q.Exec(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, categoryID, name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("rename category: nombre duplicado en la auditoría: %w", err)
		}
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// Delete elimina la categoría (los items caen por cascade).
func (r *CategoryRepo) Delete(ctx context.Context, categoryID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListByAudit lista categorías de una auditoría (sin items).
func (r *CategoryRepo) ListByAudit(ctx context.Context, auditRowID int64) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name FROM categories WHERE audit_id = $1 ORDER BY id`, auditRowID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
