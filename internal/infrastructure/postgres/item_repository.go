package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, ranking, observation, price, stock, income, other_income,
	total_stock, physical_stock, difference, column_15`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByCategory devuelve el item solo si pertenece a esa categoría, o nil.
func (r *ItemRepo) GetByCategory(ctx context.Context, itemID, categoryID int64) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND category_id = $2`
	return r.scanOne(ctx, query, itemID, categoryID)
}

// GetScoped exige además que la categoría pertenezca a la auditoría, o nil.
func (r *ItemRepo) GetScoped(ctx context.Context, itemID, categoryID, auditRowID int64) (*entity.Item, error) {
	query := `
		SELECT i.id, i.name, i.ranking, i.observation, i.price, i.stock, i.income, i.other_income,
			i.total_stock, i.physical_stock, i.difference, i.column_15
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.id = $1 AND i.category_id = $2 AND c.audit_id = $3`
	return r.scanOne(ctx, query, itemID, categoryID, auditRowID)
}

// FindByName busca por nombre exacto (ya recortado) dentro de la categoría, o nil.
func (r *ItemRepo) FindByName(ctx context.Context, categoryID int64, name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE category_id = $1 AND name = $2 ORDER BY id LIMIT 1`
	return r.scanOne(ctx, query, categoryID, name)
}

func (r *ItemRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.Name, &it.Ranking, &it.Observation, &it.Price, &it.Stock, &it.Income,
		&it.OtherIncome, &it.TotalStock, &it.PhysicalStock, &it.Difference, &it.Column15,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Create inserta el item bajo la categoría y asigna su ID.
func (r *ItemRepo) Create(ctx context.Context, categoryID int64, it *entity.Item) error {
	query := `
		INSERT INTO items (category_id, name, ranking, observation, price, stock, income,
			other_income, total_stock, physical_stock, difference, column_15)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		categoryID, it.Name, it.Ranking, it.Observation, it.Price, it.Stock, it.Income,
		it.OtherIncome, it.TotalStock, it.PhysicalStock, it.Difference, it.Column15,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update reescribe todos los campos del item.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET name = $2, ranking = $3, observation = $4, price = $5, stock = $6,
			income = $7, other_income = $8, total_stock = $9, physical_stock = $10,
			difference = $11, column_15 = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Ranking, it.Observation, it.Price, it.Stock,
		it.Income, it.OtherIncome, it.TotalStock, it.PhysicalStock, it.Difference, it.Column15,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete elimina el item.
func (r *ItemRepo) Delete(ctx context.Context, itemID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ListByAudit lista items de una auditoría ordenados por (categoría, nombre).
func (r *ItemRepo) ListByAudit(ctx context.Context, auditRowID int64) ([]repository.ItemWithCategory, error) {
	query := `
		SELECT i.id, i.name, i.ranking, i.observation, i.price, i.stock, i.income, i.other_income,
			i.total_stock, i.physical_stock, i.difference, i.column_15,
			c.id, c.name, l.id, l.name
		FROM items i
		JOIN categories c ON c.id = i.category_id
		JOIN audits a ON a.id = c.audit_id
		JOIN locals l ON l.id = a.local_id
		WHERE c.audit_id = $1
		ORDER BY c.name, i.name`
	return r.listWithCategory(ctx, query, auditRowID)
}

// List lista items globales con filtros, ordenados por nombre.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]repository.ItemWithCategory, error) {
	var conds []string
	var args []any
	if f.CompanyID != nil {
		args = append(args, *f.CompanyID)
		conds = append(conds, fmt.Sprintf("l.company_id = $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("i.category_id = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	query := fmt.Sprintf(`
		SELECT i.id, i.name, i.ranking, i.observation, i.price, i.stock, i.income, i.other_income,
			i.total_stock, i.physical_stock, i.difference, i.column_15,
			c.id, c.name, l.id, l.name
		FROM items i
		JOIN categories c ON c.id = i.category_id
		JOIN audits a ON a.id = c.audit_id
		JOIN locals l ON l.id = a.local_id
		%s
		ORDER BY i.name`, where)
	return r.listWithCategory(ctx, query, args...)
}

func (r *ItemRepo) listWithCategory(ctx context.Context, query string, args ...any) ([]repository.ItemWithCategory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []repository.ItemWithCategory
	for rows.Next() {
		var row repository.ItemWithCategory
		err := rows.Scan(
			&row.Item.ID, &row.Item.Name, &row.Item.Ranking, &row.Item.Observation,
			&row.Item.Price, &row.Item.Stock, &row.Item.Income, &row.Item.OtherIncome,
			&row.Item.TotalStock, &row.Item.PhysicalStock, &row.Item.Difference, &row.Item.Column15,
			&row.CategoryID, &row.CategoryName, &row.LocalID, &row.LocalName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
