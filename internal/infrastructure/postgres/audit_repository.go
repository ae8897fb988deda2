package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// Asegura que AuditRepo implementa repository.AuditRepository.
var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL.
// Save reconcilia el agregado por diferencias contra lo persistido, así
// que debe correr dentro de una transacción (TxRunner).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditorías. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Save upserta la fila de la auditoría por su uuid y reconcilia
// categorías e items: sobrevivientes se actualizan en sitio (conservan
// id), nuevos se insertan, ausentes se eliminan.
func (r *AuditRepo) Save(ctx context.Context, a *entity.Audit) error {
	if a.RowID() == 0 {
		query := `
			INSERT INTO audits (uuid, local_id, supervisor_id, user_id, score, creation_date, closed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
		var rowID int64
		err := r.q.QueryRow(ctx, query,
			a.ID(), a.LocalID(), a.SupervisorID(), a.CreatedBy(),
			a.Score(), a.CreatedAt(), a.ClosedAt(),
		).Scan(&rowID)
		if err != nil {
			return fmt.Errorf("insert audit: %w", err)
		}
		a.SetRowID(rowID)
	} else {
		query := `UPDATE audits SET score = $2, closed_at = $3 WHERE id = $1`
		if _, err := r.q.Exec(ctx, query, a.RowID(), a.Score(), a.ClosedAt()); err != nil {
			return fmt.Errorf("update audit: %w", err)
		}
	}
	return r.reconcileCategories(ctx, a)
}

// reconcileCategories alinea las filas de categorías e items con el
// estado del agregado.
func (r *AuditRepo) reconcileCategories(ctx context.Context, a *entity.Audit) error {
	existing, err := r.categoryIDs(ctx, a.RowID())
	if err != nil {
		return err
	}
	kept := make(map[int64]bool, len(a.Categories()))

	for _, cat := range a.Categories() {
		if cat.ID == 0 {
			query := `INSERT INTO categories (audit_id, name) VALUES ($1, $2) RETURNING id`
			if err := r.q.QueryRow(ctx, query, a.RowID(), cat.Name).Scan(&cat.ID); err != nil {
				return fmt.Errorf("insert category: %w", err)
			}
		} else {
			query := `UPDATE categories SET name = $2 WHERE id = $1 AND audit_id = $3`
			if _, err := r.q.Exec(ctx, query, cat.ID, cat.Name, a.RowID()); err != nil {
				return fmt.Errorf("update category: %w", err)
			}
		}
		kept[cat.ID] = true
		if err := r.reconcileItems(ctx, cat); err != nil {
			return err
		}
	}

	for _, id := range existing {
		if !kept[id] {
			if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
				return fmt.Errorf("delete category: %w", err)
			}
		}
	}
	return nil
}

func (r *AuditRepo) reconcileItems(ctx context.Context, cat *entity.Category) error {
	rows, err := r.q.Query(ctx, `SELECT id FROM items WHERE category_id = $1`, cat.ID)
	if err != nil {
		return fmt.Errorf("list item ids: %w", err)
	}
	existing, err := collectIDs(rows)
	if err != nil {
		return err
	}
	kept := make(map[int64]bool, len(cat.Items))

	for _, it := range cat.Items {
		if it.ID == 0 {
			query := `
				INSERT INTO items (category_id, name, ranking, observation, price, stock, income,
					other_income, total_stock, physical_stock, difference, column_15)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				RETURNING id`
			err := r.q.QueryRow(ctx, query,
				cat.ID, it.Name, it.Ranking, it.Observation, it.Price, it.Stock, it.Income,
				it.OtherIncome, it.TotalStock, it.PhysicalStock, it.Difference, it.Column15,
			).Scan(&it.ID)
			if err != nil {
				return fmt.Errorf("insert item: %w", err)
			}
		} else {
			query := `
				UPDATE items SET name = $2, ranking = $3, observation = $4, price = $5, stock = $6,
					income = $7, other_income = $8, total_stock = $9, physical_stock = $10,
					difference = $11, column_15 = $12
				WHERE id = $1 AND category_id = $13`
			_, err := r.q.Exec(ctx, query,
				it.ID, it.Name, it.Ranking, it.Observation, it.Price, it.Stock,
				it.Income, it.OtherIncome, it.TotalStock, it.PhysicalStock,
				it.Difference, it.Column15, cat.ID,
			)
			if err != nil {
				return fmt.Errorf("update item: %w", err)
			}
		}
		kept[it.ID] = true
	}

	for _, id := range existing {
		if !kept[id] {
			if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
				return fmt.Errorf("delete item: %w", err)
			}
		}
	}
	return nil
}

func (r *AuditRepo) categoryIDs(ctx context.Context, auditRowID int64) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM categories WHERE audit_id = $1`, auditRowID)
	if err != nil {
		return nil, fmt.Errorf("list category ids: %w", err)
	}
	return collectIDs(rows)
}

// FindByUUID rehidrata el agregado completo o devuelve nil.
func (r *AuditRepo) FindByUUID(ctx context.Context, id string) (*entity.Audit, error) {
	return r.findOne(ctx, `WHERE uuid = $1`, id)
}

// FindByRowID rehidrata por id numérico de fila.
func (r *AuditRepo) FindByRowID(ctx context.Context, rowID int64) (*entity.Audit, error) {
	return r.findOne(ctx, `WHERE id = $1`, rowID)
}

// LatestByLocal devuelve la auditoría más reciente del local, o nil.
func (r *AuditRepo) LatestByLocal(ctx context.Context, localID int64) (*entity.Audit, error) {
	return r.findOne(ctx, `WHERE local_id = $1 ORDER BY creation_date DESC, id DESC LIMIT 1`, localID)
}

// LatestOpenByLocal devuelve la auditoría abierta más reciente del local, o nil.
func (r *AuditRepo) LatestOpenByLocal(ctx context.Context, localID int64) (*entity.Audit, error) {
	return r.findOne(ctx, `WHERE local_id = $1 AND closed_at IS NULL ORDER BY creation_date DESC, id DESC LIMIT 1`, localID)
}

func (r *AuditRepo) findOne(ctx context.Context, where string, arg any) (*entity.Audit, error) {
	query := `
		SELECT id, uuid, local_id, supervisor_id, user_id, score, creation_date, closed_at
		FROM audits ` + where
	var (
		rowID, localID, supervisorID, createdBy int64
		id                                      string
		score                                   int
		createdAt                               time.Time
		closedAt                                *time.Time
	)
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&rowID, &id, &localID, &supervisorID, &createdBy, &score, &createdAt, &closedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit: %w", err)
	}
	categories, err := r.loadCategories(ctx, rowID)
	if err != nil {
		return nil, err
	}
	return entity.RehydrateAudit(rowID, id, localID, supervisorID, createdBy, createdAt, closedAt, score, categories), nil
}

// loadCategories carga categorías e items en orden estable (id de inserción).
func (r *AuditRepo) loadCategories(ctx context.Context, auditRowID int64) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM categories WHERE audit_id = $1 ORDER BY id`, auditRowID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []*entity.Category
	index := map[int64]*entity.Category{}
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, &c)
		index[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT i.id, i.category_id, i.name, i.ranking, i.observation, i.price, i.stock, i.income,
			i.other_income, i.total_stock, i.physical_stock, i.difference, i.column_15
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE c.audit_id = $1
		ORDER BY i.category_id, i.id`, auditRowID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it entity.Item
		var categoryID int64
		err := itemRows.Scan(
			&it.ID, &categoryID, &it.Name, &it.Ranking, &it.Observation, &it.Price, &it.Stock,
			&it.Income, &it.OtherIncome, &it.TotalStock, &it.PhysicalStock, &it.Difference, &it.Column15,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if cat, ok := index[categoryID]; ok {
			cat.Items = append(cat.Items, &it)
		}
	}
	return cats, itemRows.Err()
}

// List devuelve resúmenes paginados según filtro, más el total.
func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]repository.AuditSummary, int, error) {
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
	if f.SupervisorID != nil {
		add("a.supervisor_id = $%d", *f.SupervisorID)
	}
	if f.DateFrom != nil {
		add("a.creation_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("a.creation_date <= $%d", *f.DateTo)
	}
	switch f.Status {
	case "open":
		conds = append(conds, "a.closed_at IS NULL")
	case "closed":
		conds = append(conds, "a.closed_at IS NOT NULL")
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM audits a
		JOIN locals l ON l.id = a.local_id
		%s`, where)
	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audits: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 15
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT a.id, a.uuid, a.local_id, l.name, a.supervisor_id, coalesce(u.name, ''),
			a.user_id, a.creation_date, a.closed_at, a.score
		FROM audits a
		JOIN locals l ON l.id = a.local_id
		LEFT JOIN users u ON u.id = a.supervisor_id
		%s
		ORDER BY a.creation_date DESC, a.id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	var list []repository.AuditSummary
	for rows.Next() {
		var s repository.AuditSummary
		err := rows.Scan(
			&s.ID, &s.UUID, &s.LocalID, &s.LocalName, &s.SupervisorID, &s.SupervisorName,
			&s.UserID, &s.CreationDate, &s.ClosedAt, &s.Score,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan audit: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}
