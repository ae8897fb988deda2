package postgres

import (
	"context"
	"fmt"

	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

var _ repository.LocalRepository = (*LocalRepo)(nil)

// LocalRepo implementación del puerto LocalRepository sobre PostgreSQL.
type LocalRepo struct {
	q Querier
}

// NewLocalRepository construye el adaptador de persistencia para locales.
func NewLocalRepository(q Querier) *LocalRepo {
	return &LocalRepo{q: q}
}

// Create persiste un nuevo local. El nombre es único dentro de la
// empresa: duplicados devuelven ErrDuplicate.
func (r *LocalRepo) Create(ctx context.Context, l *entity.Local) error {
	query := `
		INSERT INTO locals (company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, l.CompanyID, l.Name, l.CreatedAt, l.UpdatedAt).Scan(&l.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert local: %w", err)
	}
	return nil
}

// GetByID obtiene un local por ID, o nil.
func (r *LocalRepo) GetByID(ctx context.Context, id int64) (*entity.Local, error) {
	var l entity.Local
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, name, created_at, updated_at FROM locals WHERE id = $1`, id,
	).Scan(&l.ID, &l.CompanyID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local: %w", err)
	}
	return &l, nil
}

// ListByCompany lista los locales de una empresa ordenados por nombre.
func (r *LocalRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Local, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, name, created_at, updated_at FROM locals WHERE company_id = $1 ORDER BY name`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list locals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Local
	for rows.Next() {
		var l entity.Local
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan local: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
