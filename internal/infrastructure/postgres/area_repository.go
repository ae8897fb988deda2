package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

var _ repository.AreaRepository = (*AreaRepo)(nil)

// AreaRepo implementación de AreaRepository sobre PostgreSQL (usable con pool o tx).
type AreaRepo struct {
	q Querier
}

// NewAreaRepository construye el adaptador de áreas. Pasar pool o tx (Querier).
func NewAreaRepository(q Querier) *AreaRepo {
	return &AreaRepo{q: q}
}

// Create inserta el área y asigna su ID.
func (r *AreaRepo) Create(ctx context.Context, area *entity.InventoriesArea) error {
	query := `
		INSERT INTO inventories_areas (local_id, name, creation_date, update_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, area.LocalID, area.Name, area.CreationDate, area.UpdateDate).Scan(&area.ID)
	if err != nil {
		return fmt.Errorf("insert area: %w", err)
	}
	return nil
}

// GetByID devuelve el área o nil.
func (r *AreaRepo) GetByID(ctx context.Context, areaID int64) (*entity.InventoriesArea, error) {
	return r.scanOne(ctx,
		`SELECT id, local_id, name, creation_date, update_date FROM inventories_areas WHERE id = $1`,
		areaID)
}

// GetByLocal devuelve el área solo si pertenece a ese local, o nil.
func (r *AreaRepo) GetByLocal(ctx context.Context, areaID, localID int64) (*entity.InventoriesArea, error) {
	return r.scanOne(ctx,
		`SELECT id, local_id, name, creation_date, update_date FROM inventories_areas WHERE id = $1 AND local_id = $2`,
		areaID, localID)
}

// FindByName busca por nombre exacto dentro del local, o nil.
func (r *AreaRepo) FindByName(ctx context.Context, localID int64, name string) (*entity.InventoriesArea, error) {
	return r.scanOne(ctx,
		`SELECT id, local_id, name, creation_date, update_date
		 FROM inventories_areas WHERE local_id = $1 AND name = $2 ORDER BY id LIMIT 1`,
		localID, name)
}

func (r *AreaRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.InventoriesArea, error) {
	var a entity.InventoriesArea
	err := r.q.QueryRow(ctx, query, args...).Scan(&a.ID, &a.LocalID, &a.Name, &a.CreationDate, &a.UpdateDate)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	return &a, nil
}

// Rename actualiza el nombre y la fecha de actualización.
func (r *AreaRepo) Rename(ctx context.Context, areaID int64, name string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventories_areas SET name = $2, update_date = $3 WHERE id = $1`,
		areaID, name, time.Now())
	if err != nil {
		return fmt.Errorf("rename area: %w", err)
	}
	return nil
}

// Delete elimina el área (los inventories caen por cascade).
func (r *AreaRepo) Delete(ctx context.Context, areaID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventories_areas WHERE id = $1`, areaID); err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	return nil
}

// ListByLocal lista áreas del local con conteo de items.
func (r *AreaRepo) ListByLocal(ctx context.Context, localID int64) ([]repository.AreaWithCount, error) {
	query := `
		SELECT a.id, a.local_id, a.name, a.creation_date, a.update_date, count(i.id)
		FROM inventories_areas a
		LEFT JOIN inventories i ON i.area_id = a.id
		WHERE a.local_id = $1
		GROUP BY a.id
		ORDER BY a.name`
	rows, err := r.q.Query(ctx, query, localID)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()

	var list []repository.AreaWithCount
	for rows.Next() {
		var row repository.AreaWithCount
		err := rows.Scan(&row.Area.ID, &row.Area.LocalID, &row.Area.Name,
			&row.Area.CreationDate, &row.Area.UpdateDate, &row.Count)
		if err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
