package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auditoriapp/auditoria-api/internal/application/audit"
	"github.com/auditoriapp/auditoria-api/internal/application/inventories"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// Asegura que TxRunner implementa las fronteras transaccionales de los casos de uso.
var _ audit.TxRunner = (*TxRunner)(nil)
var _ inventories.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAudit inicia una transacción, ejecuta fn con repos de auditoría
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunAudit(ctx context.Context, fn func(
	audits repository.AuditRepository,
	cats repository.CategoryRepository,
	items repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAuditRepository(tx), NewCategoryRepository(tx), NewItemRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInventories inicia una transacción con repos de inventario.
func (r *TxRunner) RunInventories(ctx context.Context, fn func(
	areas repository.AreaRepository,
	invs repository.InventoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAreaRepository(tx), NewInventoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
