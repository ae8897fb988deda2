package audit

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// TxRunner delimita la frontera transaccional de los casos de uso de
// auditorías: fn recibe repositorios atados a la misma transacción y
// el commit/rollback queda del lado de la infraestructura.
type TxRunner interface {
	RunAudit(ctx context.Context, fn func(audits repository.AuditRepository, cats repository.CategoryRepository, items repository.ItemRepository) error) error
}
