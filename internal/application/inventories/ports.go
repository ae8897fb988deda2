package inventories

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// TxRunner delimita la frontera transaccional de los casos de uso de
// inventarios: fn recibe repositorios atados a la misma transacción.
type TxRunner interface {
	RunInventories(ctx context.Context, fn func(areas repository.AreaRepository, invs repository.InventoryRepository) error) error
}
