package repository

import (
	"context"
	"time"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

// AuditFilter filtros del listado de auditorías.
type AuditFilter struct {
	CompanyID    *int64
	LocalID      *int64
	SupervisorID *int64
	DateFrom     *time.Time
	DateTo       *time.Time
	Status       string // "", "open", "closed"
	Limit        int
	Offset       int
}

// AuditSummary proyección plana para listados (sin categorías).
type AuditSummary struct {
	ID             int64
	UUID           string
	LocalID        int64
	LocalName      string
	SupervisorID   int64
	SupervisorName string
	UserID         int64
	CreationDate   time.Time
	ClosedAt       *time.Time
	Score          int
}

// AuditRepository define el puerto de persistencia para el agregado Audit (DIP).
// Save y Find operan sobre el agregado completo; el resto son lecturas planas.
type AuditRepository interface {
	// Save upserta la fila de la auditoría por su identidad opaca y
	// reconcilia categorías e items dentro de una transacción.
	Save(ctx context.Context, a *entity.Audit) error
	// FindByUUID rehidrata el agregado completo (categorías -> items) o nil.
	FindByUUID(ctx context.Context, id string) (*entity.Audit, error)
	// FindByRowID rehidrata por id numérico de fila.
	FindByRowID(ctx context.Context, rowID int64) (*entity.Audit, error)
	// LatestByLocal devuelve la auditoría más reciente del local (abierta o no), o nil.
	LatestByLocal(ctx context.Context, localID int64) (*entity.Audit, error)
	// LatestOpenByLocal devuelve la auditoría abierta más reciente del local, o nil.
	LatestOpenByLocal(ctx context.Context, localID int64) (*entity.Audit, error)
	// List devuelve resúmenes paginados según filtro, más el total.
	List(ctx context.Context, f AuditFilter) ([]AuditSummary, int, error)
}
