package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/auditoriapp/auditoria-api/internal/domain"
)

// Audit es el agregado de una auditoría de cumplimiento: una inspección
// sobre un local con sus categorías e items. Es la única entidad con
// máquina de estados: OPEN -> CLOSED, sin vuelta atrás.
type Audit struct {
	rowID        int64  // id numérico de la fila; 0 hasta el primer Save
	id           string // identidad opaca (uuid), distinta del id de fila
	localID      int64
	supervisorID int64
	createdBy    int64
	createdAt    time.Time
	closedAt     *time.Time
	score        int
	categories   []*Category
}

// NewAudit crea una auditoría abierta con identidad fresca.
func NewAudit(localID, supervisorID, createdBy int64) *Audit {
	return &Audit{
		id:           uuid.New().String(),
		localID:      localID,
		supervisorID: supervisorID,
		createdBy:    createdBy,
		createdAt:    time.Now(),
	}
}

// RehydrateAudit reconstruye el agregado desde persistencia.
func RehydrateAudit(rowID int64, id string, localID, supervisorID, createdBy int64, createdAt time.Time, closedAt *time.Time, score int, categories []*Category) *Audit {
	return &Audit{
		rowID:        rowID,
		id:           id,
		localID:      localID,
		supervisorID: supervisorID,
		createdBy:    createdBy,
		createdAt:    createdAt,
		closedAt:     closedAt,
		score:        score,
		categories:   categories,
	}
}

func (a *Audit) RowID() int64            { return a.rowID }
func (a *Audit) ID() string              { return a.id }
func (a *Audit) LocalID() int64          { return a.localID }
func (a *Audit) SupervisorID() int64     { return a.supervisorID }
func (a *Audit) CreatedBy() int64        { return a.createdBy }
func (a *Audit) CreatedAt() time.Time    { return a.createdAt }
func (a *Audit) ClosedAt() *time.Time    { return a.closedAt }
func (a *Audit) Score() int              { return a.score }
func (a *Audit) Categories() []*Category { return a.categories }
func (a *Audit) IsClosed() bool          { return a.closedAt != nil }

// SetRowID fija el id de fila asignado por la base de datos tras persistir.
func (a *Audit) SetRowID(id int64) { a.rowID = id }

// AddCategory agrega una categoría. Falla con ErrAuditClosed si la
// auditoría ya fue cerrada; el guard se repite en cada mutación porque
// los casos de uso recargan el agregado en cada petición.
func (a *Audit) AddCategory(c *Category) error {
	if err := a.assertOpen(); err != nil {
		return err
	}
	a.categories = append(a.categories, c)
	return nil
}

// Close marca la auditoría como cerrada. Es la transición terminal:
// falla con ErrAuditClosed si ya estaba cerrada.
func (a *Audit) Close() error {
	if err := a.assertOpen(); err != nil {
		return err
	}
	now := time.Now()
	a.closedAt = &now
	return nil
}

func (a *Audit) assertOpen() error {
	if a.closedAt != nil {
		return domain.ErrAuditClosed
	}
	return nil
}
