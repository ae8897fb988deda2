package audit

import (
	"context"
	"strings"

	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
	"github.com/auditoriapp/auditoria-api/pkg/logger"
)

// UseCase casos de uso de auditorías de cumplimiento. Las mutaciones
// corren dentro de TxRunner; las lecturas van directo a los repos.
type UseCase struct {
	audits repository.AuditRepository
	cats   repository.CategoryRepository
	items  repository.ItemRepository
	locals repository.LocalRepository
	perms  *auth.PermissionChecker
	tx     TxRunner
	log    *logger.Logger
}

// NewUseCase construye el caso de uso de auditorías.
func NewUseCase(
	audits repository.AuditRepository,
	cats repository.CategoryRepository,
	items repository.ItemRepository,
	locals repository.LocalRepository,
	perms *auth.PermissionChecker,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		audits: audits,
		cats:   cats,
		items:  items,
		locals: locals,
		perms:  perms,
		tx:     tx,
		log:    log,
	}
}

// Open abre una auditoría nueva para el local, siempre con identidad
// fresca: no hay restricción de "una abierta por local", así que pueden
// convivir varias auditorías abiertas sobre el mismo local.
func (uc *UseCase) Open(ctx context.Context, actor auth.Actor, localID int64) (*dto.AuditResponse, error) {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return nil, err
	}
	if err := uc.perms.EnsureLocalAccess(ctx, actor, localID); err != nil {
		return nil, err
	}
	local, err := uc.locals.GetByID(ctx, localID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, domain.ErrNotFound
	}

	// quien abre queda como supervisor responsable
	aud := entity.NewAudit(localID, actor.ID, actor.ID)
	var out *dto.AuditResponse
	err = uc.tx.RunAudit(ctx, func(audits repository.AuditRepository, _ repository.CategoryRepository, _ repository.ItemRepository) error {
		if err := audits.Save(ctx, aud); err != nil {
			return err
		}
		resp := uc.toAuditResponse(ctx, aud)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("local_id", localID).Str("audit_id", aud.ID()).Msg("auditoría abierta")
	return out, nil
}

// AddCategoryWithItems agrega una categoría (con items opcionales) a la
// auditoría abierta del local. Si el local no tiene auditoría abierta se
// crea una nueva en la misma transacción.
func (uc *UseCase) AddCategoryWithItems(ctx context.Context, actor auth.Actor, localID int64, in dto.AddCategoryRequest) (*dto.CategoryResponse, error) {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return nil, err
	}
	if err := uc.perms.EnsureLocalAccess(ctx, actor, localID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.CategoryResponse
	err := uc.tx.RunAudit(ctx, func(audits repository.AuditRepository, _ repository.CategoryRepository, _ repository.ItemRepository) error {
		aud, err := uc.openAuditForLocal(ctx, audits, localID, actor.ID)
		if err != nil {
			return err
		}

		cat := &entity.Category{Name: name}
		for _, it := range in.Items {
			if strings.TrimSpace(it.Name) == "" {
				continue
			}
			cat.AddItem(itemFromInput(it))
		}
		if err := aud.AddCategory(cat); err != nil {
			return err
		}
		if err := audits.Save(ctx, aud); err != nil {
			return err
		}
		resp := toCategoryResponse(cat)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("local_id", localID).Str("category", name).Msg("categoría agregada a la auditoría")
	return out, nil
}

// AddItemsToCategory upserta items en una categoría existente: entradas
// con id actualizan en sitio, sin id crean. Un id que no pertenece a la
// categoría corta la operación con ErrNotFound.
func (uc *UseCase) AddItemsToCategory(ctx context.Context, actor auth.Actor, categoryID int64, in dto.AddItemsRequest) (*dto.CategoryResponse, error) {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := uc.resolveOpenAudit(ctx, actor, categoryID); err != nil {
		return nil, err
	}

	var out *dto.CategoryResponse
	err := uc.tx.RunAudit(ctx, func(_ repository.AuditRepository, cats repository.CategoryRepository, items repository.ItemRepository) error {
		for _, entry := range in.Items {
			if entry.ID != nil {
				existing, err := items.GetByCategory(ctx, *entry.ID, categoryID)
				if err != nil {
					return err
				}
				if existing == nil {
					return domain.ErrNotFound
				}
				applyItemInput(existing, entry)
				if err := items.Update(ctx, existing); err != nil {
					return err
				}
				continue
			}
			if strings.TrimSpace(entry.Name) == "" {
				continue
			}
			if err := items.Create(ctx, categoryID, itemFromInput(entry)); err != nil {
				return err
			}
		}
		cat, err := cats.GetWithItems(ctx, categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrNotFound
		}
		resp := toCategoryResponse(cat)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RenameCategory cambia el nombre de una categoría de la auditoría
// abierta. El nombre se recorta antes de persistir.
func (uc *UseCase) RenameCategory(ctx context.Context, actor auth.Actor, categoryID int64, in dto.RenameCategoryRequest) error {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	if _, err := uc.resolveOpenAudit(ctx, actor, categoryID); err != nil {
		return err
	}
	return uc.cats.Rename(ctx, categoryID, name)
}

// RemoveCategory elimina la categoría y sus items (cascade).
func (uc *UseCase) RemoveCategory(ctx context.Context, actor auth.Actor, categoryID int64) error {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return err
	}
	if _, err := uc.resolveOpenAudit(ctx, actor, categoryID); err != nil {
		return err
	}
	return uc.cats.Delete(ctx, categoryID)
}

// UpdateItem actualiza parcialmente un item: solo los campos presentes
// en la petición se reescriben.
func (uc *UseCase) UpdateItem(ctx context.Context, actor auth.Actor, categoryID, itemID int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := uc.resolveOpenAudit(ctx, actor, categoryID); err != nil {
		return nil, err
	}
	it, err := uc.items.GetByCategory(ctx, itemID, categoryID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	applyItemUpdate(it, in)
	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	resp := toItemResponse(it)
	return &resp, nil
}

// RemoveItem elimina un item de la categoría.
func (uc *UseCase) RemoveItem(ctx context.Context, actor auth.Actor, categoryID, itemID int64) error {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return err
	}
	if _, err := uc.resolveOpenAudit(ctx, actor, categoryID); err != nil {
		return err
	}
	it, err := uc.items.GetByCategory(ctx, itemID, categoryID)
	if err != nil {
		return err
	}
	if it == nil {
		return domain.ErrNotFound
	}
	return uc.items.Delete(ctx, itemID)
}

// Close cierra la auditoría. Es la transición terminal del agregado:
// repetir el cierre devuelve ErrAuditClosed.
func (uc *UseCase) Close(ctx context.Context, actor auth.Actor, auditUUID string) (*dto.AuditResponse, error) {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return nil, err
	}
	var out *dto.AuditResponse
	err := uc.tx.RunAudit(ctx, func(audits repository.AuditRepository, _ repository.CategoryRepository, _ repository.ItemRepository) error {
		aud, err := audits.FindByUUID(ctx, auditUUID)
		if err != nil {
			return err
		}
		if aud == nil {
			return domain.ErrNotFound
		}
		if err := uc.perms.EnsureLocalAccess(ctx, actor, aud.LocalID()); err != nil {
			return err
		}
		if err := aud.Close(); err != nil {
			return err
		}
		if err := audits.Save(ctx, aud); err != nil {
			return err
		}
		resp := uc.toAuditResponse(ctx, aud)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("audit_id", auditUUID).Msg("auditoría cerrada")
	return out, nil
}

// openAuditForLocal devuelve la auditoría abierta más reciente del
// local, o crea una nueva (persistida, con id de fila asignado).
func (uc *UseCase) openAuditForLocal(ctx context.Context, audits repository.AuditRepository, localID, createdBy int64) (*entity.Audit, error) {
	aud, err := audits.LatestOpenByLocal(ctx, localID)
	if err != nil {
		return nil, err
	}
	if aud != nil {
		return aud, nil
	}
	local, err := uc.locals.GetByID(ctx, localID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, domain.ErrNotFound
	}
	// quien dispara la creación queda como supervisor responsable
	aud = entity.NewAudit(localID, createdBy, createdBy)
	if err := audits.Save(ctx, aud); err != nil {
		return nil, err
	}
	return aud, nil
}

// resolveOpenAudit resuelve la auditoría dueña de la categoría, valida
// acceso al local y exige que siga abierta.
func (uc *UseCase) resolveOpenAudit(ctx context.Context, actor auth.Actor, categoryID int64) (*entity.Audit, error) {
	cat, auditRowID, err := uc.cats.GetWithAudit(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	aud, err := uc.audits.FindByRowID(ctx, auditRowID)
	if err != nil {
		return nil, err
	}
	if aud == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.perms.EnsureLocalAccess(ctx, actor, aud.LocalID()); err != nil {
		return nil, err
	}
	if aud.IsClosed() {
		return nil, domain.ErrAuditClosed
	}
	return aud, nil
}

func itemFromInput(in dto.ItemInput) *entity.Item {
	it := &entity.Item{Name: strings.TrimSpace(in.Name)}
	applyItemInput(it, in)
	return it
}

// applyItemInput aplica una entrada de upsert: ranking ausente baja a 0
// (los items de auditoría siempre tienen ranking), contadores ausentes a 0.
func applyItemInput(it *entity.Item, in dto.ItemInput) {
	if name := strings.TrimSpace(in.Name); name != "" {
		it.Name = name
	}
	ranking := entity.RankingNotCompliant
	if in.Ranking != nil {
		ranking = *in.Ranking
	}
	it.Ranking = &ranking
	it.Observation = in.Observation
	it.Price = intOrZero(in.Price)
	it.Stock = intOrZero(in.Stock)
	it.Income = intOrZero(in.Income)
	it.OtherIncome = intOrZero(in.OtherIncome)
	it.TotalStock = intOrZero(in.TotalStock)
	it.PhysicalStock = intOrZero(in.PhysicalStock)
	it.Difference = intOrZero(in.Difference)
	it.Column15 = intOrZero(in.Column15)
}

// applyItemUpdate aplica una actualización parcial: solo campos presentes.
func applyItemUpdate(it *entity.Item, in dto.UpdateItemRequest) {
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			it.Name = name
		}
	}
	if in.Ranking != nil {
		it.Ranking = in.Ranking
	}
	if in.Observation != nil {
		it.Observation = in.Observation
	}
	if in.Price != nil {
		it.Price = *in.Price
	}
	if in.Stock != nil {
		it.Stock = *in.Stock
	}
	if in.Income != nil {
		it.Income = *in.Income
	}
	if in.OtherIncome != nil {
		it.OtherIncome = *in.OtherIncome
	}
	if in.TotalStock != nil {
		it.TotalStock = *in.TotalStock
	}
	if in.PhysicalStock != nil {
		it.PhysicalStock = *in.PhysicalStock
	}
	if in.Difference != nil {
		it.Difference = *in.Difference
	}
	if in.Column15 != nil {
		it.Column15 = *in.Column15
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
