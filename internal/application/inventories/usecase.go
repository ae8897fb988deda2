package inventories

import (
	"context"
	"strings"
	"time"

	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
	"github.com/auditoriapp/auditoria-api/pkg/logger"
)

// UseCase casos de uso de inventarios por área. Sin máquina de estados:
// áreas e items se mutan directamente, siempre dentro del local del actor.
type UseCase struct {
	areas repository.AreaRepository
	invs  repository.InventoryRepository
	perms *auth.PermissionChecker
	tx    TxRunner
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de inventarios.
func NewUseCase(
	areas repository.AreaRepository,
	invs repository.InventoryRepository,
	perms *auth.PermissionChecker,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{areas: areas, invs: invs, perms: perms, tx: tx, log: log}
}

// AddAreaWithInventories crea (o reusa por nombre) un área del local y
// anexa los items recibidos. Siempre crea items nuevos, sin dedup.
func (uc *UseCase) AddAreaWithInventories(ctx context.Context, actor auth.Actor, localID int64, in dto.AddAreaRequest) (*dto.AreaWithInventoriesResponse, error) {
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

	var out *dto.AreaWithInventoriesResponse
	err := uc.tx.RunInventories(ctx, func(areas repository.AreaRepository, invs repository.InventoryRepository) error {
		area, err := areas.FindByName(ctx, localID, name)
		if err != nil {
			return err
		}
		if area == nil {
			area = &entity.InventoriesArea{LocalID: localID, Name: name, CreationDate: time.Now()}
			if err := areas.Create(ctx, area); err != nil {
				return err
			}
		}
		resp := dto.AreaWithInventoriesResponse{ID: area.ID, Name: area.Name, Inventories: []dto.InventoryResponse{}}
		for _, entry := range in.Inventories {
			if strings.TrimSpace(entry.Name) == "" {
				continue
			}
			inv := inventoryFromInput(entry)
			inv.AreaID = area.ID
			if err := invs.Create(ctx, inv); err != nil {
				return err
			}
			resp.Inventories = append(resp.Inventories, toInventoryResponse(inv))
		}
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("local_id", localID).Str("area", name).Msg("área de inventario registrada")
	return out, nil
}

// AddInventoriesToArea upserta items en un área existente: entradas con
// id actualizan en sitio, sin id crean. Un id ajeno al área corta con
// ErrNotFound.
func (uc *UseCase) AddInventoriesToArea(ctx context.Context, actor auth.Actor, areaID int64, in dto.AddInventoriesRequest) (*dto.AreaWithInventoriesResponse, error) {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return nil, err
	}
	area, err := uc.resolveArea(ctx, actor, areaID)
	if err != nil {
		return nil, err
	}

	var out *dto.AreaWithInventoriesResponse
	err = uc.tx.RunInventories(ctx, func(_ repository.AreaRepository, invs repository.InventoryRepository) error {
		for _, entry := range in.Inventories {
			if entry.ID != nil {
				existing, err := invs.GetByArea(ctx, *entry.ID, areaID)
				if err != nil {
					return err
				}
				if existing == nil {
					return domain.ErrNotFound
				}
				applyInventoryInput(existing, entry)
				if err := invs.Update(ctx, existing); err != nil {
					return err
				}
				continue
			}
			if strings.TrimSpace(entry.Name) == "" {
				continue
			}
			inv := inventoryFromInput(entry)
			inv.AreaID = areaID
			if err := invs.Create(ctx, inv); err != nil {
				return err
			}
		}
		rows, err := invs.ListByArea(ctx, areaID)
		if err != nil {
			return err
		}
		resp := dto.AreaWithInventoriesResponse{ID: area.ID, Name: area.Name, Inventories: make([]dto.InventoryResponse, 0, len(rows))}
		for _, r := range rows {
			resp.Inventories = append(resp.Inventories, toInventoryResponse(&r.Inventory))
		}
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RenameArea cambia el nombre del área. El nombre se recorta.
func (uc *UseCase) RenameArea(ctx context.Context, actor auth.Actor, areaID int64, in dto.RenameAreaRequest) error {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	if _, err := uc.resolveArea(ctx, actor, areaID); err != nil {
		return err
	}
	return uc.areas.Rename(ctx, areaID, name)
}

// RemoveArea elimina el área y sus items (cascade).
func (uc *UseCase) RemoveArea(ctx context.Context, actor auth.Actor, areaID int64) error {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return err
	}
	if _, err := uc.resolveArea(ctx, actor, areaID); err != nil {
		return err
	}
	return uc.areas.Delete(ctx, areaID)
}

// UpdateInventory actualiza parcialmente un item del área.
func (uc *UseCase) UpdateInventory(ctx context.Context, actor auth.Actor, areaID, inventoryID int64, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := uc.resolveArea(ctx, actor, areaID); err != nil {
		return nil, err
	}
	inv, err := uc.invs.GetByArea(ctx, inventoryID, areaID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	applyInventoryUpdate(inv, in)
	if err := uc.invs.Update(ctx, inv); err != nil {
		return nil, err
	}
	resp := toInventoryResponse(inv)
	return &resp, nil
}

// RemoveInventory elimina un item del área.
func (uc *UseCase) RemoveInventory(ctx context.Context, actor auth.Actor, areaID, inventoryID int64) error {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return err
	}
	if _, err := uc.resolveArea(ctx, actor, areaID); err != nil {
		return err
	}
	inv, err := uc.invs.GetByArea(ctx, inventoryID, areaID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.invs.Delete(ctx, inventoryID)
}

// ListAreas lista las áreas del local con el conteo de items.
func (uc *UseCase) ListAreas(ctx context.Context, actor auth.Actor, localID int64) ([]dto.AreaResponse, error) {
	if err := uc.perms.EnsureLocalAccess(ctx, actor, localID); err != nil {
		return nil, err
	}
	rows, err := uc.areas.ListByLocal(ctx, localID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AreaResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AreaResponse{
			ID:               r.Area.ID,
			Name:             r.Area.Name,
			LocalID:          r.Area.LocalID,
			InventoriesCount: r.Count,
		})
	}
	return out, nil
}

// ListByArea devuelve el área con sus items ordenados por nombre.
func (uc *UseCase) ListByArea(ctx context.Context, actor auth.Actor, areaID int64) (*dto.AreaWithInventoriesResponse, error) {
	area, err := uc.resolveArea(ctx, actor, areaID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.invs.ListByArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	out := &dto.AreaWithInventoriesResponse{ID: area.ID, Name: area.Name, Inventories: make([]dto.InventoryResponse, 0, len(rows))}
	for _, r := range rows {
		out.Inventories = append(out.Inventories, toInventoryResponse(&r.Inventory))
	}
	return out, nil
}

// Index lista inventories globales paginados con filtros por empresa,
// local o área.
func (uc *UseCase) Index(ctx context.Context, actor auth.Actor, f repository.InventoryFilter, page, perPage int) (*dto.InventoryListResponse, error) {
	if f.LocalID != nil {
		if err := uc.perms.EnsureLocalAccess(ctx, actor, *f.LocalID); err != nil {
			return nil, err
		}
	}
	if perPage <= 0 {
		perPage = 15
	}
	if page <= 0 {
		page = 1
	}
	f.Limit = perPage
	f.Offset = (page - 1) * perPage

	rows, total, err := uc.invs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryListResponse{
		Data:       make([]dto.InventoryWithContextResponse, 0, len(rows)),
		Pagination: dto.NewPagination(page, perPage, total),
	}
	for _, r := range rows {
		out.Data = append(out.Data, dto.InventoryWithContextResponse{
			InventoryResponse: toInventoryResponse(&r.Inventory),
			Area:              dto.EntityRef{ID: r.Inventory.AreaID, Name: r.AreaName},
			Local:             dto.EntityRef{ID: r.LocalID, Name: r.LocalName},
			Company:           dto.EntityRef{ID: r.CompanyID, Name: r.CompanyName},
		})
	}
	return out, nil
}

// resolveArea carga el área y valida acceso del actor a su local.
func (uc *UseCase) resolveArea(ctx context.Context, actor auth.Actor, areaID int64) (*entity.InventoriesArea, error) {
	area, err := uc.areas.GetByID(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.perms.EnsureLocalAccess(ctx, actor, area.LocalID); err != nil {
		return nil, err
	}
	return area, nil
}

func inventoryFromInput(in dto.InventoryInput) *entity.Inventory {
	inv := &entity.Inventory{Name: strings.TrimSpace(in.Name), CreationDate: time.Now()}
	applyInventoryInput(inv, in)
	return inv
}

// applyInventoryInput aplica una entrada de upsert. A diferencia de los
// items de auditoría, el ranking ausente queda nulo.
func applyInventoryInput(inv *entity.Inventory, in dto.InventoryInput) {
	if name := strings.TrimSpace(in.Name); name != "" {
		inv.Name = name
	}
	inv.Ranking = in.Ranking
	inv.Observation = in.Observation
	inv.Price = intOrZero(in.Price)
	inv.Stock = intOrZero(in.Stock)
	inv.Income = intOrZero(in.Income)
	inv.OtherIncome = intOrZero(in.OtherIncome)
	inv.TotalStock = intOrZero(in.TotalStock)
	inv.PhysicalStock = intOrZero(in.PhysicalStock)
	inv.Difference = intOrZero(in.Difference)
}

func applyInventoryUpdate(inv *entity.Inventory, in dto.UpdateInventoryRequest) {
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			inv.Name = name
		}
	}
	if in.Ranking != nil {
		inv.Ranking = in.Ranking
	}
	if in.Observation != nil {
		inv.Observation = in.Observation
	}
	if in.Price != nil {
		inv.Price = *in.Price
	}
	if in.Stock != nil {
		inv.Stock = *in.Stock
	}
	if in.Income != nil {
		inv.Income = *in.Income
	}
	if in.OtherIncome != nil {
		inv.OtherIncome = *in.OtherIncome
	}
	if in.TotalStock != nil {
		inv.TotalStock = *in.TotalStock
	}
	if in.PhysicalStock != nil {
		inv.PhysicalStock = *in.PhysicalStock
	}
	if in.Difference != nil {
		inv.Difference = *in.Difference
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func toInventoryResponse(inv *entity.Inventory) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:            inv.ID,
		Name:          inv.Name,
		Ranking:       inv.Ranking,
		Observation:   inv.Observation,
		Price:         inv.Price,
		Stock:         inv.Stock,
		Income:        inv.Income,
		OtherIncome:   inv.OtherIncome,
		TotalStock:    inv.TotalStock,
		PhysicalStock: inv.PhysicalStock,
		Difference:    inv.Difference,
	}
}
