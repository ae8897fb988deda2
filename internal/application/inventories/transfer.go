package inventories

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/application/exporter"
	"github.com/auditoriapp/auditoria-api/internal/application/importer"
	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// ImportSpreadsheet vuelca una planilla de inventario sobre el local.
// En modo anexado las filas se agrupan por sub_area; en modo macheo se
// requiere el área destino y cada fila se machea por nombre. El lote
// corre en una transacción y los errores por fila no lo abortan.
func (uc *UseCase) ImportSpreadsheet(ctx context.Context, actor auth.Actor, localID int64, areaID *int64, mode importer.Mode, records []map[string]string) (*dto.ImportResponse, error) {
	if err := uc.perms.MustBeSupervisorOrAdmin(actor); err != nil {
		return nil, err
	}
	if err := uc.perms.EnsureLocalAccess(ctx, actor, localID); err != nil {
		return nil, err
	}
	if mode != importer.ModeAppend && mode != importer.ModeMatch {
		return nil, domain.ErrInvalidInput
	}
	rows := importer.ParseRows(records)
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var targetArea int64
	if mode == importer.ModeMatch {
		if areaID == nil {
			return nil, domain.ErrInvalidInput
		}
		area, err := uc.areas.GetByLocal(ctx, *areaID, localID)
		if err != nil {
			return nil, err
		}
		if area == nil {
			return nil, domain.ErrNotFound
		}
		targetArea = area.ID
	}

	var sum importer.Summary
	err := uc.tx.RunInventories(ctx, func(areas repository.AreaRepository, invs repository.InventoryRepository) error {
		im := importer.NewInventoryImporter(areas, invs)
		switch mode {
		case importer.ModeAppend:
			sum = im.AppendAll(ctx, localID, rows)
		case importer.ModeMatch:
			sum = im.MatchByName(ctx, targetArea, rows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("local_id", localID).
		Str("mode", string(mode)).
		Int("filas", len(rows)).
		Int("errores", len(sum.Errors)).
		Msg("import de inventario procesado")

	return &dto.ImportResponse{
		Message: "Import procesado",
		Summary: map[string]int{
			"created":       sum.Created,
			"updated":       sum.Updated,
			"areas_created": sum.AreasCreated,
			"items_added":   sum.ItemsAdded,
		},
		Errors: sum.Errors,
	}, nil
}

// ExportSheet arma la planilla de inventario del local completo,
// ordenada por nombre de item.
func (uc *UseCase) ExportSheet(ctx context.Context, actor auth.Actor, localID int64) (*exporter.Sheet, error) {
	if err := uc.perms.EnsureLocalAccess(ctx, actor, localID); err != nil {
		return nil, err
	}
	rows, _, err := uc.invs.List(ctx, repository.InventoryFilter{LocalID: &localID})
	if err != nil {
		return nil, err
	}
	sheet := exporter.InventorySheet(rows)
	return &sheet, nil
}
