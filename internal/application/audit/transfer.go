package audit

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/application/exporter"
	"github.com/auditoriapp/auditoria-api/internal/application/importer"
	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// ImportSpreadsheet vuelca una planilla sobre la auditoría abierta del
// local (se crea una si no hay). Todo el lote corre en una transacción;
// los errores por fila se acumulan en la respuesta sin abortar el resto.
func (uc *UseCase) ImportSpreadsheet(ctx context.Context, actor auth.Actor, localID int64, mode importer.Mode, records []map[string]string) (*dto.ImportResponse, error) {
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

	var sum importer.Summary
	err := uc.tx.RunAudit(ctx, func(audits repository.AuditRepository, cats repository.CategoryRepository, items repository.ItemRepository) error {
		aud, err := uc.openAuditForLocal(ctx, audits, localID, actor.ID)
		if err != nil {
			return err
		}
		im := importer.NewAuditImporter(cats, items)
		switch mode {
		case importer.ModeAppend:
			sum = im.AppendAll(ctx, aud.RowID(), rows)
		case importer.ModeMatch:
			sum = im.MatchByName(ctx, aud.RowID(), rows)
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
		Msg("import de auditoría procesado")

	return &dto.ImportResponse{
		Message: "Import procesado",
		Summary: map[string]int{
			"created":            sum.Created,
			"updated":            sum.Updated,
			"categories_created": sum.CategoriesCreated,
			"items_added":        sum.ItemsAdded,
		},
		Errors: sum.Errors,
	}, nil
}

// ExportSheet arma la planilla de la auditoría más reciente del local,
// ordenada por (categoría, nombre de item).
func (uc *UseCase) ExportSheet(ctx context.Context, actor auth.Actor, localID int64) (*exporter.Sheet, error) {
	if err := uc.perms.EnsureLocalAccess(ctx, actor, localID); err != nil {
		return nil, err
	}
	aud, err := uc.audits.LatestByLocal(ctx, localID)
	if err != nil {
		return nil, err
	}
	if aud == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.items.ListByAudit(ctx, aud.RowID())
	if err != nil {
		return nil, err
	}
	sheet := exporter.AuditSheet(rows)
	return &sheet, nil
}
