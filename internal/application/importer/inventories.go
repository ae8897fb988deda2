package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// InventoryImporter reconcilia filas de planilla contra las áreas e
// items de inventario. Misma disciplina que AuditImporter: corre dentro
// de la transacción del caso de uso y acumula errores por fila.
type InventoryImporter struct {
	areas repository.AreaRepository
	invs  repository.InventoryRepository
}

// NewInventoryImporter construye el importador con repos (atados a la tx).
func NewInventoryImporter(areas repository.AreaRepository, invs repository.InventoryRepository) *InventoryImporter {
	return &InventoryImporter{areas: areas, invs: invs}
}

// AppendAll aplica la política de anexado sobre un local: agrupa por la
// columna sub_area, busca o crea el área por nombre exacto y crea un
// inventory nuevo por cada fila, aunque ya exista uno con el mismo
// nombre. El ranking queda nulo (este formato no lo trae).
func (im *InventoryImporter) AppendAll(ctx context.Context, localID int64, rows []Row) Summary {
	var sum Summary
	for _, group := range groupBySubArea(rows) {
		if err := im.appendArea(ctx, localID, group.name, group.rows, &sum); err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("Error en área '%s': %v", group.name, err))
		}
	}
	return sum
}

type areaGroup struct {
	name string
	rows []Row
}

// groupBySubArea agrupa preservando el orden de aparición; filas sin
// sub_area se saltan en silencio.
func groupBySubArea(rows []Row) []areaGroup {
	var groups []areaGroup
	index := map[string]int{}
	for _, row := range rows {
		if row.SubArea == "" {
			continue
		}
		i, ok := index[row.SubArea]
		if !ok {
			i = len(groups)
			index[row.SubArea] = i
			groups = append(groups, areaGroup{name: row.SubArea})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	return groups
}

func (im *InventoryImporter) appendArea(ctx context.Context, localID int64, areaName string, rows []Row, sum *Summary) error {
	area, err := im.areas.FindByName(ctx, localID, areaName)
	if err != nil {
		return err
	}
	if area == nil {
		area = &entity.InventoriesArea{
			LocalID:      localID,
			Name:         areaName,
			CreationDate: time.Now(),
		}
		if err := im.areas.Create(ctx, area); err != nil {
			return err
		}
		sum.AreasCreated++
	}

	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		inv := inventoryFromRow(row)
		inv.AreaID = area.ID
		if err := im.invs.Create(ctx, inv); err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("Fila %d: %v", row.N, err))
			continue
		}
		sum.ItemsAdded++
	}
	return nil
}

// MatchByName aplica la política de macheo sobre un área ya resuelta:
// cada fila se machea por nombre exacto recortado; match -> update,
// sin match -> create. El ranking sale de las columnas marcadas y queda
// nulo si no hay marcas.
func (im *InventoryImporter) MatchByName(ctx context.Context, areaID int64, rows []Row) Summary {
	var sum Summary
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		if err := im.matchRow(ctx, areaID, row, &sum); err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("Fila %d: %v", row.N, err))
		}
	}
	return sum
}

func (im *InventoryImporter) matchRow(ctx context.Context, areaID int64, row Row, sum *Summary) error {
	inv := inventoryFromRow(row)
	inv.AreaID = areaID
	inv.Ranking = RankingFromMarks(row)

	existing, err := im.invs.FindByName(ctx, areaID, row.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		inv.ID = existing.ID
		inv.CreationDate = existing.CreationDate
		if err := im.invs.Update(ctx, inv); err != nil {
			return err
		}
		sum.Updated++
		return nil
	}
	if err := im.invs.Create(ctx, inv); err != nil {
		return err
	}
	sum.Created++
	return nil
}

func inventoryFromRow(row Row) *entity.Inventory {
	var obs *string
	if row.Observation != "" {
		o := row.Observation
		obs = &o
	}
	return &entity.Inventory{
		Name:          row.Name,
		Observation:   obs,
		Price:         row.Price,
		Stock:         row.Stock,
		Income:        row.Income,
		OtherIncome:   row.OtherIncome,
		TotalStock:    row.TotalStock,
		PhysicalStock: row.PhysicalStock,
		Difference:    row.Difference,
		CreationDate:  time.Now(),
	}
}
