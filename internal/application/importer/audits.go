package importer

import (
	"context"
	"fmt"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// Mode política de reconciliación de un import.
type Mode string

const (
	// ModeAppend agrupa por nombre de categoría/área, busca o crea el
	// grupo y SIEMPRE crea filas nuevas (sin dedup).
	ModeAppend Mode = "append"
	// ModeMatch machea cada fila por nombre exacto dentro del grupo:
	// match -> update en sitio, sin match -> create.
	ModeMatch Mode = "match"
)

// AuditImporter reconcilia filas de planilla contra las categorías e
// items de una auditoría. Corre dentro de la transacción del caso de
// uso: los errores por fila se acumulan sin abortar el lote.
type AuditImporter struct {
	cats  repository.CategoryRepository
	items repository.ItemRepository
}

// NewAuditImporter construye el importador con repos (atados a la tx).
func NewAuditImporter(cats repository.CategoryRepository, items repository.ItemRepository) *AuditImporter {
	return &AuditImporter{cats: cats, items: items}
}

// AppendAll aplica la política de anexado: agrupa por la columna
// categoria, busca o crea la categoría por nombre exacto dentro de la
// auditoría y crea un item nuevo por cada fila, aunque ya exista uno con
// el mismo nombre. El ranking sale del texto de la columna ranking.
func (im *AuditImporter) AppendAll(ctx context.Context, auditRowID int64, rows []Row) Summary {
	var sum Summary
	seen := map[string]*entity.Category{}
	for _, row := range rows {
		if row.Name == "" {
			continue // fila sin item: se salta en silencio
		}
		if err := im.appendRow(ctx, auditRowID, row, seen, &sum); err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("Fila %d: %v", row.N, err))
		}
	}
	return sum
}

func (im *AuditImporter) appendRow(ctx context.Context, auditRowID int64, row Row, seen map[string]*entity.Category, sum *Summary) error {
	if row.Category == "" {
		return fmt.Errorf("no se ha definido una categoría para este item")
	}
	cat, ok := seen[row.Category]
	if !ok {
		var created bool
		var err error
		cat, created, err = im.cats.FindOrCreate(ctx, auditRowID, row.Category)
		if err != nil {
			return err
		}
		if created {
			sum.CategoriesCreated++
		}
		seen[row.Category] = cat
	}
	ranking := RankingFromText(row.RankingText)
	it := itemFromRow(row)
	it.Ranking = &ranking
	if err := im.items.Create(ctx, cat.ID, it); err != nil {
		return err
	}
	sum.ItemsAdded++
	return nil
}

// MatchByName aplica la política de macheo sobre una auditoría ya
// resuelta (y abierta): la columna categoria actualiza la categoría
// corriente, y cada item se machea por nombre exacto recortado dentro de
// ella. Match -> update, sin match -> create. El ranking sale de las
// columnas marcadas; sin marcas queda sin fijar.
func (im *AuditImporter) MatchByName(ctx context.Context, auditRowID int64, rows []Row) Summary {
	var sum Summary
	var current *entity.Category
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		if err := im.matchRow(ctx, auditRowID, row, &current, &sum); err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("Fila %d: %v", row.N, err))
		}
	}
	return sum
}

func (im *AuditImporter) matchRow(ctx context.Context, auditRowID int64, row Row, current **entity.Category, sum *Summary) error {
	if row.Category != "" {
		cat, _, err := im.cats.FindOrCreate(ctx, auditRowID, row.Category)
		if err != nil {
			return err
		}
		*current = cat
	}
	if *current == nil {
		return fmt.Errorf("no se ha definido una categoría para este item")
	}
	cat := *current

	it := itemFromRow(row)
	it.Ranking = RankingFromMarks(row)

	existing, err := im.items.FindByName(ctx, cat.ID, row.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		it.ID = existing.ID
		if err := im.items.Update(ctx, it); err != nil {
			return err
		}
		sum.Updated++
		return nil
	}
	if err := im.items.Create(ctx, cat.ID, it); err != nil {
		return err
	}
	sum.Created++
	return nil
}

func itemFromRow(row Row) *entity.Item {
	var obs *string
	if row.Observation != "" {
		o := row.Observation
		obs = &o
	}
	return &entity.Item{
		Name:          row.Name,
		Observation:   obs,
		Price:         row.Price,
		Stock:         row.Stock,
		Income:        row.Income,
		OtherIncome:   row.OtherIncome,
		TotalStock:    row.TotalStock,
		PhysicalStock: row.PhysicalStock,
		Difference:    row.Difference,
	}
}
