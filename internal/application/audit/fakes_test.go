package audit_test

import (
	"context"

	appaudit "github.com/auditoriapp/auditoria-api/internal/application/audit"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// world arma el juego completo de fakes en memoria. Implementa TxRunner
// pasando los mismos fakes: no hay transacción real que aislar.
type world struct {
	audits      *fakeAudits
	cats        *fakeCats
	items       *fakeItems
	locals      *fakeLocals
	assignments *fakeAssignments
}

var _ appaudit.TxRunner = (*world)(nil)

func newWorld() *world {
	w := &world{
		audits:      &fakeAudits{},
		items:       &fakeItems{},
		locals:      &fakeLocals{},
		assignments: &fakeAssignments{pairs: map[[2]int64]bool{}},
	}
	w.cats = &fakeCats{audits: w.audits}
	return w
}

func (w *world) RunAudit(ctx context.Context, fn func(repository.AuditRepository, repository.CategoryRepository, repository.ItemRepository) error) error {
	return fn(w.audits, w.cats, w.items)
}

// fakeAudits guarda agregados vivos; Save asigna ids de fila y de
// categoría como haría la base.
type fakeAudits struct {
	nextRowID int64
	nextCatID int64
	store     []*entity.Audit
}

func (f *fakeAudits) Save(_ context.Context, a *entity.Audit) error {
	if a.RowID() == 0 {
		f.nextRowID++
		a.SetRowID(f.nextRowID)
		f.store = append(f.store, a)
	}
	for _, c := range a.Categories() {
		if c.ID == 0 {
			f.nextCatID++
			c.ID = f.nextCatID
		}
	}
	return nil
}

func (f *fakeAudits) FindByUUID(_ context.Context, id string) (*entity.Audit, error) {
	for _, a := range f.store {
		if a.ID() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAudits) FindByRowID(_ context.Context, rowID int64) (*entity.Audit, error) {
	for _, a := range f.store {
		if a.RowID() == rowID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAudits) LatestByLocal(_ context.Context, localID int64) (*entity.Audit, error) {
	for i := len(f.store) - 1; i >= 0; i-- {
		if f.store[i].LocalID() == localID {
			return f.store[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAudits) LatestOpenByLocal(_ context.Context, localID int64) (*entity.Audit, error) {
	for i := len(f.store) - 1; i >= 0; i-- {
		if f.store[i].LocalID() == localID && !f.store[i].IsClosed() {
			return f.store[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAudits) List(context.Context, repository.AuditFilter) ([]repository.AuditSummary, int, error) {
	return nil, 0, nil
}

// fakeCats resuelve categorías escaneando los agregados guardados.
type fakeCats struct {
	audits *fakeAudits
}

func (f *fakeCats) find(categoryID int64) (*entity.Category, int64) {
	for _, a := range f.audits.store {
		for _, c := range a.Categories() {
			if c.ID == categoryID {
				return c, a.RowID()
			}
		}
	}
	return nil, 0
}

func (f *fakeCats) GetByAudit(_ context.Context, categoryID, auditRowID int64) (*entity.Category, error) {
	c, rowID := f.find(categoryID)
	if c == nil || rowID != auditRowID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCats) GetWithAudit(_ context.Context, categoryID int64) (*entity.Category, int64, error) {
	c, rowID := f.find(categoryID)
	return c, rowID, nil
}

func (f *fakeCats) GetWithItems(_ context.Context, categoryID int64) (*entity.Category, error) {
	c, _ := f.find(categoryID)
	return c, nil
}

func (f *fakeCats) FindOrCreate(_ context.Context, _ int64, name string) (*entity.Category, bool, error) {
	return &entity.Category{Name: name}, true, nil
}

func (f *fakeCats) Rename(_ context.Context, categoryID int64, name string) error {
	if c, _ := f.find(categoryID); c != nil {
		c.Name = name
	}
	return nil
}

func (f *fakeCats) Delete(context.Context, int64) error { return nil }

func (f *fakeCats) ListByAudit(_ context.Context, auditRowID int64) ([]*entity.Category, error) {
	for _, a := range f.audits.store {
		if a.RowID() == auditRowID {
			return a.Categories(), nil
		}
	}
	return nil, nil
}

type fakeItems struct{}

func (f *fakeItems) GetByCategory(context.Context, int64, int64) (*entity.Item, error) {
	return nil, nil
}
func (f *fakeItems) GetScoped(context.Context, int64, int64, int64) (*entity.Item, error) {
	return nil, nil
}
func (f *fakeItems) FindByName(context.Context, int64, string) (*entity.Item, error) {
	return nil, nil
}
func (f *fakeItems) Create(context.Context, int64, *entity.Item) error { return nil }
func (f *fakeItems) Update(context.Context, *entity.Item) error        { return nil }
func (f *fakeItems) Delete(context.Context, int64) error               { return nil }
func (f *fakeItems) ListByAudit(context.Context, int64) ([]repository.ItemWithCategory, error) {
	return nil, nil
}
func (f *fakeItems) List(context.Context, repository.ItemFilter) ([]repository.ItemWithCategory, error) {
	return nil, nil
}

type fakeLocals struct {
	locals []*entity.Local
}

func (f *fakeLocals) add(id int64, name string) {
	f.locals = append(f.locals, &entity.Local{ID: id, Name: name})
}

func (f *fakeLocals) Create(_ context.Context, l *entity.Local) error {
	f.locals = append(f.locals, l)
	return nil
}

func (f *fakeLocals) GetByID(_ context.Context, id int64) (*entity.Local, error) {
	for _, l := range f.locals {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLocals) ListByCompany(_ context.Context, companyID int64) ([]*entity.Local, error) {
	var out []*entity.Local
	for _, l := range f.locals {
		if l.CompanyID == companyID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeAssignments struct {
	pairs map[[2]int64]bool
}

func (f *fakeAssignments) add(userID, localID int64) {
	f.pairs[[2]int64{userID, localID}] = true
}

func (f *fakeAssignments) UserBelongsToLocal(_ context.Context, userID, localID int64) (bool, error) {
	return f.pairs[[2]int64{userID, localID}], nil
}

func (f *fakeAssignments) Assign(_ context.Context, userID, localID int64) error {
	f.add(userID, localID)
	return nil
}

func (f *fakeAssignments) Replace(_ context.Context, userID int64, localIDs []int64) error {
	for k := range f.pairs {
		if k[0] == userID {
			delete(f.pairs, k)
		}
	}
	for _, id := range localIDs {
		f.add(userID, id)
	}
	return nil
}
