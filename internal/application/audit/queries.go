package audit

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// GetByLocal devuelve la auditoría más reciente del local con sus
// categorías. Un local sin auditorías responde la estructura vacía (el
// front la usa para pintar la pantalla inicial), no 404.
func (uc *UseCase) GetByLocal(ctx context.Context, actor auth.Actor, localID int64) (*dto.AuditResponse, error) {
	if err := uc.perms.EnsureLocalAccess(ctx, actor, localID); err != nil {
		return nil, err
	}
	aud, err := uc.audits.LatestByLocal(ctx, localID)
	if err != nil {
		return nil, err
	}
	if aud == nil {
		return &dto.AuditResponse{
			LocalID:    localID,
			Status:     "open",
			Categories: []dto.CategoryResponse{},
		}, nil
	}
	resp := uc.toAuditResponse(ctx, aud)
	return &resp, nil
}

// GetByUUID devuelve el detalle completo de una auditoría.
func (uc *UseCase) GetByUUID(ctx context.Context, actor auth.Actor, id string) (*dto.AuditResponse, error) {
	aud, err := uc.audits.FindByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if aud == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.perms.EnsureLocalAccess(ctx, actor, aud.LocalID()); err != nil {
		return nil, err
	}
	resp := uc.toAuditResponse(ctx, aud)
	return &resp, nil
}

// List lista auditorías paginadas según filtro, junto con los locales
// de la empresa filtrada (para el combo del front).
func (uc *UseCase) List(ctx context.Context, actor auth.Actor, f repository.AuditFilter, page, perPage int) (*dto.AuditListResponse, error) {
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

	summaries, total, err := uc.audits.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.AuditListResponse{
		Audits:     make([]dto.AuditSummaryResponse, 0, len(summaries)),
		Locals:     []dto.LocalRef{},
		Pagination: dto.NewPagination(page, perPage, total),
	}
	for _, s := range summaries {
		out.Audits = append(out.Audits, toSummaryResponse(s))
	}
	if f.CompanyID != nil {
		locals, err := uc.locals.ListByCompany(ctx, *f.CompanyID)
		if err != nil {
			return nil, err
		}
		for _, l := range locals {
			out.Locals = append(out.Locals, dto.LocalRef{ID: l.ID, Name: l.Name, CompanyID: l.CompanyID})
		}
	}
	return out, nil
}

// ListItems lista items globales con filtro por empresa o categoría.
func (uc *UseCase) ListItems(ctx context.Context, actor auth.Actor, f repository.ItemFilter) ([]dto.ItemResponse, error) {
	rows, err := uc.items.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toItemResponse(&r.Item))
	}
	return out, nil
}

// CategoryItems devuelve una categoría con sus items ordenados.
func (uc *UseCase) CategoryItems(ctx context.Context, actor auth.Actor, categoryID int64) (*dto.CategoryResponse, error) {
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
	full, err := uc.cats.GetWithItems(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, domain.ErrNotFound
	}
	resp := toCategoryResponse(full)
	return &resp, nil
}

// LocalCategories lista las categorías (sin items) de la auditoría más
// reciente del local. Local sin auditoría devuelve lista vacía.
func (uc *UseCase) LocalCategories(ctx context.Context, actor auth.Actor, localID int64) ([]dto.CategoryResponse, error) {
	if err := uc.perms.EnsureLocalAccess(ctx, actor, localID); err != nil {
		return nil, err
	}
	aud, err := uc.audits.LatestByLocal(ctx, localID)
	if err != nil {
		return nil, err
	}
	out := []dto.CategoryResponse{}
	if aud == nil {
		return out, nil
	}
	cats, err := uc.cats.ListByAudit(ctx, aud.RowID())
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Items: []dto.ItemResponse{}})
	}
	return out, nil
}

// Enums expone los valores de estado y ranking que consume el front.
func (uc *UseCase) Enums() dto.EnumsResponse {
	return dto.EnumsResponse{
		Status: []dto.EnumEntry{
			{Key: "open", Value: "open", Label: "Abierta"},
			{Key: "closed", Value: "closed", Label: "Cerrada"},
		},
		Ranking: []dto.EnumEntry{
			{Key: "no_cumple", Value: entity.RankingNotCompliant, Label: "No cumple"},
			{Key: "en_proceso", Value: entity.RankingInProgress, Label: "En proceso"},
			{Key: "cumple", Value: entity.RankingCompliant, Label: "Cumple"},
		},
	}
}

func (uc *UseCase) toAuditResponse(ctx context.Context, aud *entity.Audit) dto.AuditResponse {
	status := "open"
	var closedAt *string
	if aud.IsClosed() {
		status = "closed"
		s := aud.ClosedAt().Format(dto.DateTimeLayout)
		closedAt = &s
	}
	localName := ""
	if local, err := uc.locals.GetByID(ctx, aud.LocalID()); err == nil && local != nil {
		localName = local.Name
	}
	cats := make([]dto.CategoryResponse, 0, len(aud.Categories()))
	for _, c := range aud.Categories() {
		cats = append(cats, toCategoryResponse(c))
	}
	return dto.AuditResponse{
		UUID:         aud.ID(),
		LocalID:      aud.LocalID(),
		LocalName:    localName,
		SupervisorID: aud.SupervisorID(),
		UserID:       aud.CreatedBy(),
		CreationDate: aud.CreatedAt().Format(dto.DateTimeLayout),
		ClosedAt:     closedAt,
		Status:       status,
		Score:        aud.Score(),
		Categories:   cats,
	}
}

func toSummaryResponse(s repository.AuditSummary) dto.AuditSummaryResponse {
	status := "open"
	var closedAt *string
	if s.ClosedAt != nil {
		status = "closed"
		v := s.ClosedAt.Format(dto.DateTimeLayout)
		closedAt = &v
	}
	return dto.AuditSummaryResponse{
		ID:             s.ID,
		UUID:           s.UUID,
		LocalID:        s.LocalID,
		LocalName:      s.LocalName,
		SupervisorID:   s.SupervisorID,
		SupervisorName: s.SupervisorName,
		UserID:         s.UserID,
		CreationDate:   s.CreationDate.Format(dto.DateTimeLayout),
		ClosedAt:       closedAt,
		Status:         status,
		Score:          s.Score,
	}
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	items := make([]dto.ItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, toItemResponse(it))
	}
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Items: items}
}

func toItemResponse(it *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		Ranking:       it.Ranking,
		Observation:   it.Observation,
		Price:         it.Price,
		Stock:         it.Stock,
		Income:        it.Income,
		OtherIncome:   it.OtherIncome,
		TotalStock:    it.TotalStock,
		PhysicalStock: it.PhysicalStock,
		Difference:    it.Difference,
		Column15:      it.Column15,
	}
}
