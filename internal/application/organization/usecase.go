package organization

import (
	"context"
	"strings"
	"time"

	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
)

// UseCase casos de uso del árbol Company -> Local. Las altas son solo
// ADMIN por ruta; aquí no hay chequeo de rol adicional.
type UseCase struct {
	companies repository.CompanyRepository
	locals    repository.LocalRepository
}

// NewUseCase construye el caso de uso de organización.
func NewUseCase(companies repository.CompanyRepository, locals repository.LocalRepository) *UseCase {
	return &UseCase{companies: companies, locals: locals}
}

// CreateCompany registra una empresa.
func (uc *UseCase) CreateCompany(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Company{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CompanyResponse{ID: c.ID, Name: c.Name}, nil
}

// ListCompanies lista todas las empresas.
func (uc *UseCase) ListCompanies(ctx context.Context) ([]dto.CompanyResponse, error) {
	companies, err := uc.companies.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, dto.CompanyResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// CreateLocal registra un local bajo una empresa existente. El nombre es
// único dentro de la empresa (constraint de base).
func (uc *UseCase) CreateLocal(ctx context.Context, companyID int64, in dto.CreateLocalRequest) (*dto.LocalResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	l := &entity.Local{CompanyID: companyID, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.locals.Create(ctx, l); err != nil {
		return nil, err
	}
	return &dto.LocalResponse{ID: l.ID, CompanyID: l.CompanyID, Name: l.Name}, nil
}

// ListLocals lista los locales de una empresa.
func (uc *UseCase) ListLocals(ctx context.Context, companyID int64) ([]dto.LocalResponse, error) {
	locals, err := uc.locals.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocalResponse, 0, len(locals))
	for _, l := range locals {
		out = append(out, dto.LocalResponse{ID: l.ID, CompanyID: l.CompanyID, Name: l.Name})
	}
	return out, nil
}
