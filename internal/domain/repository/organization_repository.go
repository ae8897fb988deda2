package repository

import (
	"context"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para empresas (DIP).
type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
}

// LocalRepository define el puerto de persistencia para locales (DIP).
type LocalRepository interface {
	Create(ctx context.Context, l *entity.Local) error
	GetByID(ctx context.Context, id int64) (*entity.Local, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Local, error)
}
