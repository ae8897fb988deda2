package dto

// CreateCompanyRequest alta de empresa (solo ADMIN).
type CreateCompanyRequest struct {
	Name string `json:"name"`
}

// CompanyResponse proyección JSON de una empresa.
type CompanyResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateLocalRequest alta de local dentro de una empresa (solo ADMIN).
type CreateLocalRequest struct {
	Name string `json:"name"`
}

// LocalResponse proyección JSON de un local.
type LocalResponse struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`
}
