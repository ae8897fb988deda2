package entity

import "time"

// Company es la raíz del árbol de propiedad Company -> Local -> User.
type Company struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Local es un local físico (tienda) de una Company.
type Local struct {
	ID        int64
	CompanyID int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
