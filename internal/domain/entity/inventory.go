package entity

import "time"

// InventoriesArea es una zona de conteo de stock dentro de un local.
// A diferencia de Category no exige nombre único y no tiene agregado:
// sus items se mutan directamente vía repositorio.
type InventoriesArea struct {
	ID           int64
	LocalID      int64
	Name         string
	CreationDate time.Time
	UpdateDate   *time.Time
}

// Inventory es una línea de conteo de stock dentro de un área. Misma
// forma de contadores que Item, sin la columna extra y con ranking
// opcional.
type Inventory struct {
	ID            int64
	AreaID        int64
	Name          string
	Ranking       *int // nil = sin ranking
	Observation   *string
	Price         int
	Stock         int
	Income        int
	OtherIncome   int
	TotalStock    int
	PhysicalStock int
	Difference    int
	CreationDate  time.Time
	UpdateDate    *time.Time
}
