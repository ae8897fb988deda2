package dto

// InventoryInput entrada de item de inventario. Con ID actualiza; sin ID crea.
type InventoryInput struct {
	ID            *int64  `json:"id"`
	Name          string  `json:"name"`
	Ranking       *int    `json:"ranking"`
	Observation   *string `json:"observation"`
	Price         *int    `json:"price"`
	Stock         *int    `json:"stock"`
	Income        *int    `json:"income"`
	OtherIncome   *int    `json:"other_income"`
	TotalStock    *int    `json:"total_stock"`
	PhysicalStock *int    `json:"physical_stock"`
	Difference    *int    `json:"difference"`
}

// AddAreaRequest alta de área de inventario con items opcionales.
type AddAreaRequest struct {
	Name        string           `json:"name"`
	Inventories []InventoryInput `json:"inventories"`
}

// AddInventoriesRequest upsert masivo de inventories en un área existente.
type AddInventoriesRequest struct {
	Inventories []InventoryInput `json:"inventories"`
}

// RenameAreaRequest cambio de nombre de área.
type RenameAreaRequest struct {
	Name string `json:"name"`
}

// UpdateInventoryRequest actualización parcial (solo campos presentes).
type UpdateInventoryRequest struct {
	Name          *string `json:"name"`
	Ranking       *int    `json:"ranking"`
	Observation   *string `json:"observation"`
	Price         *int    `json:"price"`
	Stock         *int    `json:"stock"`
	Income        *int    `json:"income"`
	OtherIncome   *int    `json:"other_income"`
	TotalStock    *int    `json:"total_stock"`
	PhysicalStock *int    `json:"physical_stock"`
	Difference    *int    `json:"difference"`
}

// InventoryResponse proyección JSON de un inventory.
type InventoryResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Ranking       *int    `json:"ranking"`
	Observation   *string `json:"observation"`
	Price         int     `json:"price"`
	Stock         int     `json:"stock"`
	Income        int     `json:"income"`
	OtherIncome   int     `json:"other_income"`
	TotalStock    int     `json:"total_stock"`
	PhysicalStock int     `json:"physical_stock"`
	Difference    int     `json:"difference"`
}

// EntityRef referencia corta id/nombre.
type EntityRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// InventoryWithContextResponse inventory con su contexto área/local/company.
type InventoryWithContextResponse struct {
	InventoryResponse
	Area    EntityRef `json:"area"`
	Local   EntityRef `json:"local"`
	Company EntityRef `json:"company"`
}

// InventoryListResponse listado global paginado de inventories.
type InventoryListResponse struct {
	Data       []InventoryWithContextResponse `json:"data"`
	Pagination Pagination                     `json:"pagination"`
}

// AreaResponse área con conteo de items.
type AreaResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	LocalID          int64  `json:"local_id"`
	InventoriesCount int    `json:"inventories_count"`
}

// AreaWithInventoriesResponse área con sus items.
type AreaWithInventoriesResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Inventories []InventoryResponse `json:"inventories"`
}
