package dto

// Formatos de fecha que espera el cliente (heredados del front existente).
const (
	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04:05"
)

// ItemInput entrada de item para agregar/actualizar en bloque.
// Con ID actualiza en sitio; sin ID crea.
type ItemInput struct {
	ID            *int64  `json:"id"`
	Name          string  `json:"name"`
	Ranking       *int    `json:"ranking"` // 0=no cumple, 1=en proceso, 2=cumple
	Observation   *string `json:"observation"`
	Price         *int    `json:"price"`
	Stock         *int    `json:"stock"`
	Income        *int    `json:"income"`
	OtherIncome   *int    `json:"other_income"`
	TotalStock    *int    `json:"total_stock"`
	PhysicalStock *int    `json:"physical_stock"`
	Difference    *int    `json:"difference"`
	Column15      *int    `json:"column_15"`
}

// AddCategoryRequest alta de categoría con items opcionales.
type AddCategoryRequest struct {
	Name  string      `json:"name"`
	Items []ItemInput `json:"items"`
}

// AddItemsRequest upsert masivo de items en una categoría existente.
type AddItemsRequest struct {
	Items []ItemInput `json:"items"`
}

// RenameCategoryRequest cambio de nombre de categoría.
type RenameCategoryRequest struct {
	Name string `json:"name"`
}

// UpdateItemRequest actualización parcial de un item (solo campos presentes).
type UpdateItemRequest struct {
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
	Column15      *int    `json:"column_15"`
}

// ItemResponse proyección JSON de un item.
type ItemResponse struct {
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
	Column15      int     `json:"column_15"`
}

// CategoryResponse categoría con sus items.
type CategoryResponse struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Items []ItemResponse `json:"items"`
}

// AuditResponse detalle de auditoría con categorías anidadas.
type AuditResponse struct {
	UUID         string             `json:"uuid"`
	LocalID      int64              `json:"local_id"`
	LocalName    string             `json:"local_name,omitempty"`
	SupervisorID int64              `json:"supervisor_id"`
	UserID       int64              `json:"user_id"`
	CreationDate string             `json:"creation_date"`
	ClosedAt     *string            `json:"closed_at"`
	Status       string             `json:"status"` // open | closed
	Score        int                `json:"score"`
	Categories   []CategoryResponse `json:"categories"`
}

// AuditSummaryResponse fila de listado de auditorías.
type AuditSummaryResponse struct {
	ID             int64   `json:"id"`
	UUID           string  `json:"uuid"`
	LocalID        int64   `json:"local_id"`
	LocalName      string  `json:"local_name,omitempty"`
	SupervisorID   int64   `json:"supervisor_id"`
	SupervisorName string  `json:"supervisor_name,omitempty"`
	UserID         int64   `json:"user_id"`
	CreationDate   string  `json:"creation_date"`
	ClosedAt       *string `json:"closed_at"`
	Status         string  `json:"status"`
	Score          int     `json:"score"`
}

// AuditListResponse listado de auditorías más los locales filtrados.
type AuditListResponse struct {
	Audits     []AuditSummaryResponse `json:"audits"`
	Locals     []LocalRef             `json:"locals"`
	Pagination Pagination             `json:"pagination"`
}

// LocalRef referencia corta a un local con su empresa.
type LocalRef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name,omitempty"`
}

// EnumEntry par clave/valor para enums expuestos al front.
type EnumEntry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Label string `json:"label,omitempty"`
}

// EnumsResponse enums de estado y ranking.
type EnumsResponse struct {
	Status  []EnumEntry `json:"status"`
	Ranking []EnumEntry `json:"ranking"`
}

// ImportResponse resultado de un import de planilla.
type ImportResponse struct {
	Message string         `json:"message"`
	Summary map[string]int `json:"summary"`
	Errors  []string       `json:"errors,omitempty"`
}
