package dto

// ErrorResponse cuerpo de error HTTP. Errors trae detalle por campo en
// fallos de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// OkResponse respuesta mínima de éxito.
type OkResponse struct {
	Ok bool `json:"ok"`
}

// Pagination metadatos de página en respuestas de listado.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// NewPagination calcula los metadatos a partir de página, tamaño y total.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 15
	}
	if page <= 0 {
		page = 1
	}
	last := (total + perPage - 1) / perPage
	if last == 0 {
		last = 1
	}
	from := (page-1)*perPage + 1
	to := page * perPage
	if to > total {
		to = total
	}
	if total == 0 {
		from = 0
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    last,
		From:        from,
		To:          to,
	}
}
