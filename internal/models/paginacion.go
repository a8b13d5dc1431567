package models

// Paginacion describe una página solicitada sobre un listado
type Paginacion struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NuevaPaginacion normaliza página y límite (página mínima 1, límite por
// defecto 10)
func NuevaPaginacion(page, limit int) Paginacion {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return Paginacion{Page: page, Limit: limit}
}

// Offset retorna el desplazamiento inicial de la página
func (p Paginacion) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages calcula el número de páginas para un total de filas
func (p Paginacion) TotalPages(totalCount int) int {
	if totalCount <= 0 {
		return 0
	}
	pages := totalCount / p.Limit
	if totalCount%p.Limit != 0 {
		pages++
	}
	return pages
}

// PaginatedResult resultado paginado genérico con conteo exacto
type PaginatedResult[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}
