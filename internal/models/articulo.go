package models

import (
	"time"
)

// Articulo representa un artículo del inventario
type Articulo struct {
	ID             int       `json:"id" db:"id"`
	Codigo         string    `json:"codigo" db:"codigo"`
	Nombre         string    `json:"nombre" db:"nombre"`
	CantidadStock  int       `json:"cantidad_stock" db:"cantidad_stock"`
	CantidadMinima int       `json:"cantidad_minima" db:"cantidad_minima"`
	PrecioCosto    float64   `json:"precio_costo" db:"precio_costo"`
	PrecioUnitario float64   `json:"precio_unitario" db:"precio_unitario"`
	Categoria      *string   `json:"categoria" db:"categoria"`
	Descripcion    *string   `json:"descripcion" db:"descripcion"`
	FotoURL        *string   `json:"foto_url" db:"foto_url"`
	Enlace         *string   `json:"enlace" db:"enlace"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// MargenGanancia calcula el margen porcentual sobre el costo.
// Retorna 0 si el precio de costo es 0 para evitar división por cero.
func (a *Articulo) MargenGanancia() float64 {
	if a.PrecioCosto <= 0 {
		return 0
	}
	return (a.PrecioUnitario - a.PrecioCosto) / a.PrecioCosto * 100
}

// StockBajo indica si el artículo está en o bajo su cantidad mínima
func (a *Articulo) StockBajo() bool {
	return a.CantidadStock <= a.CantidadMinima
}
