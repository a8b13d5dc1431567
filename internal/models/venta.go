package models

import (
	"time"
)

// Estados de una venta
const (
	EstadoPendiente = "PENDIENTE"
	EstadoParcial   = "PARCIAL"
	EstadoPagado    = "PAGADO"
)

// Venta representa una venta a un cliente
type Venta struct {
	ID            int       `json:"id" db:"id"`
	ClienteID     int       `json:"cliente_id" db:"cliente_id"`
	FechaVenta    time.Time `json:"fecha_venta" db:"fecha_venta"`
	Estado        string    `json:"estado" db:"estado"`
	Observaciones string    `json:"observaciones" db:"observaciones"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// DetalleVenta representa una línea de una venta
type DetalleVenta struct {
	ID             int     `json:"id" db:"id"`
	VentaID        int     `json:"venta_id" db:"venta_id"`
	ArticuloID     int     `json:"articulo_id" db:"articulo_id"`
	Cantidad       int     `json:"cantidad" db:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario" db:"precio_unitario"`
	Subtotal       float64 `json:"subtotal" db:"subtotal"`

	// Datos del artículo cuando la consulta los incluye
	ArticuloNombre *string `json:"articulo_nombre,omitempty" db:"articulo_nombre"`
	ArticuloCodigo *string `json:"articulo_codigo,omitempty" db:"articulo_codigo"`
}

// VentaConDetalles agrupa una venta con su cliente, detalles y cobros
type VentaConDetalles struct {
	Venta
	Cliente  *Cliente       `json:"cliente,omitempty"`
	Detalles []DetalleVenta `json:"detalles_venta"`
	Cobros   []Cobro        `json:"cobros"`
}

// Total suma los subtotales de los detalles
func (v *VentaConDetalles) Total() float64 {
	var total float64
	for _, det := range v.Detalles {
		total += det.Subtotal
	}
	return total
}

// TotalCobrado suma monto pagado más pago de delivery de cada cobro
func (v *VentaConDetalles) TotalCobrado() float64 {
	var total float64
	for _, cobro := range v.Cobros {
		total += cobro.MontoPagado + cobro.PagoDelivery
	}
	return total
}

// CalcularEstado proyecta el estado de una venta a partir de lo cobrado
// frente al total: PENDIENTE si no hay cobros, PARCIAL si cubren parte,
// PAGADO si cubren el total o más.
func CalcularEstado(cobrado, total float64) string {
	switch {
	case cobrado <= 0:
		return EstadoPendiente
	case cobrado < total:
		return EstadoParcial
	default:
		return EstadoPagado
	}
}

// ProductoVendido es el registro histórico de un detalle de venta.
// Se crea junto con la venta y mantiene su propio estado.
type ProductoVendido struct {
	ID             int        `json:"id" db:"id"`
	ArticuloID     int        `json:"articulo_id" db:"articulo_id"`
	VentaID        int        `json:"venta_id" db:"venta_id"`
	Cantidad       int        `json:"cantidad" db:"cantidad"`
	PrecioUnitario float64    `json:"precio_unitario" db:"precio_unitario"`
	Subtotal       float64    `json:"subtotal" db:"subtotal"`
	FechaVenta     time.Time  `json:"fecha_venta" db:"fecha_venta"`
	FechaPago      *time.Time `json:"fecha_pago,omitempty" db:"fecha_pago"`
	Estado         string     `json:"estado" db:"estado"`
}

// Estados de un producto vendido
const (
	EstadoVendido        = "VENDIDO"
	EstadoProductoPagado = "PAGADO"
)
