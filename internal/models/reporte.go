package models

import (
	"time"
)

// VentaReporte una venta aplanada para los reportes por ciudad/cliente
type VentaReporte struct {
	ID       int            `json:"id"`
	Fecha    time.Time      `json:"fecha"`
	Estado   string         `json:"estado"`
	Detalles []DetalleVenta `json:"detalles"`
	Total    float64        `json:"total"`
}

// ClienteVentas acumulado de ventas de un cliente dentro de una ciudad
type ClienteVentas struct {
	Ventas       []VentaReporte `json:"ventas"`
	TotalCliente float64        `json:"total_cliente"`
	Cobrado      float64        `json:"cobrado"`
}

// ReporteVentas reporte de ventas agrupado ciudad → cliente
type ReporteVentas struct {
	PorCiudad map[string]map[string]*ClienteVentas `json:"por_ciudad"`
	Resumen   ResumenReporte                       `json:"resumen"`
}

// ResumenReporte totales globales del reporte de ventas
type ResumenReporte struct {
	TotalVentas      float64 `json:"total_ventas"`
	TotalCobrado     float64 `json:"total_cobrado"`
	TotalPendiente   float64 `json:"total_pendiente"`
	TotalVentasCount int     `json:"total_ventas_count"`
}

// ResumenVentas conteos y montos por estado
type ResumenVentas struct {
	TotalVentas      int     `json:"total_ventas"`
	VentasPendientes int     `json:"ventas_pendientes"`
	VentasParciales  int     `json:"ventas_parciales"`
	VentasPagadas    int     `json:"ventas_pagadas"`
	MontoTotal       float64 `json:"monto_total"`
	MontoPendiente   float64 `json:"monto_pendiente"`
	MontoParcial     float64 `json:"monto_parcial"`
	MontoPagado      float64 `json:"monto_pagado"`
}

// LiquidacionGrupo acumulado de cobros bajo una clave de agrupación
type LiquidacionGrupo struct {
	Metodo     string  `json:"metodo"`
	Tipo       string  `json:"tipo"`
	Cantidad   int     `json:"cantidad"`
	Monto      float64 `json:"monto"`
	Porcentaje float64 `json:"porcentaje"`
}

// ResumenLiquidaciones agrupación de cobros por método de pago
type ResumenLiquidaciones struct {
	Liquidaciones []LiquidacionGrupo `json:"liquidaciones"`
	TotalGeneral  float64            `json:"total_general"`
}

// ResumenCobranza totales de cobros por período natural
type ResumenCobranza struct {
	TotalDia      float64 `json:"total_dia"`
	TotalSemana   float64 `json:"total_semana"`
	TotalMes      float64 `json:"total_mes"`
	TotalGeneral  float64 `json:"total_general"`
	CantidadPagos int     `json:"cantidad_pagos"`
}

// PagoListado un cobro enriquecido con datos de su venta y cliente
type PagoListado struct {
	ID           int       `json:"id"`
	VentaID      int       `json:"venta_id"`
	Fecha        time.Time `json:"fecha"`
	Cliente      string    `json:"cliente"`
	Ciudad       string    `json:"ciudad"`
	Telefono     string    `json:"telefono"`
	Liquidacion  string    `json:"liquidacion"`
	Banco        *string   `json:"banco"`
	MontoPagado  float64   `json:"monto_pagado"`
	Envio        *string   `json:"envio"`
	PagoDelivery float64   `json:"pago_delivery"`
	TotalPago    float64   `json:"total_pago"`
	TotalVenta   float64   `json:"total_venta"`
}

// VentaPendiente venta no pagada con su saldo
type VentaPendiente struct {
	VentaID   int       `json:"venta_id"`
	Fecha     time.Time `json:"fecha"`
	Cliente   string    `json:"cliente"`
	Ciudad    string    `json:"ciudad"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Total     float64   `json:"total_venta"`
	Cobrado   float64   `json:"total_cobrado"`
	Pendiente float64   `json:"pendiente"`
	Estado    string    `json:"estado"`
}

// TopCliente cliente acumulado por monto de compras
type TopCliente struct {
	Nombre         string  `json:"nombre"`
	Ciudad         string  `json:"ciudad"`
	Telefono       string  `json:"telefono"`
	Email          string  `json:"email"`
	MontoTotal     float64 `json:"monto_total"`
	MontoCobrado   float64 `json:"monto_cobrado"`
	MontoPendiente float64 `json:"monto_pendiente"`
	CantidadVentas int     `json:"cantidad_ventas"`
}

// ArticuloVendido artículo acumulado por cantidad vendida
type ArticuloVendido struct {
	Nombre          string  `json:"nombre"`
	Codigo          string  `json:"codigo"`
	CantidadVendida int     `json:"cantidad_vendida"`
	MontoTotal      float64 `json:"monto_total"`
}

// DashboardResumen métricas del panel principal
type DashboardResumen struct {
	TotalVentas          float64 `json:"total_ventas"`
	TotalPagadas         float64 `json:"total_pagadas"`
	TotalPendientes      float64 `json:"total_pendientes"`
	PromedioPagada       float64 `json:"promedio_pagada"`
	PromedioPendiente    float64 `json:"promedio_pendiente"`
	CantidadPagadas      int     `json:"cantidad_pagadas"`
	CantidadPendientes   int     `json:"cantidad_pendientes"`
	TotalArticulosStock  int     `json:"total_articulos_stock"`
	ArticulosVendidos    int     `json:"articulos_vendidos"`
	ArticulosDisponibles int     `json:"articulos_disponibles"`
	TotalClientes        int     `json:"total_clientes"`
}

// EtiquetaVenta datos de una venta para etiquetas de envío, por ciudad
type EtiquetaVenta struct {
	ID            int       `json:"id"`
	Fecha         time.Time `json:"fecha"`
	Estado        string    `json:"estado"`
	Cliente       string    `json:"cliente"`
	Telefono      string    `json:"telefono"`
	Direccion     string    `json:"direccion"`
	Ciudad        string    `json:"ciudad"`
	Monto         float64   `json:"monto"`
	Observaciones string    `json:"observaciones"`
}
