package models

import (
	"time"
)

// Liquidaciones (métodos de pago) reconocidas por los formularios
const (
	LiquidacionEfectivo  = "EFECTIVO"
	LiquidacionBancos    = "BANCOS"
	LiquidacionLinkPago  = "LINK PAGO"
	LiquidacionCredito   = "CRÉDITO"
	LiquidacionPendiente = "PENDIENTE"
)

// Liquidaciones lista completa de métodos de pago, en el orden de los
// formularios originales
var Liquidaciones = []string{
	LiquidacionEfectivo,
	LiquidacionBancos,
	LiquidacionLinkPago,
	LiquidacionCredito,
	LiquidacionPendiente,
	"Depósito Iczer",
	"Depósito Cesar",
	"Paquete pendiente",
}

// Bancos catálogo de bancos para liquidación BANCOS
var Bancos = []string{
	"ATLANTIDA",
	"CUSCATLAN",
	"BAC",
	"OCCIDENTE",
	"BANPAIS",
}

// Cobro representa un pago registrado contra una venta
type Cobro struct {
	ID            int       `json:"id" db:"id"`
	VentaID       int       `json:"venta_id" db:"venta_id"`
	FechaPago     time.Time `json:"fecha_pago" db:"fecha_pago"`
	Liquidacion   string    `json:"liquidacion" db:"liquidacion"`
	Banco         *string   `json:"banco" db:"banco"`
	MontoPagado   float64   `json:"monto_pagado" db:"monto_pagado"`
	Envio         *string   `json:"envio" db:"envio"`
	PagoDelivery  float64   `json:"pago_delivery" db:"pago_delivery"`
	Observaciones string    `json:"observaciones" db:"observaciones"`
}

// Total retorna el monto pagado más el pago de delivery
func (c *Cobro) Total() float64 {
	return c.MontoPagado + c.PagoDelivery
}

// CobroResultado resultado del registro de un cobro: el estado final de la
// venta y sus totales
type CobroResultado struct {
	CobroID     int     `json:"cobro_id"`
	EstadoVenta string  `json:"estado_venta"`
	TotalVenta  float64 `json:"total_venta"`
	Cobrado     float64 `json:"cobrado"`
	Pendiente   float64 `json:"pendiente"`
}

// MetodoAgrupacion retorna la clave bajo la que se agrupa el cobro en los
// reportes de liquidaciones: para BANCOS se usa el nombre del banco, para
// el resto la liquidación literal.
func (c *Cobro) MetodoAgrupacion() string {
	if c.Liquidacion == LiquidacionBancos && c.Banco != nil && *c.Banco != "" {
		return *c.Banco
	}
	if c.Liquidacion == "" {
		return "SIN ESPECIFICAR"
	}
	return c.Liquidacion
}
