package models

import (
	"testing"
	"time"
)

func TestCalcularEstado(t *testing.T) {
	casos := []struct {
		nombre  string
		cobrado float64
		total   float64
		want    string
	}{
		{"sin cobros", 0, 100, EstadoPendiente},
		{"cobro negativo", -5, 100, EstadoPendiente},
		{"cobro parcial", 50, 100, EstadoParcial},
		{"cobro casi completo", 99.99, 100, EstadoParcial},
		{"cobro exacto", 100, 100, EstadoPagado},
		{"sobrepago", 150, 100, EstadoPagado},
		{"venta sin detalles", 0, 0, EstadoPendiente},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			if got := CalcularEstado(c.cobrado, c.total); got != c.want {
				t.Errorf("CalcularEstado(%v, %v) = %q, esperado %q", c.cobrado, c.total, got, c.want)
			}
		})
	}
}

func TestVentaConDetallesTotales(t *testing.T) {
	v := &VentaConDetalles{
		Detalles: []DetalleVenta{
			{Cantidad: 2, PrecioUnitario: 10.50, Subtotal: 21.00},
			{Cantidad: 1, PrecioUnitario: 5.00, Subtotal: 5.00},
		},
		Cobros: []Cobro{
			{MontoPagado: 10.00, PagoDelivery: 2.00},
			{MontoPagado: 5.00},
		},
	}

	if got := v.Total(); got != 26.00 {
		t.Errorf("Total() = %v, esperado 26.00", got)
	}
	if got := v.TotalCobrado(); got != 17.00 {
		t.Errorf("TotalCobrado() = %v, esperado 17.00", got)
	}
}

func TestVentaConDetallesVacia(t *testing.T) {
	v := &VentaConDetalles{}
	if v.Total() != 0 {
		t.Errorf("Total() de venta vacía debe ser 0")
	}
	if v.TotalCobrado() != 0 {
		t.Errorf("TotalCobrado() de venta vacía debe ser 0")
	}
}

func TestEnRango(t *testing.T) {
	inicio := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	if !EnRango(inicio, inicio, fin) {
		t.Error("el inicio del rango debe estar incluido")
	}
	if EnRango(fin, inicio, fin) {
		t.Error("el fin del rango debe estar excluido")
	}
	if !EnRango(inicio.Add(24*time.Hour), inicio, fin) {
		t.Error("una fecha interior debe estar incluida")
	}
	if EnRango(inicio.Add(-time.Second), inicio, fin) {
		t.Error("una fecha anterior al inicio debe estar excluida")
	}
}
