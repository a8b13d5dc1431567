package models

import "testing"

func TestCobroTotal(t *testing.T) {
	c := &Cobro{MontoPagado: 100.00, PagoDelivery: 15.00}
	if got := c.Total(); got != 115.00 {
		t.Errorf("Total() = %v, esperado 115.00", got)
	}
}

func TestMetodoAgrupacion(t *testing.T) {
	bac := "BAC"
	vacio := ""

	casos := []struct {
		nombre      string
		liquidacion string
		banco       *string
		want        string
	}{
		{"bancos con banco", LiquidacionBancos, &bac, "BAC"},
		{"bancos sin banco", LiquidacionBancos, nil, LiquidacionBancos},
		{"bancos con banco vacío", LiquidacionBancos, &vacio, LiquidacionBancos},
		{"efectivo", LiquidacionEfectivo, nil, LiquidacionEfectivo},
		{"efectivo con banco irrelevante", LiquidacionEfectivo, &bac, LiquidacionEfectivo},
		{"liquidación vacía", "", nil, "SIN ESPECIFICAR"},
		{"depósito", "Depósito Iczer", nil, "Depósito Iczer"},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			cobro := &Cobro{Liquidacion: c.liquidacion, Banco: c.banco}
			if got := cobro.MetodoAgrupacion(); got != c.want {
				t.Errorf("MetodoAgrupacion() = %q, esperado %q", got, c.want)
			}
		})
	}
}
