package models

import "testing"

func TestMargenGanancia(t *testing.T) {
	a := &Articulo{PrecioCosto: 100, PrecioUnitario: 150}
	if got := a.MargenGanancia(); got != 50 {
		t.Errorf("MargenGanancia() = %v, esperado 50", got)
	}

	a = &Articulo{PrecioCosto: 0, PrecioUnitario: 150}
	if got := a.MargenGanancia(); got != 0 {
		t.Errorf("MargenGanancia() con costo 0 = %v, esperado 0", got)
	}

	a = &Articulo{PrecioCosto: 200, PrecioUnitario: 150}
	if got := a.MargenGanancia(); got != -25 {
		t.Errorf("MargenGanancia() = %v, esperado -25", got)
	}
}

func TestStockBajo(t *testing.T) {
	a := &Articulo{CantidadStock: 5, CantidadMinima: 5}
	if !a.StockBajo() {
		t.Error("stock igual al mínimo debe contar como bajo")
	}

	a = &Articulo{CantidadStock: 6, CantidadMinima: 5}
	if a.StockBajo() {
		t.Error("stock sobre el mínimo no debe contar como bajo")
	}

	a = &Articulo{CantidadStock: 0, CantidadMinima: 0}
	if !a.StockBajo() {
		t.Error("stock cero con mínimo cero debe contar como bajo")
	}
}
