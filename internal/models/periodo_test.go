package models

import (
	"testing"
	"time"
)

// miércoles 12 de marzo de 2025, 15:30
var ahoraPrueba = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

func TestRangoPeriodoHoy(t *testing.T) {
	inicio, fin, ok := RangoPeriodo(PeriodoHoy, ahoraPrueba, time.Time{}, time.Time{})
	if !ok {
		t.Fatal("hoy debe acotar fechas")
	}
	if inicio != time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC) {
		t.Errorf("inicio = %v", inicio)
	}
	if fin != time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC) {
		t.Errorf("fin = %v", fin)
	}
}

func TestRangoPeriodoEstaSemana(t *testing.T) {
	inicio, fin, ok := RangoPeriodo(PeriodoEstaSemana, ahoraPrueba, time.Time{}, time.Time{})
	if !ok {
		t.Fatal("esta_semana debe acotar fechas")
	}
	// La semana arranca en domingo: 9 de marzo
	if inicio != time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC) {
		t.Errorf("inicio = %v, esperado domingo 9 de marzo", inicio)
	}
	if fin != time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC) {
		t.Errorf("fin = %v", fin)
	}
}

func TestRangoPeriodoSemanaPasada(t *testing.T) {
	inicio, fin, ok := RangoPeriodo(PeriodoSemanaPasada, ahoraPrueba, time.Time{}, time.Time{})
	if !ok {
		t.Fatal("semana_pasada debe acotar fechas")
	}
	if inicio != time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC) {
		t.Errorf("inicio = %v, esperado domingo 2 de marzo", inicio)
	}
	if fin != time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC) {
		t.Errorf("fin = %v, esperado domingo 9 de marzo", fin)
	}
}

func TestRangoPeriodoMeses(t *testing.T) {
	inicio, fin, ok := RangoPeriodo(PeriodoEsteMes, ahoraPrueba, time.Time{}, time.Time{})
	if !ok || inicio != time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) || fin != time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("este_mes = [%v, %v)", inicio, fin)
	}

	inicio, fin, ok = RangoPeriodo(PeriodoMesPasado, ahoraPrueba, time.Time{}, time.Time{})
	if !ok || inicio != time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC) || fin != time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("mes_pasado = [%v, %v)", inicio, fin)
	}
}

func TestRangoPeriodoCustom(t *testing.T) {
	desde := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	hasta := time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)

	inicio, fin, ok := RangoPeriodo(PeriodoRangoCustom, ahoraPrueba, desde, hasta)
	if !ok {
		t.Fatal("rango_custom con fechas debe acotar")
	}
	if inicio != time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC) {
		t.Errorf("inicio = %v", inicio)
	}
	// El fin es inclusivo a nivel de día: el 20 completo entra
	if fin != time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC) {
		t.Errorf("fin = %v", fin)
	}

	if _, _, ok := RangoPeriodo(PeriodoRangoCustom, ahoraPrueba, time.Time{}, time.Time{}); ok {
		t.Error("rango_custom sin fechas no debe acotar")
	}
}

func TestRangoPeriodoTodos(t *testing.T) {
	if _, _, ok := RangoPeriodo(PeriodoTodos, ahoraPrueba, time.Time{}, time.Time{}); ok {
		t.Error("todos no debe acotar fechas")
	}
	if _, _, ok := RangoPeriodo("inventado", ahoraPrueba, time.Time{}, time.Time{}); ok {
		t.Error("un filtro desconocido no debe acotar fechas")
	}
}
