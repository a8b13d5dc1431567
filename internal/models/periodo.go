package models

import (
	"time"
)

// Filtros de período soportados por reportes y dashboard
const (
	PeriodoHoy          = "hoy"
	PeriodoEstaSemana   = "esta_semana"
	PeriodoSemanaPasada = "semana_pasada"
	PeriodoEsteMes      = "este_mes"
	PeriodoMesPasado    = "mes_pasado"
	PeriodoRangoCustom  = "rango_custom"
	PeriodoTodos        = "todos"
)

// RangoPeriodo calcula el rango [inicio, fin) para un filtro de período
// relativo a ahora. La semana comienza en domingo. Para rango_custom el
// fin es inclusivo a nivel de día. Retorna ok=false cuando el filtro no
// acota fechas (todos o un filtro desconocido).
func RangoPeriodo(filtro string, ahora time.Time, inicioCustom, finCustom time.Time) (inicio, fin time.Time, ok bool) {
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	manana := hoy.AddDate(0, 0, 1)

	switch filtro {
	case PeriodoHoy:
		return hoy, manana, true
	case PeriodoEstaSemana:
		domingo := hoy.AddDate(0, 0, -int(hoy.Weekday()))
		return domingo, manana, true
	case PeriodoSemanaPasada:
		domingo := hoy.AddDate(0, 0, -int(hoy.Weekday()))
		return domingo.AddDate(0, 0, -7), domingo, true
	case PeriodoEsteMes:
		primerDia := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
		return primerDia, primerDia.AddDate(0, 1, 0), true
	case PeriodoMesPasado:
		primerDia := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
		return primerDia.AddDate(0, -1, 0), primerDia, true
	case PeriodoRangoCustom:
		if inicioCustom.IsZero() || finCustom.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		inicioDia := time.Date(inicioCustom.Year(), inicioCustom.Month(), inicioCustom.Day(), 0, 0, 0, 0, inicioCustom.Location())
		finDia := time.Date(finCustom.Year(), finCustom.Month(), finCustom.Day(), 0, 0, 0, 0, finCustom.Location()).AddDate(0, 0, 1)
		return inicioDia, finDia, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// EnRango indica si una fecha cae dentro del rango [inicio, fin)
func EnRango(fecha, inicio, fin time.Time) bool {
	return !fecha.Before(inicio) && fecha.Before(fin)
}
