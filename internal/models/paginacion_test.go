package models

import "testing"

func TestNuevaPaginacion(t *testing.T) {
	p := NuevaPaginacion(0, 0)
	if p.Page != 1 || p.Limit != 10 {
		t.Errorf("NuevaPaginacion(0, 0) = %+v, esperado page 1 limit 10", p)
	}

	p = NuevaPaginacion(-3, 25)
	if p.Page != 1 || p.Limit != 25 {
		t.Errorf("NuevaPaginacion(-3, 25) = %+v, esperado page 1 limit 25", p)
	}

	p = NuevaPaginacion(4, 10)
	if p.Offset() != 30 {
		t.Errorf("Offset() = %d, esperado 30", p.Offset())
	}
}

func TestTotalPages(t *testing.T) {
	casos := []struct {
		total int
		limit int
		want  int
	}{
		{35, 10, 4},
		{30, 10, 3},
		{1, 10, 1},
		{0, 10, 0},
		{-5, 10, 0},
		{10, 3, 4},
	}

	for _, c := range casos {
		p := NuevaPaginacion(1, c.limit)
		if got := p.TotalPages(c.total); got != c.want {
			t.Errorf("TotalPages(%d) con limit %d = %d, esperado %d", c.total, c.limit, got, c.want)
		}
	}
}
