package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"ventas-service/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func TestGenerarCodigoArticulo(t *testing.T) {
	patron := regexp.MustCompile(`^ART-\d+-[A-Z0-9]{5}$`)
	for i := 0; i < 10; i++ {
		codigo := GenerarCodigoArticulo()
		if !patron.MatchString(codigo) {
			t.Fatalf("código %q no cumple el formato ART-<timestamp>-<sufijo>", codigo)
		}
	}
}

func TestCrearArticuloGeneraCodigo(t *testing.T) {
	repo := newFakeArticuloRepo()
	service := NewArticuloService(repo, zap.NewNop())

	articulo, err := service.Create(context.Background(), &models.ArticuloRequest{
		Nombre:         "Collar artesanal",
		CantidadStock:  10,
		PrecioCosto:    40,
		PrecioUnitario: 100,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if articulo.ID == 0 {
		t.Error("el artículo creado debe tener ID asignado")
	}
	patron := regexp.MustCompile(`^ART-\d+-[A-Z0-9]{5}$`)
	if !patron.MatchString(articulo.Codigo) {
		t.Errorf("código autogenerado %q no cumple el formato", articulo.Codigo)
	}
}

func TestCrearArticuloNombreVacio(t *testing.T) {
	repo := newFakeArticuloRepo()
	service := NewArticuloService(repo, zap.NewNop())

	_, err := service.Create(context.Background(), &models.ArticuloRequest{
		Nombre:        "",
		CantidadStock: 5,
	})
	if err == nil {
		t.Fatal("Create con nombre vacío debe fallar")
	}

	// El handler traduce estos errores a 400, por eso el detalle del
	// validador debe seguir en la cadena
	var errsValidacion validator.ValidationErrors
	if !errors.As(err, &errsValidacion) {
		t.Errorf("error %v no conserva el detalle del validador", err)
	}
}

func TestCrearArticuloRespetaCodigoProvisto(t *testing.T) {
	repo := newFakeArticuloRepo()
	service := NewArticuloService(repo, zap.NewNop())

	articulo, err := service.Create(context.Background(), &models.ArticuloRequest{
		Codigo: "  ART-CUSTOM-001  ",
		Nombre: "Collar",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if articulo.Codigo != "ART-CUSTOM-001" {
		t.Errorf("código = %q, esperado ART-CUSTOM-001 sin espacios", articulo.Codigo)
	}
}

func TestActualizarArticuloConservaCodigo(t *testing.T) {
	repo := newFakeArticuloRepo()
	service := NewArticuloService(repo, zap.NewNop())

	creado, err := service.Create(context.Background(), &models.ArticuloRequest{
		Codigo: "ART-ORIGINAL",
		Nombre: "Collar",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	actualizado, err := service.Update(context.Background(), creado.ID, &models.ArticuloRequest{
		Codigo:         "ART-OTRO",
		Nombre:         "Collar renombrado",
		PrecioUnitario: 120,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if actualizado.Codigo != "ART-ORIGINAL" {
		t.Errorf("código tras actualizar = %q, el código nunca cambia", actualizado.Codigo)
	}
	if actualizado.Nombre != "Collar renombrado" {
		t.Errorf("nombre = %q, esperado Collar renombrado", actualizado.Nombre)
	}
	if !actualizado.CreatedAt.Equal(creado.CreatedAt) {
		t.Error("CreatedAt debe conservarse en la actualización")
	}
}

func TestGetArticuloPorCodigo(t *testing.T) {
	repo := newFakeArticuloRepo()
	service := NewArticuloService(repo, zap.NewNop())

	if _, err := service.Create(context.Background(), &models.ArticuloRequest{
		Codigo: "ART-BUSCADO",
		Nombre: "Collar",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	articulo, err := service.GetByCodigo(context.Background(), " ART-BUSCADO ")
	if err != nil {
		t.Fatalf("GetByCodigo: %v", err)
	}
	if articulo.Nombre != "Collar" {
		t.Errorf("nombre = %q, esperado Collar", articulo.Nombre)
	}

	if _, err := service.GetByCodigo(context.Background(), "ART-FANTASMA"); !errors.Is(err, ErrArticuloNoEncontrado) {
		t.Errorf("esperado ErrArticuloNoEncontrado, got %v", err)
	}
}

func TestArticuloNoEncontrado(t *testing.T) {
	repo := newFakeArticuloRepo()
	service := NewArticuloService(repo, zap.NewNop())

	if _, err := service.GetByID(context.Background(), 99); !errors.Is(err, ErrArticuloNoEncontrado) {
		t.Errorf("GetByID: esperado ErrArticuloNoEncontrado, got %v", err)
	}
	if _, err := service.Update(context.Background(), 99, &models.ArticuloRequest{Nombre: "X"}); !errors.Is(err, ErrArticuloNoEncontrado) {
		t.Errorf("Update: esperado ErrArticuloNoEncontrado, got %v", err)
	}
	if err := service.Delete(context.Background(), 99); !errors.Is(err, ErrArticuloNoEncontrado) {
		t.Errorf("Delete: esperado ErrArticuloNoEncontrado, got %v", err)
	}
}

func TestListArticulosPaginado(t *testing.T) {
	repo := newFakeArticuloRepo()
	service := NewArticuloService(repo, zap.NewNop())

	for i := 0; i < 15; i++ {
		if _, err := service.Create(context.Background(), &models.ArticuloRequest{
			Codigo: GenerarCodigoArticulo(),
			Nombre: "Artículo",
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	resultado, err := service.List(context.Background(), "", models.Paginacion{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if resultado.Total != 15 {
		t.Errorf("Total = %d, esperado 15", resultado.Total)
	}
	if len(resultado.Items) != 5 {
		t.Errorf("items en página 2 = %d, esperado 5", len(resultado.Items))
	}
	if resultado.TotalPages != 2 {
		t.Errorf("TotalPages = %d, esperado 2", resultado.TotalPages)
	}
}
