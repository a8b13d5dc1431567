package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ventas-service/internal/models"
	"ventas-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type stubArticuloService struct {
	listFn         func(ctx context.Context, searchTerm string, pag models.Paginacion) (*models.PaginatedResult[*models.Articulo], error)
	listAllFn      func(ctx context.Context) ([]*models.Articulo, error)
	getByIDFn      func(ctx context.Context, id int) (*models.Articulo, error)
	getByCodigoFn  func(ctx context.Context, codigo string) (*models.Articulo, error)
	createFn       func(ctx context.Context, req *models.ArticuloRequest) (*models.Articulo, error)
	updateFn       func(ctx context.Context, id int, req *models.ArticuloRequest) (*models.Articulo, error)
	deleteFn       func(ctx context.Context, id int) error
	getStockBajoFn func(ctx context.Context) ([]*models.Articulo, error)
}

func (s *stubArticuloService) List(ctx context.Context, searchTerm string, pag models.Paginacion) (*models.PaginatedResult[*models.Articulo], error) {
	return s.listFn(ctx, searchTerm, pag)
}

func (s *stubArticuloService) ListAll(ctx context.Context) ([]*models.Articulo, error) {
	return s.listAllFn(ctx)
}

func (s *stubArticuloService) GetByID(ctx context.Context, id int) (*models.Articulo, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubArticuloService) GetByCodigo(ctx context.Context, codigo string) (*models.Articulo, error) {
	return s.getByCodigoFn(ctx, codigo)
}

func (s *stubArticuloService) Create(ctx context.Context, req *models.ArticuloRequest) (*models.Articulo, error) {
	return s.createFn(ctx, req)
}

func (s *stubArticuloService) Update(ctx context.Context, id int, req *models.ArticuloRequest) (*models.Articulo, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubArticuloService) Delete(ctx context.Context, id int) error {
	return s.deleteFn(ctx, id)
}

func (s *stubArticuloService) GetStockBajo(ctx context.Context) ([]*models.Articulo, error) {
	return s.getStockBajoFn(ctx)
}

func TestListArticulosConPaginacion(t *testing.T) {
	service := &stubArticuloService{
		listFn: func(ctx context.Context, searchTerm string, pag models.Paginacion) (*models.PaginatedResult[*models.Articulo], error) {
			if searchTerm != "collar" {
				t.Errorf("searchTerm = %q, esperado collar", searchTerm)
			}
			if pag.Page != 2 || pag.Limit != 5 {
				t.Errorf("paginación = %+v, esperado page 2 limit 5", pag)
			}
			return &models.PaginatedResult[*models.Articulo]{
				Items:      []*models.Articulo{{ID: 6, Codigo: "ART-1-AAAAA", Nombre: "Collar"}},
				Total:      6,
				Page:       2,
				Limit:      5,
				TotalPages: 2,
			}, nil
		},
	}

	router := routerDePrueba()
	router.GET("/articulos", NewArticuloHandler(service, zap.NewNop()).List)

	req := httptest.NewRequest(http.MethodGet, "/articulos?search=collar&page=2&limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado 200", w.Code)
	}

	var resp struct {
		Success    bool              `json:"success"`
		Data       []models.Articulo `json:"data"`
		Pagination struct {
			Page       int `json:"page"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodificando respuesta: %v", err)
	}
	if !resp.Success || len(resp.Data) != 1 {
		t.Errorf("respuesta = %+v", resp)
	}
	if resp.Pagination.Total != 6 || resp.Pagination.TotalPages != 2 {
		t.Errorf("paginación = %+v", resp.Pagination)
	}
}

func TestListArticulosCompleto(t *testing.T) {
	service := &stubArticuloService{
		listAllFn: func(ctx context.Context) ([]*models.Articulo, error) {
			return []*models.Articulo{{ID: 1}, {ID: 2}}, nil
		},
	}

	router := routerDePrueba()
	router.GET("/articulos", NewArticuloHandler(service, zap.NewNop()).List)

	req := httptest.NewRequest(http.MethodGet, "/articulos?all=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado 200", w.Code)
	}

	var resp struct {
		Data []models.Articulo `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodificando respuesta: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("artículos = %d, esperado 2 sin paginar", len(resp.Data))
	}
}

func TestGetArticuloNoEncontrado(t *testing.T) {
	service := &stubArticuloService{
		getByIDFn: func(ctx context.Context, id int) (*models.Articulo, error) {
			return nil, services.ErrArticuloNoEncontrado
		},
	}

	router := routerDePrueba()
	router.GET("/articulos/:id", NewArticuloHandler(service, zap.NewNop()).GetByID)

	req := httptest.NewRequest(http.MethodGet, "/articulos/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperado 404", w.Code)
	}
}

func TestGetArticuloIDInvalido(t *testing.T) {
	service := &stubArticuloService{
		getByIDFn: func(ctx context.Context, id int) (*models.Articulo, error) {
			t.Fatal("el service no debe llamarse con ID inválido")
			return nil, nil
		},
	}

	router := routerDePrueba()
	router.GET("/articulos/:id", NewArticuloHandler(service, zap.NewNop()).GetByID)

	req := httptest.NewRequest(http.MethodGet, "/articulos/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", w.Code)
	}
}

func TestCrearArticuloHandler(t *testing.T) {
	service := &stubArticuloService{
		createFn: func(ctx context.Context, req *models.ArticuloRequest) (*models.Articulo, error) {
			return &models.Articulo{ID: 1, Codigo: "ART-1-AAAAA", Nombre: req.Nombre}, nil
		},
	}

	router := routerDePrueba()
	router.POST("/articulos", NewArticuloHandler(service, zap.NewNop()).Create)

	body, _ := json.Marshal(gin.H{"nombre": "Collar", "precio_unitario": 100})
	req := httptest.NewRequest(http.MethodPost, "/articulos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, esperado 201", w.Code)
	}
}

func TestCrearArticuloCamposInvalidos(t *testing.T) {
	// JSON bien formado pero con campos inválidos: el error del validador
	// debe responder 400 con el detalle, nunca un error interno
	service := &stubArticuloService{
		createFn: func(ctx context.Context, req *models.ArticuloRequest) (*models.Articulo, error) {
			detalle := validator.New().Struct(req)
			return nil, fmt.Errorf("datos de artículo inválidos: %w", detalle)
		},
	}

	router := routerDePrueba()
	router.POST("/articulos", NewArticuloHandler(service, zap.NewNop()).Create)

	body, _ := json.Marshal(gin.H{"nombre": "", "cantidad_stock": 5})
	req := httptest.NewRequest(http.MethodPost, "/articulos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", w.Code)
	}
	var respuesta struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &respuesta); err != nil {
		t.Fatalf("decodificando respuesta: %v", err)
	}
	if respuesta.Success {
		t.Error("success debe ser false")
	}
	if !strings.Contains(respuesta.Message, "inválidos") {
		t.Errorf("el mensaje %q debe conservar el detalle de validación", respuesta.Message)
	}
}

func TestCrearArticuloDuplicado(t *testing.T) {
	service := &stubArticuloService{
		createFn: func(ctx context.Context, req *models.ArticuloRequest) (*models.Articulo, error) {
			return nil, services.ErrCodigoDuplicado
		},
	}

	router := routerDePrueba()
	router.POST("/articulos", NewArticuloHandler(service, zap.NewNop()).Create)

	body, _ := json.Marshal(gin.H{"codigo": "ART-REPETIDO", "nombre": "Collar"})
	req := httptest.NewRequest(http.MethodPost, "/articulos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", w.Code)
	}
}
