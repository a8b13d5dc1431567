package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"ventas-service/internal/models"
	"ventas-service/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Errores de negocio de artículos
var (
	ErrArticuloNoEncontrado = errors.New("artículo no encontrado")
	ErrCodigoDuplicado      = errors.New("ya existe un artículo con ese código")
)

// ArticuloService define la interfaz para operaciones de artículos
type ArticuloService interface {
	List(ctx context.Context, searchTerm string, pag models.Paginacion) (*models.PaginatedResult[*models.Articulo], error)
	ListAll(ctx context.Context) ([]*models.Articulo, error)
	GetByID(ctx context.Context, id int) (*models.Articulo, error)
	GetByCodigo(ctx context.Context, codigo string) (*models.Articulo, error)
	Create(ctx context.Context, req *models.ArticuloRequest) (*models.Articulo, error)
	Update(ctx context.Context, id int, req *models.ArticuloRequest) (*models.Articulo, error)
	Delete(ctx context.Context, id int) error
	GetStockBajo(ctx context.Context) ([]*models.Articulo, error)
}

// articuloService implementa ArticuloService
type articuloService struct {
	repo     repository.ArticuloRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewArticuloService crea una nueva instancia del servicio
func NewArticuloService(repo repository.ArticuloRepository, logger *zap.Logger) ArticuloService {
	return &articuloService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// List obtiene una página de artículos, con búsqueda opcional por nombre,
// código o categoría
func (s *articuloService) List(ctx context.Context, searchTerm string, pag models.Paginacion) (*models.PaginatedResult[*models.Articulo], error) {
	articulos, total, err := s.repo.List(ctx, strings.TrimSpace(searchTerm), pag)
	if err != nil {
		s.logger.Error("❌ Error listando artículos", zap.Error(err))
		return nil, fmt.Errorf("error listando artículos: %w", err)
	}

	return &models.PaginatedResult[*models.Articulo]{
		Items:      articulos,
		Total:      total,
		Page:       pag.Page,
		Limit:      pag.Limit,
		TotalPages: pag.TotalPages(total),
	}, nil
}

// ListAll obtiene el inventario completo sin paginar
func (s *articuloService) ListAll(ctx context.Context) ([]*models.Articulo, error) {
	articulos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listando artículos: %w", err)
	}
	return articulos, nil
}

// GetByID obtiene un artículo por su ID
func (s *articuloService) GetByID(ctx context.Context, id int) (*models.Articulo, error) {
	articulo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo artículo: %w", err)
	}
	if articulo == nil {
		return nil, ErrArticuloNoEncontrado
	}
	return articulo, nil
}

// GetByCodigo obtiene un artículo por su código inmutable
func (s *articuloService) GetByCodigo(ctx context.Context, codigo string) (*models.Articulo, error) {
	articulo, err := s.repo.GetByCodigo(ctx, strings.TrimSpace(codigo))
	if err != nil {
		return nil, fmt.Errorf("error obteniendo artículo: %w", err)
	}
	if articulo == nil {
		return nil, ErrArticuloNoEncontrado
	}
	return articulo, nil
}

// Create valida y crea un artículo. Si el request no trae código se genera
// uno con el formato ART-<timestamp>-<sufijo aleatorio>.
func (s *articuloService) Create(ctx context.Context, req *models.ArticuloRequest) (*models.Articulo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("datos de artículo inválidos: %w", err)
	}

	codigo := strings.TrimSpace(req.Codigo)
	if codigo == "" {
		codigo = GenerarCodigoArticulo()
	}

	articulo := &models.Articulo{
		Codigo:         codigo,
		Nombre:         strings.TrimSpace(req.Nombre),
		CantidadStock:  req.CantidadStock,
		CantidadMinima: req.CantidadMinima,
		PrecioCosto:    req.PrecioCosto,
		PrecioUnitario: req.PrecioUnitario,
		Categoria:      ptrONil(req.Categoria),
		Descripcion:    ptrONil(req.Descripcion),
		FotoURL:        ptrONil(req.FotoURL),
		Enlace:         ptrONil(req.Enlace),
	}

	if err := s.repo.Create(ctx, articulo); err != nil {
		if esDuplicado(err) {
			return nil, ErrCodigoDuplicado
		}
		s.logger.Error("❌ Error creando artículo",
			zap.String("codigo", codigo),
			zap.Error(err))
		return nil, fmt.Errorf("error creando artículo: %w", err)
	}

	s.logger.Info("✅ Artículo creado",
		zap.Int("id", articulo.ID),
		zap.String("codigo", articulo.Codigo),
		zap.String("nombre", articulo.Nombre))

	return articulo, nil
}

// Update valida y actualiza un artículo. El código nunca cambia: lo que
// venga en el request se ignora y se conserva el original.
func (s *articuloService) Update(ctx context.Context, id int, req *models.ArticuloRequest) (*models.Articulo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("datos de artículo inválidos: %w", err)
	}

	existente, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo artículo: %w", err)
	}
	if existente == nil {
		return nil, ErrArticuloNoEncontrado
	}

	articulo := &models.Articulo{
		ID:             id,
		Codigo:         existente.Codigo,
		Nombre:         strings.TrimSpace(req.Nombre),
		CantidadStock:  req.CantidadStock,
		CantidadMinima: req.CantidadMinima,
		PrecioCosto:    req.PrecioCosto,
		PrecioUnitario: req.PrecioUnitario,
		Categoria:      ptrONil(req.Categoria),
		Descripcion:    ptrONil(req.Descripcion),
		FotoURL:        ptrONil(req.FotoURL),
		Enlace:         ptrONil(req.Enlace),
		CreatedAt:      existente.CreatedAt,
	}

	if err := s.repo.Update(ctx, articulo); err != nil {
		return nil, fmt.Errorf("error actualizando artículo: %w", err)
	}

	s.logger.Info("✅ Artículo actualizado", zap.Int("id", id))

	return articulo, nil
}

// Delete elimina un artículo del inventario
func (s *articuloService) Delete(ctx context.Context, id int) error {
	existente, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error obteniendo artículo: %w", err)
	}
	if existente == nil {
		return ErrArticuloNoEncontrado
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error eliminando artículo: %w", err)
	}

	s.logger.Info("🗑️ Artículo eliminado",
		zap.Int("id", id),
		zap.String("codigo", existente.Codigo))

	return nil
}

// GetStockBajo obtiene los artículos en o bajo su cantidad mínima
func (s *articuloService) GetStockBajo(ctx context.Context) ([]*models.Articulo, error) {
	articulos, err := s.repo.GetStockBajo(ctx)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo stock bajo: %w", err)
	}
	return articulos, nil
}

const codigoSufijoChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerarCodigoArticulo genera un código único con el formato
// ART-<timestamp ms>-<5 caracteres aleatorios>
func GenerarCodigoArticulo() string {
	sufijo := make([]byte, 5)
	for i := range sufijo {
		sufijo[i] = codigoSufijoChars[rand.Intn(len(codigoSufijoChars))]
	}
	return fmt.Sprintf("ART-%d-%s", time.Now().UnixMilli(), string(sufijo))
}

// ptrONil convierte un string a puntero, o nil si viene vacío, para las
// columnas nullable
func ptrONil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// esDuplicado detecta la violación de constraint única de PostgreSQL
func esDuplicado(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
