package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ventas-service/internal/cache"
	"ventas-service/internal/models"
	"ventas-service/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Errores de negocio de ventas y cobros
var (
	ErrVentaNoEncontrada   = errors.New("venta no encontrada")
	ErrCobroNoEncontrado   = errors.New("cobro no encontrado")
	ErrStockInsuficiente   = errors.New("stock insuficiente")
	ErrLiquidacionInvalida = errors.New("liquidación no reconocida")
	ErrBancoRequerido      = errors.New("banco es requerido para liquidación BANCOS")
	ErrMontoInvalido       = errors.New("el cobro debe tener un monto mayor a cero")
)

// VentaService define la interfaz para operaciones de ventas y cobros
type VentaService interface {
	List(ctx context.Context, searchTerm string, pag models.Paginacion) (*models.PaginatedResult[*models.VentaConDetalles], error)
	GetDetalle(ctx context.Context, id int) (*models.VentaConDetalles, error)
	Crear(ctx context.Context, req *models.CrearVentaRequest) (*models.CrearVentaResponse, error)
	Delete(ctx context.Context, id int) error
	RegistrarCobro(ctx context.Context, ventaID int, req *models.CobroRequest) (*models.CobroResponse, error)
	DeleteCobro(ctx context.Context, cobroID int) (*models.CobroResultado, error)
}

// ventaService implementa VentaService
type ventaService struct {
	repo         repository.VentaRepository
	cobroRepo    repository.CobroRepository
	articuloRepo repository.ArticuloRepository
	clienteRepo  repository.ClienteRepository
	reportCache  *cache.ReportCache
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewVentaService crea una nueva instancia del servicio
func NewVentaService(
	repo repository.VentaRepository,
	cobroRepo repository.CobroRepository,
	articuloRepo repository.ArticuloRepository,
	clienteRepo repository.ClienteRepository,
	reportCache *cache.ReportCache,
	logger *zap.Logger,
) VentaService {
	return &ventaService{
		repo:         repo,
		cobroRepo:    cobroRepo,
		articuloRepo: articuloRepo,
		clienteRepo:  clienteRepo,
		reportCache:  reportCache,
		validate:     validator.New(),
		logger:       logger,
	}
}

// List obtiene una página de ventas con sus relaciones, buscando por nombre
// del cliente
func (s *ventaService) List(ctx context.Context, searchTerm string, pag models.Paginacion) (*models.PaginatedResult[*models.VentaConDetalles], error) {
	ventas, total, err := s.repo.List(ctx, searchTerm, pag)
	if err != nil {
		s.logger.Error("❌ Error listando ventas", zap.Error(err))
		return nil, fmt.Errorf("error listando ventas: %w", err)
	}

	return &models.PaginatedResult[*models.VentaConDetalles]{
		Items:      ventas,
		Total:      total,
		Page:       pag.Page,
		Limit:      pag.Limit,
		TotalPages: pag.TotalPages(total),
	}, nil
}

// GetDetalle obtiene una venta con cliente, detalles y cobros
func (s *ventaService) GetDetalle(ctx context.Context, id int) (*models.VentaConDetalles, error) {
	venta, err := s.repo.GetConDetalles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo venta: %w", err)
	}
	if venta == nil {
		return nil, ErrVentaNoEncontrada
	}
	return venta, nil
}

// Crear valida y registra una venta con sus detalles. El stock se valida
// contra el inventario vigente pero no se descuenta aquí: el descuento
// ocurre al registrar el cobro. La venta nace PENDIENTE.
func (s *ventaService) Crear(ctx context.Context, req *models.CrearVentaRequest) (*models.CrearVentaResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("datos de venta inválidos: %w", err)
	}

	cliente, err := s.clienteRepo.GetByID(ctx, req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo cliente: %w", err)
	}
	if cliente == nil {
		return nil, ErrClienteNoEncontrado
	}

	var detalles []models.DetalleVenta
	var total float64
	for _, det := range req.Detalles {
		articulo, err := s.articuloRepo.GetByID(ctx, det.ArticuloID)
		if err != nil {
			return nil, fmt.Errorf("error obteniendo artículo: %w", err)
		}
		if articulo == nil {
			return nil, fmt.Errorf("%w (id %d)", ErrArticuloNoEncontrado, det.ArticuloID)
		}
		if articulo.CantidadStock < det.Cantidad {
			return nil, fmt.Errorf("%w para %s: disponible %d, solicitado %d",
				ErrStockInsuficiente, articulo.Nombre, articulo.CantidadStock, det.Cantidad)
		}

		precio := det.PrecioUnitario
		if precio <= 0 {
			precio = articulo.PrecioUnitario
		}
		subtotal := float64(det.Cantidad) * precio

		detalles = append(detalles, models.DetalleVenta{
			ArticuloID:     det.ArticuloID,
			Cantidad:       det.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       subtotal,
		})
		total += subtotal
	}

	venta := &models.Venta{
		ClienteID:     req.ClienteID,
		FechaVenta:    time.Now(),
		Estado:        models.EstadoPendiente,
		Observaciones: req.Observaciones,
	}

	if err := s.repo.CrearConDetalles(ctx, venta, detalles); err != nil {
		s.logger.Error("❌ Error creando venta",
			zap.Int("cliente_id", req.ClienteID),
			zap.Error(err))
		return nil, fmt.Errorf("error creando venta: %w", err)
	}

	s.invalidarReportes(ctx)

	s.logger.Info("✅ Venta registrada",
		zap.Int("venta_id", venta.ID),
		zap.String("cliente", cliente.NombreCompleto),
		zap.Int("lineas", len(detalles)),
		zap.Float64("total", total))

	return &models.CrearVentaResponse{
		Success: true,
		Message: "Venta registrada exitosamente",
		VentaID: venta.ID,
		Total:   total,
		Estado:  venta.Estado,
	}, nil
}

// Delete elimina una venta con sus detalles y cobros
func (s *ventaService) Delete(ctx context.Context, id int) error {
	venta, err := s.repo.GetConDetalles(ctx, id)
	if err != nil {
		return fmt.Errorf("error obteniendo venta: %w", err)
	}
	if venta == nil {
		return ErrVentaNoEncontrada
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error eliminando venta: %w", err)
	}

	s.invalidarReportes(ctx)

	s.logger.Info("🗑️ Venta eliminada", zap.Int("venta_id", id))

	return nil
}

// RegistrarCobro valida y registra un cobro contra una venta. Al cobrar se
// descuenta el stock de los artículos vendidos y se recalcula el estado de
// la venta a partir de lo cobrado acumulado.
func (s *ventaService) RegistrarCobro(ctx context.Context, ventaID int, req *models.CobroRequest) (*models.CobroResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("datos de cobro inválidos: %w", err)
	}

	if !liquidacionValida(req.Liquidacion) {
		return nil, fmt.Errorf("%w: %s", ErrLiquidacionInvalida, req.Liquidacion)
	}
	if req.Liquidacion == models.LiquidacionBancos && req.Banco == "" {
		return nil, ErrBancoRequerido
	}
	if req.MontoPagado+req.PagoDelivery <= 0 {
		return nil, ErrMontoInvalido
	}

	venta, err := s.repo.GetConDetalles(ctx, ventaID)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo venta: %w", err)
	}
	if venta == nil {
		return nil, ErrVentaNoEncontrada
	}

	cobro := &models.Cobro{
		VentaID:       ventaID,
		FechaPago:     time.Now(),
		Liquidacion:   req.Liquidacion,
		Banco:         ptrONil(req.Banco),
		MontoPagado:   req.MontoPagado,
		Envio:         ptrONil(req.Envio),
		PagoDelivery:  req.PagoDelivery,
		Observaciones: req.Observaciones,
	}

	resultado, err := s.cobroRepo.Registrar(ctx, cobro)
	if err != nil {
		s.logger.Error("❌ Error registrando cobro",
			zap.Int("venta_id", ventaID),
			zap.Error(err))
		return nil, fmt.Errorf("error registrando cobro: %w", err)
	}

	s.invalidarReportes(ctx)

	s.logger.Info("✅ Cobro registrado",
		zap.Int("cobro_id", resultado.CobroID),
		zap.Int("venta_id", ventaID),
		zap.Float64("monto", cobro.Total()),
		zap.String("estado_venta", resultado.EstadoVenta))

	return &models.CobroResponse{
		Success:     true,
		Message:     "Cobro registrado exitosamente",
		CobroID:     resultado.CobroID,
		EstadoVenta: resultado.EstadoVenta,
		TotalVenta:  resultado.TotalVenta,
		Cobrado:     resultado.Cobrado,
		Pendiente:   resultado.Pendiente,
	}, nil
}

// DeleteCobro anula un cobro y devuelve el estado recalculado de la venta
func (s *ventaService) DeleteCobro(ctx context.Context, cobroID int) (*models.CobroResultado, error) {
	resultado, err := s.cobroRepo.Delete(ctx, cobroID)
	if err != nil {
		return nil, fmt.Errorf("error eliminando cobro: %w", err)
	}
	if resultado == nil {
		return nil, ErrCobroNoEncontrado
	}

	s.invalidarReportes(ctx)

	s.logger.Info("🗑️ Cobro eliminado",
		zap.Int("cobro_id", cobroID),
		zap.String("estado_venta", resultado.EstadoVenta))

	return resultado, nil
}

// invalidarReportes vacía el caché de reportes tras una mutación. Un fallo
// de invalidación no bloquea la operación, solo se registra.
func (s *ventaService) invalidarReportes(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("⚠️ No se pudo invalidar el caché de reportes", zap.Error(err))
	}
}

// liquidacionValida verifica que la liquidación esté en el catálogo
func liquidacionValida(liquidacion string) bool {
	for _, l := range models.Liquidaciones {
		if l == liquidacion {
			return true
		}
	}
	return false
}
