package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ventas-service/internal/models"
	"ventas-service/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Errores de negocio de clientes
var (
	ErrClienteNoEncontrado = errors.New("cliente no encontrado")
	ErrClienteDuplicado    = errors.New("ya existe un cliente con ese usuario o email")
)

// ClienteService define la interfaz para operaciones de clientes
type ClienteService interface {
	List(ctx context.Context, searchTerm string, pag models.Paginacion) (*models.PaginatedResult[*models.Cliente], error)
	ListByTipo(ctx context.Context, tipoCliente string) ([]*models.Cliente, error)
	GetByID(ctx context.Context, id int) (*models.Cliente, error)
	Create(ctx context.Context, req *models.ClienteRequest) (*models.Cliente, error)
	Update(ctx context.Context, id int, req *models.ClienteRequest) (*models.Cliente, error)
	Delete(ctx context.Context, id int) error
}

// clienteService implementa ClienteService
type clienteService struct {
	repo     repository.ClienteRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewClienteService crea una nueva instancia del servicio
func NewClienteService(repo repository.ClienteRepository, logger *zap.Logger) ClienteService {
	return &clienteService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// List obtiene una página de clientes, con búsqueda opcional por nombre,
// usuario, email o teléfonos
func (s *clienteService) List(ctx context.Context, searchTerm string, pag models.Paginacion) (*models.PaginatedResult[*models.Cliente], error) {
	clientes, total, err := s.repo.List(ctx, strings.TrimSpace(searchTerm), pag)
	if err != nil {
		s.logger.Error("❌ Error listando clientes", zap.Error(err))
		return nil, fmt.Errorf("error listando clientes: %w", err)
	}

	return &models.PaginatedResult[*models.Cliente]{
		Items:      clientes,
		Total:      total,
		Page:       pag.Page,
		Limit:      pag.Limit,
		TotalPages: pag.TotalPages(total),
	}, nil
}

// ListByTipo obtiene los clientes de un tipo (Normal, VIP, Mayorista).
// Tipo vacío retorna todos.
func (s *clienteService) ListByTipo(ctx context.Context, tipoCliente string) ([]*models.Cliente, error) {
	clientes, err := s.repo.ListByTipo(ctx, strings.TrimSpace(tipoCliente))
	if err != nil {
		return nil, fmt.Errorf("error listando clientes: %w", err)
	}
	return clientes, nil
}

// GetByID obtiene un cliente por su ID
func (s *clienteService) GetByID(ctx context.Context, id int) (*models.Cliente, error) {
	cliente, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo cliente: %w", err)
	}
	if cliente == nil {
		return nil, ErrClienteNoEncontrado
	}
	return cliente, nil
}

// Create valida y crea un cliente. Los campos opcionales vacíos se guardan
// como NULL.
func (s *clienteService) Create(ctx context.Context, req *models.ClienteRequest) (*models.Cliente, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("datos de cliente inválidos: %w", err)
	}

	cliente := s.desdeRequest(req)

	if err := s.repo.Create(ctx, cliente); err != nil {
		if esDuplicado(err) {
			return nil, ErrClienteDuplicado
		}
		s.logger.Error("❌ Error creando cliente",
			zap.String("nombre", cliente.NombreCompleto),
			zap.Error(err))
		return nil, fmt.Errorf("error creando cliente: %w", err)
	}

	s.logger.Info("✅ Cliente creado",
		zap.Int("id", cliente.ID),
		zap.String("nombre", cliente.NombreCompleto),
		zap.String("tipo", cliente.TipoCliente))

	return cliente, nil
}

// Update valida y actualiza un cliente existente
func (s *clienteService) Update(ctx context.Context, id int, req *models.ClienteRequest) (*models.Cliente, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("datos de cliente inválidos: %w", err)
	}

	existente, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo cliente: %w", err)
	}
	if existente == nil {
		return nil, ErrClienteNoEncontrado
	}

	cliente := s.desdeRequest(req)
	cliente.ID = id
	cliente.CreatedAt = existente.CreatedAt

	if err := s.repo.Update(ctx, cliente); err != nil {
		if esDuplicado(err) {
			return nil, ErrClienteDuplicado
		}
		return nil, fmt.Errorf("error actualizando cliente: %w", err)
	}

	s.logger.Info("✅ Cliente actualizado", zap.Int("id", id))

	return cliente, nil
}

// Delete elimina un cliente
func (s *clienteService) Delete(ctx context.Context, id int) error {
	existente, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error obteniendo cliente: %w", err)
	}
	if existente == nil {
		return ErrClienteNoEncontrado
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error eliminando cliente: %w", err)
	}

	s.logger.Info("🗑️ Cliente eliminado",
		zap.Int("id", id),
		zap.String("nombre", existente.NombreCompleto))

	return nil
}

// desdeRequest arma el modelo a partir del request, normalizando espacios y
// aplicando los defaults (tipo Normal, activo true)
func (s *clienteService) desdeRequest(req *models.ClienteRequest) *models.Cliente {
	tipo := strings.TrimSpace(req.TipoCliente)
	if tipo == "" {
		tipo = models.TipoClienteNormal
	}

	activo := true
	if req.Activo != nil {
		activo = *req.Activo
	}

	return &models.Cliente{
		NombreUsuario:      ptrONil(req.NombreUsuario),
		NombreCompleto:     strings.TrimSpace(req.NombreCompleto),
		Email:              ptrONil(req.Email),
		Telefono:           ptrONil(req.Telefono),
		Celular:            ptrONil(req.Celular),
		DocumentoIdentidad: ptrONil(req.DocumentoIdentidad),
		Direccion:          ptrONil(req.Direccion),
		Ciudad:             ptrONil(req.Ciudad),
		Departamento:       ptrONil(req.Departamento),
		TipoCliente:        tipo,
		Activo:             activo,
		LimiteCredito:      req.LimiteCredito,
		DiasCredito:        req.DiasCredito,
	}
}
