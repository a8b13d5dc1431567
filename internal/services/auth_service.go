package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ventas-service/internal/config"
	"ventas-service/internal/models"
	"ventas-service/internal/repository"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrCredencialesInvalidas usuario inexistente, inactivo o password incorrecto
var ErrCredencialesInvalidas = errors.New("credenciales inválidas")

// JWTClaim claims del token de sesión
type JWTClaim struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.StandardClaims
}

// AuthService define la interfaz de autenticación
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	ValidateToken(signedToken string) (*JWTClaim, error)
	SeedUsuarioInicial(ctx context.Context, admin config.AdminConfig) error
}

// authService implementa AuthService
type authService struct {
	repo   repository.UsuarioRepository
	cfg    config.JWTConfig
	logger *zap.Logger
}

// NewAuthService crea una nueva instancia del servicio
func NewAuthService(repo repository.UsuarioRepository, cfg config.JWTConfig, logger *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Login verifica las credenciales contra el hash almacenado y emite un JWT.
// Cualquier fallo (usuario inexistente, inactivo o password incorrecto)
// retorna el mismo error para no filtrar qué usuarios existen.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	usuario, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error("❌ Error consultando usuario", zap.Error(err))
		return nil, fmt.Errorf("error consultando usuario: %w", err)
	}
	if usuario == nil {
		s.logger.Warn("⚠️ Login fallido: usuario no encontrado",
			zap.String("username", req.Username))
		return nil, ErrCredencialesInvalidas
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("⚠️ Login fallido: password incorrecto",
			zap.String("username", req.Username))
		return nil, ErrCredencialesInvalidas
	}

	token, err := s.generarToken(usuario)
	if err != nil {
		return nil, fmt.Errorf("error generando token: %w", err)
	}

	s.logger.Info("✅ Login exitoso",
		zap.Int("user_id", usuario.ID),
		zap.String("username", usuario.Username))

	resp := &models.LoginResponse{
		Success: true,
		Token:   token,
	}
	resp.Usuario.ID = usuario.ID
	resp.Usuario.Username = usuario.Username
	resp.Usuario.Nombre = usuario.Nombre
	resp.Usuario.Email = usuario.Email

	return resp, nil
}

// SeedUsuarioInicial crea el usuario administrador al arrancar si aún no
// existe, para que haya una sesión utilizable desde el primer despliegue.
// Sin password configurado no se siembra nada; si el usuario ya existe no
// se toca su hash.
func (s *authService) SeedUsuarioInicial(ctx context.Context, admin config.AdminConfig) error {
	if admin.Password == "" {
		return nil
	}

	existente, err := s.repo.GetByUsername(ctx, admin.Username)
	if err != nil {
		return fmt.Errorf("error consultando usuario inicial: %w", err)
	}
	if existente != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error generando hash inicial: %w", err)
	}

	usuario := &models.Usuario{
		Username:     admin.Username,
		PasswordHash: string(hash),
		Nombre:       "Administrador",
		Activo:       true,
	}
	if err := s.repo.Create(ctx, usuario); err != nil {
		return fmt.Errorf("error creando usuario inicial: %w", err)
	}

	s.logger.Info("✅ Usuario administrador creado",
		zap.String("username", admin.Username))
	return nil
}

// ValidateToken parsea y valida un JWT emitido por Login
func (s *authService) ValidateToken(signedToken string) (*JWTClaim, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&JWTClaim{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
			}
			return []byte(s.cfg.Secret), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaim)
	if !ok || !token.Valid {
		return nil, errors.New("token inválido")
	}

	return claims, nil
}

func (s *authService) generarToken(usuario *models.Usuario) (string, error) {
	expiracion := time.Now().Add(time.Duration(s.cfg.ExpiryHours) * time.Hour)
	claims := &JWTClaim{
		UserID:   usuario.ID,
		Username: usuario.Username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiracion.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
