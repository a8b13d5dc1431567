package services

import (
	"context"
	"errors"
	"testing"

	"ventas-service/internal/config"
	"ventas-service/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func nuevoAuthService(t *testing.T) (AuthService, *fakeUsuarioRepo) {
	t.Helper()

	repo := newFakeUsuarioRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generando hash: %v", err)
	}
	if err := repo.Create(context.Background(), &models.Usuario{
		Username:     "admin",
		Email:        "admin@ventas.hn",
		PasswordHash: string(hash),
		Nombre:       "Administrador",
		Activo:       true,
	}); err != nil {
		t.Fatalf("creando usuario: %v", err)
	}

	cfg := config.JWTConfig{Secret: "clave-de-prueba", ExpiryHours: 24}
	return NewAuthService(repo, cfg, zap.NewNop()), repo
}

func TestLoginYValidacionDeToken(t *testing.T) {
	service, _ := nuevoAuthService(t)

	resp, err := service.Login(context.Background(), &models.LoginRequest{
		Username: "admin",
		Password: "secreto123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if !resp.Success || resp.Token == "" {
		t.Fatal("el login exitoso debe retornar un token")
	}
	if resp.Usuario.Username != "admin" || resp.Usuario.Nombre != "Administrador" {
		t.Errorf("usuario en la respuesta = %+v", resp.Usuario)
	}

	claims, err := service.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("username en claims = %q, esperado admin", claims.Username)
	}
	if claims.UserID != resp.Usuario.ID {
		t.Errorf("user_id en claims = %d, esperado %d", claims.UserID, resp.Usuario.ID)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("el token debe expirar después de emitirse")
	}
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	service, _ := nuevoAuthService(t)

	casos := []struct {
		nombre string
		req    *models.LoginRequest
	}{
		{"password incorrecto", &models.LoginRequest{Username: "admin", Password: "otra"}},
		{"usuario inexistente", &models.LoginRequest{Username: "nadie", Password: "secreto123"}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := service.Login(context.Background(), c.req)
			if !errors.Is(err, ErrCredencialesInvalidas) {
				t.Fatalf("esperado ErrCredencialesInvalidas, got %v", err)
			}
		})
	}
}

func TestSeedUsuarioInicial(t *testing.T) {
	repo := newFakeUsuarioRepo()
	cfg := config.JWTConfig{Secret: "clave-de-prueba", ExpiryHours: 24}
	service := NewAuthService(repo, cfg, zap.NewNop())

	admin := config.AdminConfig{Username: "admin", Password: "inicial123"}
	if err := service.SeedUsuarioInicial(context.Background(), admin); err != nil {
		t.Fatalf("SeedUsuarioInicial: %v", err)
	}

	resp, err := service.Login(context.Background(), &models.LoginRequest{
		Username: "admin",
		Password: "inicial123",
	})
	if err != nil {
		t.Fatalf("Login con el usuario sembrado: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatal("el usuario sembrado debe poder iniciar sesión")
	}

	// Volver a sembrar no pisa el hash existente
	hashOriginal := repo.usuarios["admin"].PasswordHash
	admin.Password = "otra-clave"
	if err := service.SeedUsuarioInicial(context.Background(), admin); err != nil {
		t.Fatalf("SeedUsuarioInicial repetido: %v", err)
	}
	if repo.usuarios["admin"].PasswordHash != hashOriginal {
		t.Error("sembrar de nuevo no debe cambiar el password del usuario existente")
	}
}

func TestSeedUsuarioInicialSinPassword(t *testing.T) {
	repo := newFakeUsuarioRepo()
	cfg := config.JWTConfig{Secret: "clave-de-prueba", ExpiryHours: 24}
	service := NewAuthService(repo, cfg, zap.NewNop())

	admin := config.AdminConfig{Username: "admin"}
	if err := service.SeedUsuarioInicial(context.Background(), admin); err != nil {
		t.Fatalf("SeedUsuarioInicial: %v", err)
	}
	if len(repo.usuarios) != 0 {
		t.Error("sin password configurado no debe crearse ningún usuario")
	}
}

func TestValidateTokenRechazaBasura(t *testing.T) {
	service, _ := nuevoAuthService(t)

	if _, err := service.ValidateToken("no-es-un-jwt"); err == nil {
		t.Error("un token malformado debe rechazarse")
	}

	// Token firmado con otro secreto
	otro := NewAuthService(newFakeUsuarioRepo(), config.JWTConfig{Secret: "otro-secreto", ExpiryHours: 1}, zap.NewNop())

	resp, err := service.Login(context.Background(), &models.LoginRequest{
		Username: "admin",
		Password: "secreto123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := otro.ValidateToken(resp.Token); err == nil {
		t.Error("un token firmado con otro secreto debe rechazarse")
	}
}
