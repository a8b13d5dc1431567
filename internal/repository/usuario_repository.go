package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ventas-service/internal/models"
)

// UsuarioRepository define la interfaz para operaciones de usuarios
type UsuarioRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Usuario, error)
	Create(ctx context.Context, usuario *models.Usuario) error
}

// usuarioRepository implementa UsuarioRepository
type usuarioRepository struct {
	db    *sql.DB
	stmts map[string]*sql.Stmt
}

// NewUsuarioRepository crea una nueva instancia del repository
func NewUsuarioRepository(db *sql.DB) (UsuarioRepository, error) {
	repo := &usuarioRepository{
		db:    db,
		stmts: make(map[string]*sql.Stmt),
	}

	if err := repo.prepareStatements(); err != nil {
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return repo, nil
}

func (r *usuarioRepository) prepareStatements() error {
	statements := map[string]string{
		"get_by_username": `
			SELECT id, username, email, password_hash, nombre, activo, created_at
			FROM usuarios
			WHERE username = $1 AND activo = true
		`,
		"create": `
			INSERT INTO usuarios (username, email, password_hash, nombre, activo)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`,
	}

	for name, query := range statements {
		stmt, err := r.db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare %s: %w", name, err)
		}
		r.stmts[name] = stmt
	}

	return nil
}

// GetByUsername obtiene un usuario activo por su nombre de usuario
func (r *usuarioRepository) GetByUsername(ctx context.Context, username string) (*models.Usuario, error) {
	var u models.Usuario
	err := r.stmts["get_by_username"].QueryRowContext(ctx, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Nombre, &u.Activo, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get usuario: %w", err)
	}

	return &u, nil
}

// Create inserta un nuevo usuario
func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	err := r.stmts["create"].QueryRowContext(ctx,
		usuario.Username, usuario.Email, usuario.PasswordHash, usuario.Nombre, usuario.Activo,
	).Scan(&usuario.ID, &usuario.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create usuario: %w", err)
	}

	return nil
}
