package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ventas-service/internal/models"
)

// ClienteRepository define la interfaz para operaciones de clientes
type ClienteRepository interface {
	List(ctx context.Context, searchTerm string, pag models.Paginacion) ([]*models.Cliente, int, error)
	ListByTipo(ctx context.Context, tipoCliente string) ([]*models.Cliente, error)
	GetByID(ctx context.Context, id int) (*models.Cliente, error)
	Create(ctx context.Context, cliente *models.Cliente) error
	Update(ctx context.Context, cliente *models.Cliente) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// clienteRepository implementa ClienteRepository
type clienteRepository struct {
	db    *sql.DB
	stmts map[string]*sql.Stmt
}

const clienteColumns = `id, nombre_usuario, nombre_completo, email, telefono,
	   celular, documento_identidad, direccion, ciudad, departamento,
	   tipo_cliente, activo, limite_credito, dias_credito, created_at`

// NewClienteRepository crea una nueva instancia del repository
func NewClienteRepository(db *sql.DB) (ClienteRepository, error) {
	repo := &clienteRepository{
		db:    db,
		stmts: make(map[string]*sql.Stmt),
	}

	if err := repo.prepareStatements(); err != nil {
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return repo, nil
}

func (r *clienteRepository) prepareStatements() error {
	statements := map[string]string{
		"list": `
			SELECT ` + clienteColumns + `
			FROM clientes
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`,
		"list_search": `
			SELECT ` + clienteColumns + `
			FROM clientes
			WHERE nombre_completo ILIKE $1 OR nombre_usuario ILIKE $1
			   OR email ILIKE $1 OR telefono ILIKE $1 OR celular ILIKE $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`,
		"count": `
			SELECT COUNT(*) FROM clientes
		`,
		"count_search": `
			SELECT COUNT(*) FROM clientes
			WHERE nombre_completo ILIKE $1 OR nombre_usuario ILIKE $1
			   OR email ILIKE $1 OR telefono ILIKE $1 OR celular ILIKE $1
		`,
		"list_by_tipo": `
			SELECT ` + clienteColumns + `
			FROM clientes
			WHERE tipo_cliente = $1
			ORDER BY created_at DESC
		`,
		"get_by_id": `
			SELECT ` + clienteColumns + `
			FROM clientes
			WHERE id = $1
		`,
		"create": `
			INSERT INTO clientes
			(nombre_usuario, nombre_completo, email, telefono, celular,
			 documento_identidad, direccion, ciudad, departamento, tipo_cliente,
			 activo, limite_credito, dias_credito)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id, created_at
		`,
		"update": `
			UPDATE clientes
			SET nombre_usuario = $1, nombre_completo = $2, email = $3,
				telefono = $4, celular = $5, documento_identidad = $6,
				direccion = $7, ciudad = $8, departamento = $9,
				tipo_cliente = $10, activo = $11, limite_credito = $12,
				dias_credito = $13
			WHERE id = $14
		`,
		"delete": `
			DELETE FROM clientes WHERE id = $1
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

// List obtiene una página de clientes con conteo exacto
func (r *clienteRepository) List(ctx context.Context, searchTerm string, pag models.Paginacion) ([]*models.Cliente, int, error) {
	var rows *sql.Rows
	var err error
	var total int

	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		if err = r.stmts["count_search"].QueryRowContext(ctx, pattern).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to count clientes: %w", err)
		}
		rows, err = r.stmts["list_search"].QueryContext(ctx, pattern, pag.Limit, pag.Offset())
	} else {
		if err = r.stmts["count"].QueryRowContext(ctx).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to count clientes: %w", err)
		}
		rows, err = r.stmts["list"].QueryContext(ctx, pag.Limit, pag.Offset())
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clientes: %w", err)
	}
	defer rows.Close()

	clientes, err := scanClientes(rows)
	if err != nil {
		return nil, 0, err
	}

	return clientes, total, nil
}

// ListByTipo filtra clientes por tipo (Normal, VIP, Mayorista)
func (r *clienteRepository) ListByTipo(ctx context.Context, tipoCliente string) ([]*models.Cliente, error) {
	rows, err := r.stmts["list_by_tipo"].QueryContext(ctx, tipoCliente)
	if err != nil {
		return nil, fmt.Errorf("failed to list clientes by tipo: %w", err)
	}
	defer rows.Close()

	return scanClientes(rows)
}

// GetByID obtiene un cliente por id
func (r *clienteRepository) GetByID(ctx context.Context, id int) (*models.Cliente, error) {
	var c models.Cliente
	err := r.stmts["get_by_id"].QueryRowContext(ctx, id).Scan(
		&c.ID, &c.NombreUsuario, &c.NombreCompleto, &c.Email, &c.Telefono,
		&c.Celular, &c.DocumentoIdentidad, &c.Direccion, &c.Ciudad,
		&c.Departamento, &c.TipoCliente, &c.Activo, &c.LimiteCredito,
		&c.DiasCredito, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cliente: %w", err)
	}
	return &c, nil
}

// Create inserta un cliente nuevo
func (r *clienteRepository) Create(ctx context.Context, cliente *models.Cliente) error {
	err := r.stmts["create"].QueryRowContext(ctx,
		cliente.NombreUsuario, cliente.NombreCompleto, cliente.Email,
		cliente.Telefono, cliente.Celular, cliente.DocumentoIdentidad,
		cliente.Direccion, cliente.Ciudad, cliente.Departamento,
		cliente.TipoCliente, cliente.Activo, cliente.LimiteCredito,
		cliente.DiasCredito,
	).Scan(&cliente.ID, &cliente.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create cliente: %w", err)
	}

	return nil
}

// Update actualiza un cliente existente
func (r *clienteRepository) Update(ctx context.Context, cliente *models.Cliente) error {
	result, err := r.stmts["update"].ExecContext(ctx,
		cliente.NombreUsuario, cliente.NombreCompleto, cliente.Email,
		cliente.Telefono, cliente.Celular, cliente.DocumentoIdentidad,
		cliente.Direccion, cliente.Ciudad, cliente.Departamento,
		cliente.TipoCliente, cliente.Activo, cliente.LimiteCredito,
		cliente.DiasCredito, cliente.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cliente: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no cliente found with id %d", cliente.ID)
	}

	return nil
}

// Delete elimina un cliente
func (r *clienteRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.stmts["delete"].ExecContext(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cliente: %w", err)
	}
	return nil
}

// Count retorna el total de clientes
func (r *clienteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.stmts["count"].QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clientes: %w", err)
	}
	return count, nil
}

func scanClientes(rows *sql.Rows) ([]*models.Cliente, error) {
	var clientes []*models.Cliente
	for rows.Next() {
		var c models.Cliente
		err := rows.Scan(
			&c.ID, &c.NombreUsuario, &c.NombreCompleto, &c.Email, &c.Telefono,
			&c.Celular, &c.DocumentoIdentidad, &c.Direccion, &c.Ciudad,
			&c.Departamento, &c.TipoCliente, &c.Activo, &c.LimiteCredito,
			&c.DiasCredito, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cliente: %w", err)
		}
		clientes = append(clientes, &c)
	}
	return clientes, rows.Err()
}
