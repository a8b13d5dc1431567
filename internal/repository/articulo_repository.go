package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ventas-service/internal/models"
)

// ArticuloRepository define la interfaz para operaciones de artículos
type ArticuloRepository interface {
	List(ctx context.Context, searchTerm string, pag models.Paginacion) ([]*models.Articulo, int, error)
	ListAll(ctx context.Context) ([]*models.Articulo, error)
	GetByID(ctx context.Context, id int) (*models.Articulo, error)
	GetByCodigo(ctx context.Context, codigo string) (*models.Articulo, error)
	Create(ctx context.Context, articulo *models.Articulo) error
	Update(ctx context.Context, articulo *models.Articulo) error
	Delete(ctx context.Context, id int) error
	GetStockBajo(ctx context.Context) ([]*models.Articulo, error)
}

// articuloRepository implementa ArticuloRepository
type articuloRepository struct {
	db    *sql.DB
	stmts map[string]*sql.Stmt
}

const articuloColumns = `id, codigo, nombre, cantidad_stock, cantidad_minima,
	   precio_costo, precio_unitario, categoria, descripcion, foto_url, enlace,
	   created_at, updated_at`

// NewArticuloRepository crea una nueva instancia del repository
func NewArticuloRepository(db *sql.DB) (ArticuloRepository, error) {
	repo := &articuloRepository{
		db:    db,
		stmts: make(map[string]*sql.Stmt),
	}

	if err := repo.prepareStatements(); err != nil {
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return repo, nil
}

// prepareStatements prepara todas las consultas SQL
func (r *articuloRepository) prepareStatements() error {
	statements := map[string]string{
		"list": `
			SELECT ` + articuloColumns + `
			FROM articulos
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`,
		"list_search": `
			SELECT ` + articuloColumns + `
			FROM articulos
			WHERE nombre ILIKE $1 OR codigo ILIKE $1 OR categoria ILIKE $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`,
		"count": `
			SELECT COUNT(*) FROM articulos
		`,
		"count_search": `
			SELECT COUNT(*) FROM articulos
			WHERE nombre ILIKE $1 OR codigo ILIKE $1 OR categoria ILIKE $1
		`,
		"list_all": `
			SELECT ` + articuloColumns + `
			FROM articulos
			ORDER BY nombre
		`,
		"get_by_id": `
			SELECT ` + articuloColumns + `
			FROM articulos
			WHERE id = $1
		`,
		"get_by_codigo": `
			SELECT ` + articuloColumns + `
			FROM articulos
			WHERE codigo = $1
		`,
		"create": `
			INSERT INTO articulos
			(codigo, nombre, cantidad_stock, cantidad_minima, precio_costo,
			 precio_unitario, categoria, descripcion, foto_url, enlace)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at
		`,
		"update": `
			UPDATE articulos
			SET nombre = $1, cantidad_stock = $2, cantidad_minima = $3,
				precio_costo = $4, precio_unitario = $5, categoria = $6,
				descripcion = $7, foto_url = $8, enlace = $9, updated_at = NOW()
			WHERE id = $10
		`,
		"delete": `
			DELETE FROM articulos WHERE id = $1
		`,
		"stock_bajo": `
			SELECT ` + articuloColumns + `
			FROM articulos
			WHERE cantidad_stock <= cantidad_minima
			ORDER BY cantidad_stock ASC
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

// List obtiene una página de artículos con conteo exacto. La búsqueda es
// un substring case-insensitive sobre nombre, código y categoría.
func (r *articuloRepository) List(ctx context.Context, searchTerm string, pag models.Paginacion) ([]*models.Articulo, int, error) {
	var rows *sql.Rows
	var err error
	var total int

	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		if err = r.stmts["count_search"].QueryRowContext(ctx, pattern).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to count articulos: %w", err)
		}
		rows, err = r.stmts["list_search"].QueryContext(ctx, pattern, pag.Limit, pag.Offset())
	} else {
		if err = r.stmts["count"].QueryRowContext(ctx).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to count articulos: %w", err)
		}
		rows, err = r.stmts["list"].QueryContext(ctx, pag.Limit, pag.Offset())
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articulos: %w", err)
	}
	defer rows.Close()

	articulos, err := scanArticulos(rows)
	if err != nil {
		return nil, 0, err
	}

	return articulos, total, nil
}

// ListAll obtiene todos los artículos (dashboard y reportes)
func (r *articuloRepository) ListAll(ctx context.Context) ([]*models.Articulo, error) {
	rows, err := r.stmts["list_all"].QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articulos: %w", err)
	}
	defer rows.Close()

	return scanArticulos(rows)
}

// GetByID obtiene un artículo por id
func (r *articuloRepository) GetByID(ctx context.Context, id int) (*models.Articulo, error) {
	return r.getOne(ctx, "get_by_id", id)
}

// GetByCodigo obtiene un artículo por código
func (r *articuloRepository) GetByCodigo(ctx context.Context, codigo string) (*models.Articulo, error) {
	return r.getOne(ctx, "get_by_codigo", codigo)
}

func (r *articuloRepository) getOne(ctx context.Context, stmt string, arg interface{}) (*models.Articulo, error) {
	var a models.Articulo
	err := r.stmts[stmt].QueryRowContext(ctx, arg).Scan(
		&a.ID, &a.Codigo, &a.Nombre, &a.CantidadStock, &a.CantidadMinima,
		&a.PrecioCosto, &a.PrecioUnitario, &a.Categoria, &a.Descripcion,
		&a.FotoURL, &a.Enlace, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get articulo: %w", err)
	}
	return &a, nil
}

// Create inserta un artículo nuevo
func (r *articuloRepository) Create(ctx context.Context, articulo *models.Articulo) error {
	err := r.stmts["create"].QueryRowContext(ctx,
		articulo.Codigo, articulo.Nombre, articulo.CantidadStock, articulo.CantidadMinima,
		articulo.PrecioCosto, articulo.PrecioUnitario, articulo.Categoria,
		articulo.Descripcion, articulo.FotoURL, articulo.Enlace,
	).Scan(&articulo.ID, &articulo.CreatedAt, &articulo.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create articulo: %w", err)
	}

	return nil
}

// Update actualiza un artículo. El código es inmutable y nunca se toca.
func (r *articuloRepository) Update(ctx context.Context, articulo *models.Articulo) error {
	result, err := r.stmts["update"].ExecContext(ctx,
		articulo.Nombre, articulo.CantidadStock, articulo.CantidadMinima,
		articulo.PrecioCosto, articulo.PrecioUnitario, articulo.Categoria,
		articulo.Descripcion, articulo.FotoURL, articulo.Enlace, articulo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update articulo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no articulo found with id %d", articulo.ID)
	}

	return nil
}

// Delete elimina un artículo
func (r *articuloRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.stmts["delete"].ExecContext(ctx, id); err != nil {
		return fmt.Errorf("failed to delete articulo: %w", err)
	}
	return nil
}

// GetStockBajo obtiene artículos en o bajo su cantidad mínima
func (r *articuloRepository) GetStockBajo(ctx context.Context) ([]*models.Articulo, error) {
	rows, err := r.stmts["stock_bajo"].QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock bajo: %w", err)
	}
	defer rows.Close()

	return scanArticulos(rows)
}

func scanArticulos(rows *sql.Rows) ([]*models.Articulo, error) {
	var articulos []*models.Articulo
	for rows.Next() {
		var a models.Articulo
		err := rows.Scan(
			&a.ID, &a.Codigo, &a.Nombre, &a.CantidadStock, &a.CantidadMinima,
			&a.PrecioCosto, &a.PrecioUnitario, &a.Categoria, &a.Descripcion,
			&a.FotoURL, &a.Enlace, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan articulo: %w", err)
		}
		articulos = append(articulos, &a)
	}
	return articulos, rows.Err()
}
