package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ventas-service/internal/models"
)

// VentaRepository define la interfaz para operaciones de ventas
type VentaRepository interface {
	List(ctx context.Context, searchTerm string, pag models.Paginacion) ([]*models.VentaConDetalles, int, error)
	ListConDetalles(ctx context.Context, estado string) ([]*models.VentaConDetalles, error)
	GetConDetalles(ctx context.Context, id int) (*models.VentaConDetalles, error)
	CrearConDetalles(ctx context.Context, venta *models.Venta, detalles []models.DetalleVenta) error
	Delete(ctx context.Context, id int) error
}

// ventaRepository implementa VentaRepository
type ventaRepository struct {
	db    *sql.DB
	stmts map[string]*sql.Stmt
}

// NewVentaRepository crea una nueva instancia del repository
func NewVentaRepository(db *sql.DB) (VentaRepository, error) {
	repo := &ventaRepository{
		db:    db,
		stmts: make(map[string]*sql.Stmt),
	}

	if err := repo.prepareStatements(); err != nil {
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return repo, nil
}

func (r *ventaRepository) prepareStatements() error {
	statements := map[string]string{
		"list": `
			SELECT v.id, v.cliente_id, v.fecha_venta, v.estado, v.observaciones, v.created_at
			FROM ventas v
			ORDER BY v.fecha_venta DESC
			LIMIT $1 OFFSET $2
		`,
		"list_search": `
			SELECT v.id, v.cliente_id, v.fecha_venta, v.estado, v.observaciones, v.created_at
			FROM ventas v
			JOIN clientes c ON c.id = v.cliente_id
			WHERE c.nombre_completo ILIKE $1
			ORDER BY v.fecha_venta DESC
			LIMIT $2 OFFSET $3
		`,
		"count": `
			SELECT COUNT(*) FROM ventas
		`,
		"count_search": `
			SELECT COUNT(*)
			FROM ventas v
			JOIN clientes c ON c.id = v.cliente_id
			WHERE c.nombre_completo ILIKE $1
		`,
		"list_all": `
			SELECT v.id, v.cliente_id, v.fecha_venta, v.estado, v.observaciones, v.created_at
			FROM ventas v
			ORDER BY v.fecha_venta DESC
		`,
		"list_by_estado": `
			SELECT v.id, v.cliente_id, v.fecha_venta, v.estado, v.observaciones, v.created_at
			FROM ventas v
			WHERE v.estado = $1
			ORDER BY v.fecha_venta DESC
		`,
		"get_by_id": `
			SELECT v.id, v.cliente_id, v.fecha_venta, v.estado, v.observaciones, v.created_at
			FROM ventas v
			WHERE v.id = $1
		`,
		"get_detalles": `
			SELECT d.id, d.venta_id, d.articulo_id, d.cantidad, d.precio_unitario,
				   d.subtotal, a.nombre, a.codigo
			FROM detalles_venta d
			LEFT JOIN articulos a ON a.id = d.articulo_id
			WHERE d.venta_id = $1
			ORDER BY d.id
		`,
		"get_cobros": `
			SELECT id, venta_id, fecha_pago, liquidacion, banco, monto_pagado,
				   envio, pago_delivery, observaciones
			FROM cobros
			WHERE venta_id = $1
			ORDER BY fecha_pago
		`,
		"delete": `
			DELETE FROM ventas WHERE id = $1
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

// List obtiene una página de ventas con cliente, detalles y cobros. La
// búsqueda es por nombre del cliente.
func (r *ventaRepository) List(ctx context.Context, searchTerm string, pag models.Paginacion) ([]*models.VentaConDetalles, int, error) {
	var rows *sql.Rows
	var err error
	var total int

	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		if err = r.stmts["count_search"].QueryRowContext(ctx, pattern).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to count ventas: %w", err)
		}
		rows, err = r.stmts["list_search"].QueryContext(ctx, pattern, pag.Limit, pag.Offset())
	} else {
		if err = r.stmts["count"].QueryRowContext(ctx).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to count ventas: %w", err)
		}
		rows, err = r.stmts["list"].QueryContext(ctx, pag.Limit, pag.Offset())
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ventas: %w", err)
	}

	ventas, err := r.scanYCompletar(ctx, rows)
	if err != nil {
		return nil, 0, err
	}

	return ventas, total, nil
}

// ListConDetalles obtiene todas las ventas con sus relaciones, opcionalmente
// filtradas por estado (estado vacío = todas). Es la consulta amplia que
// alimentan los reportes.
func (r *ventaRepository) ListConDetalles(ctx context.Context, estado string) ([]*models.VentaConDetalles, error) {
	var rows *sql.Rows
	var err error

	if estado != "" {
		rows, err = r.stmts["list_by_estado"].QueryContext(ctx, estado)
	} else {
		rows, err = r.stmts["list_all"].QueryContext(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list ventas: %w", err)
	}

	return r.scanYCompletar(ctx, rows)
}

// GetConDetalles obtiene una venta con cliente, detalles y cobros
func (r *ventaRepository) GetConDetalles(ctx context.Context, id int) (*models.VentaConDetalles, error) {
	var v models.VentaConDetalles
	err := r.stmts["get_by_id"].QueryRowContext(ctx, id).Scan(
		&v.ID, &v.ClienteID, &v.FechaVenta, &v.Estado, &v.Observaciones, &v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venta: %w", err)
	}

	if err := r.completar(ctx, &v); err != nil {
		return nil, err
	}

	return &v, nil
}

// CrearConDetalles inserta la venta, sus detalles y los registros históricos
// de productos vendidos en una sola transacción: un fallo en cualquier paso
// no deja una venta huérfana.
func (r *ventaRepository) CrearConDetalles(ctx context.Context, venta *models.Venta, detalles []models.DetalleVenta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO ventas (cliente_id, fecha_venta, estado, observaciones)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, venta.ClienteID, venta.FechaVenta, venta.Estado, venta.Observaciones,
	).Scan(&venta.ID, &venta.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create venta: %w", err)
	}

	stmtDetalle, err := tx.PrepareContext(ctx, `
		INSERT INTO detalles_venta (venta_id, articulo_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare detalle statement: %w", err)
	}
	defer stmtDetalle.Close()

	stmtVendido, err := tx.PrepareContext(ctx, `
		INSERT INTO productos_vendidos
		(articulo_id, venta_id, cantidad, precio_unitario, subtotal, fecha_venta, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare producto vendido statement: %w", err)
	}
	defer stmtVendido.Close()

	for _, det := range detalles {
		if _, err := stmtDetalle.ExecContext(ctx,
			venta.ID, det.ArticuloID, det.Cantidad, det.PrecioUnitario, det.Subtotal,
		); err != nil {
			return fmt.Errorf("failed to create detalle: %w", err)
		}

		if _, err := stmtVendido.ExecContext(ctx,
			det.ArticuloID, venta.ID, det.Cantidad, det.PrecioUnitario,
			det.Subtotal, venta.FechaVenta, models.EstadoVendido,
		); err != nil {
			return fmt.Errorf("failed to create producto vendido: %w", err)
		}
	}

	return tx.Commit()
}

// Delete elimina una venta
func (r *ventaRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.stmts["delete"].ExecContext(ctx, id); err != nil {
		return fmt.Errorf("failed to delete venta: %w", err)
	}
	return nil
}

// scanYCompletar escanea las filas de ventas y carga cliente, detalles y
// cobros de cada una. Cierra rows antes de lanzar las consultas anidadas.
func (r *ventaRepository) scanYCompletar(ctx context.Context, rows *sql.Rows) ([]*models.VentaConDetalles, error) {
	var ventas []*models.VentaConDetalles
	for rows.Next() {
		var v models.VentaConDetalles
		if err := rows.Scan(
			&v.ID, &v.ClienteID, &v.FechaVenta, &v.Estado, &v.Observaciones, &v.CreatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan venta: %w", err)
		}
		ventas = append(ventas, &v)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate ventas: %w", err)
	}
	rows.Close()

	for _, v := range ventas {
		if err := r.completar(ctx, v); err != nil {
			return nil, err
		}
	}

	return ventas, nil
}

func (r *ventaRepository) completar(ctx context.Context, v *models.VentaConDetalles) error {
	var cliente models.Cliente
	err := r.db.QueryRowContext(ctx, `
		SELECT `+clienteColumns+`
		FROM clientes WHERE id = $1
	`, v.ClienteID).Scan(
		&cliente.ID, &cliente.NombreUsuario, &cliente.NombreCompleto,
		&cliente.Email, &cliente.Telefono, &cliente.Celular,
		&cliente.DocumentoIdentidad, &cliente.Direccion, &cliente.Ciudad,
		&cliente.Departamento, &cliente.TipoCliente, &cliente.Activo,
		&cliente.LimiteCredito, &cliente.DiasCredito, &cliente.CreatedAt,
	)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to get cliente de venta: %w", err)
	}
	if err == nil {
		v.Cliente = &cliente
	}

	detRows, err := r.stmts["get_detalles"].QueryContext(ctx, v.ID)
	if err != nil {
		return fmt.Errorf("failed to get detalles: %w", err)
	}
	defer detRows.Close()

	v.Detalles = []models.DetalleVenta{}
	for detRows.Next() {
		var d models.DetalleVenta
		if err := detRows.Scan(
			&d.ID, &d.VentaID, &d.ArticuloID, &d.Cantidad, &d.PrecioUnitario,
			&d.Subtotal, &d.ArticuloNombre, &d.ArticuloCodigo,
		); err != nil {
			return fmt.Errorf("failed to scan detalle: %w", err)
		}
		v.Detalles = append(v.Detalles, d)
	}

	cobRows, err := r.stmts["get_cobros"].QueryContext(ctx, v.ID)
	if err != nil {
		return fmt.Errorf("failed to get cobros: %w", err)
	}
	defer cobRows.Close()

	v.Cobros = []models.Cobro{}
	for cobRows.Next() {
		var c models.Cobro
		if err := cobRows.Scan(
			&c.ID, &c.VentaID, &c.FechaPago, &c.Liquidacion, &c.Banco,
			&c.MontoPagado, &c.Envio, &c.PagoDelivery, &c.Observaciones,
		); err != nil {
			return fmt.Errorf("failed to scan cobro: %w", err)
		}
		v.Cobros = append(v.Cobros, c)
	}

	return nil
}
