package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ventas-service/internal/models"
)

// CobroRepository define la interfaz para operaciones de cobros
type CobroRepository interface {
	Registrar(ctx context.Context, cobro *models.Cobro) (*models.CobroResultado, error)
	ListAll(ctx context.Context) ([]*models.Cobro, error)
	ListPagos(ctx context.Context) ([]*models.PagoListado, error)
	Delete(ctx context.Context, id int) (*models.CobroResultado, error)
}

// cobroRepository implementa CobroRepository
type cobroRepository struct {
	db    *sql.DB
	stmts map[string]*sql.Stmt
}

// NewCobroRepository crea una nueva instancia del repository
func NewCobroRepository(db *sql.DB) (CobroRepository, error) {
	repo := &cobroRepository{
		db:    db,
		stmts: make(map[string]*sql.Stmt),
	}

	if err := repo.prepareStatements(); err != nil {
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return repo, nil
}

func (r *cobroRepository) prepareStatements() error {
	statements := map[string]string{
		"list_all": `
			SELECT id, venta_id, fecha_pago, liquidacion, banco, monto_pagado,
				   envio, pago_delivery, observaciones
			FROM cobros
			ORDER BY fecha_pago DESC
		`,
		"list_pagos": `
			SELECT cb.id, cb.venta_id, cb.fecha_pago,
				   COALESCE(c.nombre_completo, ''), COALESCE(c.ciudad, ''),
				   COALESCE(c.telefono, ''),
				   cb.liquidacion, cb.banco, cb.monto_pagado, cb.envio,
				   cb.pago_delivery,
				   COALESCE((SELECT SUM(d.subtotal) FROM detalles_venta d WHERE d.venta_id = v.id), 0)
			FROM cobros cb
			JOIN ventas v ON v.id = cb.venta_id
			LEFT JOIN clientes c ON c.id = v.cliente_id
			ORDER BY cb.fecha_pago DESC
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

// Registrar inserta el cobro, descuenta stock de los artículos vendidos y
// recalcula el estado de la venta, todo dentro de una transacción. El stock
// se descuenta solo con el primer cobro de la venta, y el UPDATE usa
// GREATEST para no dejar cantidades negativas bajo concurrencia.
func (r *cobroRepository) Registrar(ctx context.Context, cobro *models.Cobro) (*models.CobroResultado, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// El lock de la venta serializa cobros concurrentes: dos primeros
	// cobros simultáneos no pueden leer ambos COUNT(*)=0
	var ventaID int
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM ventas WHERE id = $1 FOR UPDATE
	`, cobro.VentaID).Scan(&ventaID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock venta: %w", err)
	}

	var cobrosPrevios int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cobros WHERE venta_id = $1
	`, cobro.VentaID).Scan(&cobrosPrevios)
	if err != nil {
		return nil, fmt.Errorf("failed to count cobros: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO cobros
		(venta_id, fecha_pago, liquidacion, banco, monto_pagado, envio, pago_delivery, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, cobro.VentaID, cobro.FechaPago, cobro.Liquidacion, cobro.Banco,
		cobro.MontoPagado, cobro.Envio, cobro.PagoDelivery, cobro.Observaciones,
	).Scan(&cobro.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cobro: %w", err)
	}

	// Solo el primer cobro descuenta el stock; los abonos posteriores de
	// la misma venta no vuelven a descontar
	if cobrosPrevios == 0 {
		if err := descontarStock(ctx, tx, cobro.VentaID); err != nil {
			return nil, err
		}
	}

	resultado, err := recalcularEstado(ctx, tx, cobro.VentaID)
	if err != nil {
		return nil, err
	}
	resultado.CobroID = cobro.ID

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return resultado, nil
}

// ListAll obtiene todos los cobros registrados
func (r *cobroRepository) ListAll(ctx context.Context) ([]*models.Cobro, error) {
	rows, err := r.stmts["list_all"].QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cobros: %w", err)
	}
	defer rows.Close()

	var cobros []*models.Cobro
	for rows.Next() {
		var c models.Cobro
		if err := rows.Scan(
			&c.ID, &c.VentaID, &c.FechaPago, &c.Liquidacion, &c.Banco,
			&c.MontoPagado, &c.Envio, &c.PagoDelivery, &c.Observaciones,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cobro: %w", err)
		}
		cobros = append(cobros, &c)
	}

	return cobros, rows.Err()
}

// ListPagos obtiene los cobros enriquecidos con los datos del cliente y el
// total de la venta, para el listado de pagos de los reportes
func (r *cobroRepository) ListPagos(ctx context.Context) ([]*models.PagoListado, error) {
	rows, err := r.stmts["list_pagos"].QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pagos: %w", err)
	}
	defer rows.Close()

	var pagos []*models.PagoListado
	for rows.Next() {
		var p models.PagoListado
		if err := rows.Scan(
			&p.ID, &p.VentaID, &p.Fecha, &p.Cliente, &p.Ciudad, &p.Telefono,
			&p.Liquidacion, &p.Banco, &p.MontoPagado, &p.Envio,
			&p.PagoDelivery, &p.TotalVenta,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pago: %w", err)
		}
		p.TotalPago = p.MontoPagado + p.PagoDelivery
		pagos = append(pagos, &p)
	}

	return pagos, rows.Err()
}

// Delete elimina un cobro y recalcula el estado de la venta afectada. El
// stock no se repone: la venta sigue hecha, solo se anula el pago.
func (r *cobroRepository) Delete(ctx context.Context, id int) (*models.CobroResultado, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ventaID int
	err = tx.QueryRowContext(ctx, `
		DELETE FROM cobros WHERE id = $1 RETURNING venta_id
	`, id).Scan(&ventaID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete cobro: %w", err)
	}

	resultado, err := recalcularEstado(ctx, tx, ventaID)
	if err != nil {
		return nil, err
	}
	resultado.CobroID = id

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return resultado, nil
}

// descontarStock descuenta del inventario las cantidades vendidas en una
// venta. GREATEST evita dejar stock negativo bajo concurrencia.
func descontarStock(ctx context.Context, tx *sql.Tx, ventaID int) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT articulo_id, cantidad FROM detalles_venta WHERE venta_id = $1
	`, ventaID)
	if err != nil {
		return fmt.Errorf("failed to get detalles: %w", err)
	}

	type descuento struct {
		articuloID int
		cantidad   int
	}
	var descuentos []descuento
	for rows.Next() {
		var d descuento
		if err := rows.Scan(&d.articuloID, &d.cantidad); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan detalle: %w", err)
		}
		descuentos = append(descuentos, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate detalles: %w", err)
	}
	rows.Close()

	for _, d := range descuentos {
		if _, err := tx.ExecContext(ctx, `
			UPDATE articulos
			SET cantidad_stock = GREATEST(cantidad_stock - $1, 0), updated_at = NOW()
			WHERE id = $2
		`, d.cantidad, d.articuloID); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
	}

	return nil
}

// recalcularEstado recomputa el estado de una venta a partir de lo cobrado
// contra el total vendido y lo persiste. Cuando la venta queda pagada, los
// productos vendidos asociados también se marcan pagados.
func recalcularEstado(ctx context.Context, tx *sql.Tx, ventaID int) (*models.CobroResultado, error) {
	var total, cobrado float64
	err := tx.QueryRowContext(ctx, `
		SELECT
			COALESCE((SELECT SUM(subtotal) FROM detalles_venta WHERE venta_id = $1), 0),
			COALESCE((SELECT SUM(monto_pagado + pago_delivery) FROM cobros WHERE venta_id = $1), 0)
	`, ventaID).Scan(&total, &cobrado)
	if err != nil {
		return nil, fmt.Errorf("failed to get totales de venta: %w", err)
	}

	estado := models.CalcularEstado(cobrado, total)

	if _, err := tx.ExecContext(ctx, `
		UPDATE ventas SET estado = $1 WHERE id = $2
	`, estado, ventaID); err != nil {
		return nil, fmt.Errorf("failed to update estado de venta: %w", err)
	}

	if estado == models.EstadoPagado {
		if _, err := tx.ExecContext(ctx, `
			UPDATE productos_vendidos
			SET estado = $1, fecha_pago = NOW()
			WHERE venta_id = $2 AND estado != $1
		`, models.EstadoProductoPagado, ventaID); err != nil {
			return nil, fmt.Errorf("failed to update productos vendidos: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, `
			UPDATE productos_vendidos
			SET estado = $1, fecha_pago = NULL
			WHERE venta_id = $2 AND estado != $1
		`, models.EstadoVendido, ventaID); err != nil {
			return nil, fmt.Errorf("failed to update productos vendidos: %w", err)
		}
	}

	return &models.CobroResultado{
		EstadoVenta: estado,
		TotalVenta:  total,
		Cobrado:     cobrado,
		Pendiente:   total - cobrado,
	}, nil
}
