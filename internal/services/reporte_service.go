package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"ventas-service/internal/models"
	"ventas-service/internal/repository"

	"go.uber.org/zap"
)

const ciudadSinEspecificar = "SIN CIUDAD"

// ReporteService define la interfaz de reportes, dashboard y exportaciones
type ReporteService interface {
	ReporteVentas(ctx context.Context, filtro string, inicio, fin time.Time, estado string) (*models.ReporteVentas, error)
	ResumenVentas(ctx context.Context, filtro string, inicio, fin time.Time) (*models.ResumenVentas, error)
	ResumenLiquidaciones(ctx context.Context, filtro string, inicio, fin time.Time) (*models.ResumenLiquidaciones, error)
	ResumenCobranza(ctx context.Context) (*models.ResumenCobranza, error)
	ListPagos(ctx context.Context, filtro string, inicio, fin time.Time) ([]*models.PagoListado, error)
	VentasPendientes(ctx context.Context) ([]*models.VentaPendiente, error)
	TopClientes(ctx context.Context, limit int) ([]*models.TopCliente, error)
	ClientesConDeuda(ctx context.Context) ([]*models.TopCliente, error)
	ArticulosMasVendidos(ctx context.Context, limit int) ([]*models.ArticuloVendido, error)
	Dashboard(ctx context.Context, filtro string, inicio, fin time.Time) (*models.DashboardResumen, error)
	EtiquetasVentas(ctx context.Context, filtro string, inicio, fin time.Time) (map[string][]models.EtiquetaVenta, error)
	ExportarVentasCSV(ctx context.Context, filtro string, inicio, fin time.Time, estado string) ([]byte, error)
	ExportarClientesCSV(ctx context.Context) ([]byte, error)
}

// reporteService implementa ReporteService
type reporteService struct {
	ventaRepo    repository.VentaRepository
	cobroRepo    repository.CobroRepository
	articuloRepo repository.ArticuloRepository
	clienteRepo  repository.ClienteRepository
	logger       *zap.Logger
}

// NewReporteService crea una nueva instancia del servicio
func NewReporteService(
	ventaRepo repository.VentaRepository,
	cobroRepo repository.CobroRepository,
	articuloRepo repository.ArticuloRepository,
	clienteRepo repository.ClienteRepository,
	logger *zap.Logger,
) ReporteService {
	return &reporteService{
		ventaRepo:    ventaRepo,
		cobroRepo:    cobroRepo,
		articuloRepo: articuloRepo,
		clienteRepo:  clienteRepo,
		logger:       logger,
	}
}

// ventasFiltradas carga las ventas (opcionalmente por estado) y aplica el
// filtro de período en memoria sobre la fecha de venta
func (s *reporteService) ventasFiltradas(ctx context.Context, filtro string, inicioCustom, finCustom time.Time, estado string) ([]*models.VentaConDetalles, error) {
	ventas, err := s.ventaRepo.ListConDetalles(ctx, estado)
	if err != nil {
		return nil, fmt.Errorf("error listando ventas para reporte: %w", err)
	}

	inicio, fin, ok := models.RangoPeriodo(filtro, time.Now(), inicioCustom, finCustom)
	if !ok {
		return ventas, nil
	}

	filtradas := ventas[:0:0]
	for _, v := range ventas {
		if models.EnRango(v.FechaVenta, inicio, fin) {
			filtradas = append(filtradas, v)
		}
	}
	return filtradas, nil
}

// ReporteVentas agrupa las ventas del período por ciudad y dentro de cada
// ciudad por cliente, con totales vendido/cobrado por cliente y globales.
// El estado es opcional: vacío incluye todas las ventas.
func (s *reporteService) ReporteVentas(ctx context.Context, filtro string, inicio, fin time.Time, estado string) (*models.ReporteVentas, error) {
	ventas, err := s.ventasFiltradas(ctx, filtro, inicio, fin, estado)
	if err != nil {
		return nil, err
	}

	reporte := &models.ReporteVentas{
		PorCiudad: make(map[string]map[string]*models.ClienteVentas),
	}

	for _, v := range ventas {
		ciudad, cliente := ciudadYCliente(v)

		clientes, ok := reporte.PorCiudad[ciudad]
		if !ok {
			clientes = make(map[string]*models.ClienteVentas)
			reporte.PorCiudad[ciudad] = clientes
		}

		acumulado, ok := clientes[cliente]
		if !ok {
			acumulado = &models.ClienteVentas{}
			clientes[cliente] = acumulado
		}

		total := v.Total()
		cobrado := v.TotalCobrado()

		acumulado.Ventas = append(acumulado.Ventas, models.VentaReporte{
			ID:       v.ID,
			Fecha:    v.FechaVenta,
			Estado:   v.Estado,
			Detalles: v.Detalles,
			Total:    total,
		})
		acumulado.TotalCliente += total
		acumulado.Cobrado += cobrado

		reporte.Resumen.TotalVentas += total
		reporte.Resumen.TotalCobrado += cobrado
		reporte.Resumen.TotalVentasCount++
	}
	reporte.Resumen.TotalPendiente = reporte.Resumen.TotalVentas - reporte.Resumen.TotalCobrado

	return reporte, nil
}

// ResumenVentas cuenta y suma las ventas del período por estado
func (s *reporteService) ResumenVentas(ctx context.Context, filtro string, inicio, fin time.Time) (*models.ResumenVentas, error) {
	ventas, err := s.ventasFiltradas(ctx, filtro, inicio, fin, "")
	if err != nil {
		return nil, err
	}

	resumen := &models.ResumenVentas{}
	for _, v := range ventas {
		total := v.Total()
		resumen.TotalVentas++
		resumen.MontoTotal += total

		switch v.Estado {
		case models.EstadoPagado:
			resumen.VentasPagadas++
			resumen.MontoPagado += total
		case models.EstadoParcial:
			resumen.VentasParciales++
			resumen.MontoParcial += total
		default:
			resumen.VentasPendientes++
			resumen.MontoPendiente += total
		}
	}

	return resumen, nil
}

// ResumenLiquidaciones agrupa los cobros del período por método de pago.
// Los cobros BANCOS se agrupan bajo el nombre del banco y esos grupos van
// primero en el listado.
func (s *reporteService) ResumenLiquidaciones(ctx context.Context, filtro string, inicio, fin time.Time) (*models.ResumenLiquidaciones, error) {
	cobros, err := s.cobroRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listando cobros para reporte: %w", err)
	}

	rangoInicio, rangoFin, acotado := models.RangoPeriodo(filtro, time.Now(), inicio, fin)

	grupos := make(map[string]*models.LiquidacionGrupo)
	resumen := &models.ResumenLiquidaciones{}

	for _, c := range cobros {
		if acotado && !models.EnRango(c.FechaPago, rangoInicio, rangoFin) {
			continue
		}

		metodo := c.MetodoAgrupacion()
		grupo, ok := grupos[metodo]
		if !ok {
			tipo := c.Liquidacion
			if tipo == "" {
				tipo = "SIN ESPECIFICAR"
			}
			grupo = &models.LiquidacionGrupo{Metodo: metodo, Tipo: tipo}
			grupos[metodo] = grupo
		}

		monto := c.Total()
		grupo.Cantidad++
		grupo.Monto += monto
		resumen.TotalGeneral += monto
	}

	for _, grupo := range grupos {
		if resumen.TotalGeneral > 0 {
			grupo.Porcentaje = grupo.Monto / resumen.TotalGeneral * 100
		}
		resumen.Liquidaciones = append(resumen.Liquidaciones, *grupo)
	}

	sort.Slice(resumen.Liquidaciones, func(i, j int) bool {
		a, b := resumen.Liquidaciones[i], resumen.Liquidaciones[j]
		aBanco := a.Tipo == models.LiquidacionBancos
		bBanco := b.Tipo == models.LiquidacionBancos
		if aBanco != bBanco {
			return aBanco
		}
		if a.Monto != b.Monto {
			return a.Monto > b.Monto
		}
		return a.Metodo < b.Metodo
	})

	return resumen, nil
}

// ResumenCobranza suma los cobros del día, la semana y el mes en curso
func (s *reporteService) ResumenCobranza(ctx context.Context) (*models.ResumenCobranza, error) {
	cobros, err := s.cobroRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listando cobros para reporte: %w", err)
	}

	ahora := time.Now()
	inicioDia, finDia, _ := models.RangoPeriodo(models.PeriodoHoy, ahora, time.Time{}, time.Time{})
	inicioSemana, finSemana, _ := models.RangoPeriodo(models.PeriodoEstaSemana, ahora, time.Time{}, time.Time{})
	inicioMes, finMes, _ := models.RangoPeriodo(models.PeriodoEsteMes, ahora, time.Time{}, time.Time{})

	resumen := &models.ResumenCobranza{}
	for _, c := range cobros {
		monto := c.Total()
		resumen.TotalGeneral += monto
		resumen.CantidadPagos++

		if models.EnRango(c.FechaPago, inicioDia, finDia) {
			resumen.TotalDia += monto
		}
		if models.EnRango(c.FechaPago, inicioSemana, finSemana) {
			resumen.TotalSemana += monto
		}
		if models.EnRango(c.FechaPago, inicioMes, finMes) {
			resumen.TotalMes += monto
		}
	}

	return resumen, nil
}

// ListPagos lista los cobros del período con datos del cliente y su venta
func (s *reporteService) ListPagos(ctx context.Context, filtro string, inicio, fin time.Time) ([]*models.PagoListado, error) {
	pagos, err := s.cobroRepo.ListPagos(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listando pagos: %w", err)
	}

	rangoInicio, rangoFin, acotado := models.RangoPeriodo(filtro, time.Now(), inicio, fin)
	if !acotado {
		return pagos, nil
	}

	filtrados := pagos[:0:0]
	for _, p := range pagos {
		if models.EnRango(p.Fecha, rangoInicio, rangoFin) {
			filtrados = append(filtrados, p)
		}
	}
	return filtrados, nil
}

// VentasPendientes lista las ventas no pagadas con su saldo, mayor saldo
// primero
func (s *reporteService) VentasPendientes(ctx context.Context) ([]*models.VentaPendiente, error) {
	ventas, err := s.ventaRepo.ListConDetalles(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("error listando ventas para reporte: %w", err)
	}

	var pendientes []*models.VentaPendiente
	for _, v := range ventas {
		if v.Estado == models.EstadoPagado {
			continue
		}

		total := v.Total()
		cobrado := v.TotalCobrado()
		_, cliente := ciudadYCliente(v)

		pendiente := &models.VentaPendiente{
			VentaID:   v.ID,
			Fecha:     v.FechaVenta,
			Cliente:   cliente,
			Total:     total,
			Cobrado:   cobrado,
			Pendiente: total - cobrado,
			Estado:    v.Estado,
		}
		if v.Cliente != nil {
			pendiente.Ciudad = derefONada(v.Cliente.Ciudad)
			pendiente.Telefono = derefONada(v.Cliente.Telefono)
			pendiente.Email = derefONada(v.Cliente.Email)
		}
		pendientes = append(pendientes, pendiente)
	}

	sort.Slice(pendientes, func(i, j int) bool {
		if pendientes[i].Pendiente != pendientes[j].Pendiente {
			return pendientes[i].Pendiente > pendientes[j].Pendiente
		}
		return pendientes[i].Fecha.Before(pendientes[j].Fecha)
	})

	return pendientes, nil
}

// TopClientes acumula las compras históricas por cliente y retorna los de
// mayor monto
func (s *reporteService) TopClientes(ctx context.Context, limit int) ([]*models.TopCliente, error) {
	clientes, err := s.acumularPorCliente(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(clientes, func(i, j int) bool {
		return clientes[i].MontoTotal > clientes[j].MontoTotal
	})

	if limit > 0 && len(clientes) > limit {
		clientes = clientes[:limit]
	}
	return clientes, nil
}

// ClientesConDeuda retorna los clientes con saldo pendiente, mayor deuda
// primero
func (s *reporteService) ClientesConDeuda(ctx context.Context) ([]*models.TopCliente, error) {
	clientes, err := s.acumularPorCliente(ctx)
	if err != nil {
		return nil, err
	}

	deudores := clientes[:0:0]
	for _, c := range clientes {
		if c.MontoPendiente > 0 {
			deudores = append(deudores, c)
		}
	}

	sort.Slice(deudores, func(i, j int) bool {
		return deudores[i].MontoPendiente > deudores[j].MontoPendiente
	})

	return deudores, nil
}

func (s *reporteService) acumularPorCliente(ctx context.Context) ([]*models.TopCliente, error) {
	ventas, err := s.ventaRepo.ListConDetalles(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("error listando ventas para reporte: %w", err)
	}

	acumulados := make(map[string]*models.TopCliente)
	for _, v := range ventas {
		_, nombre := ciudadYCliente(v)

		cliente, ok := acumulados[nombre]
		if !ok {
			cliente = &models.TopCliente{Nombre: nombre}
			if v.Cliente != nil {
				cliente.Ciudad = derefONada(v.Cliente.Ciudad)
				cliente.Telefono = derefONada(v.Cliente.Telefono)
				cliente.Email = derefONada(v.Cliente.Email)
			}
			acumulados[nombre] = cliente
		}

		total := v.Total()
		cobrado := v.TotalCobrado()
		cliente.MontoTotal += total
		cliente.MontoCobrado += cobrado
		cliente.MontoPendiente += total - cobrado
		cliente.CantidadVentas++
	}

	clientes := make([]*models.TopCliente, 0, len(acumulados))
	for _, c := range acumulados {
		clientes = append(clientes, c)
	}
	return clientes, nil
}

// ArticulosMasVendidos acumula las líneas de venta por artículo y retorna
// los más vendidos por cantidad
func (s *reporteService) ArticulosMasVendidos(ctx context.Context, limit int) ([]*models.ArticuloVendido, error) {
	ventas, err := s.ventaRepo.ListConDetalles(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("error listando ventas para reporte: %w", err)
	}

	acumulados := make(map[int]*models.ArticuloVendido)
	for _, v := range ventas {
		for _, d := range v.Detalles {
			articulo, ok := acumulados[d.ArticuloID]
			if !ok {
				articulo = &models.ArticuloVendido{
					Nombre: derefONada(d.ArticuloNombre),
					Codigo: derefONada(d.ArticuloCodigo),
				}
				acumulados[d.ArticuloID] = articulo
			}
			articulo.CantidadVendida += d.Cantidad
			articulo.MontoTotal += d.Subtotal
		}
	}

	articulos := make([]*models.ArticuloVendido, 0, len(acumulados))
	for _, a := range acumulados {
		articulos = append(articulos, a)
	}

	sort.Slice(articulos, func(i, j int) bool {
		if articulos[i].CantidadVendida != articulos[j].CantidadVendida {
			return articulos[i].CantidadVendida > articulos[j].CantidadVendida
		}
		return articulos[i].MontoTotal > articulos[j].MontoTotal
	})

	if limit > 0 && len(articulos) > limit {
		articulos = articulos[:limit]
	}
	return articulos, nil
}

// Dashboard arma las métricas del panel principal para el período
func (s *reporteService) Dashboard(ctx context.Context, filtro string, inicio, fin time.Time) (*models.DashboardResumen, error) {
	ventas, err := s.ventasFiltradas(ctx, filtro, inicio, fin, "")
	if err != nil {
		return nil, err
	}

	resumen := &models.DashboardResumen{}
	for _, v := range ventas {
		total := v.Total()
		resumen.TotalVentas += total

		if v.Estado == models.EstadoPagado {
			resumen.CantidadPagadas++
			resumen.TotalPagadas += total
		} else {
			resumen.CantidadPendientes++
			resumen.TotalPendientes += total
		}

		for _, d := range v.Detalles {
			resumen.ArticulosVendidos += d.Cantidad
		}
	}

	if resumen.CantidadPagadas > 0 {
		resumen.PromedioPagada = resumen.TotalPagadas / float64(resumen.CantidadPagadas)
	}
	if resumen.CantidadPendientes > 0 {
		resumen.PromedioPendiente = resumen.TotalPendientes / float64(resumen.CantidadPendientes)
	}

	articulos, err := s.articuloRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listando artículos para dashboard: %w", err)
	}
	for _, a := range articulos {
		resumen.TotalArticulosStock += a.CantidadStock
		if a.CantidadStock > 0 {
			resumen.ArticulosDisponibles++
		}
	}

	totalClientes, err := s.clienteRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error contando clientes para dashboard: %w", err)
	}
	resumen.TotalClientes = totalClientes

	return resumen, nil
}

// EtiquetasVentas agrupa las ventas del período por ciudad con los datos de
// envío del cliente, para imprimir etiquetas
func (s *reporteService) EtiquetasVentas(ctx context.Context, filtro string, inicio, fin time.Time) (map[string][]models.EtiquetaVenta, error) {
	ventas, err := s.ventasFiltradas(ctx, filtro, inicio, fin, "")
	if err != nil {
		return nil, err
	}

	etiquetas := make(map[string][]models.EtiquetaVenta)
	for _, v := range ventas {
		ciudad, cliente := ciudadYCliente(v)

		etiqueta := models.EtiquetaVenta{
			ID:            v.ID,
			Fecha:         v.FechaVenta,
			Estado:        v.Estado,
			Cliente:       cliente,
			Ciudad:        ciudad,
			Monto:         v.Total(),
			Observaciones: v.Observaciones,
		}
		if v.Cliente != nil {
			etiqueta.Telefono = derefONada(v.Cliente.Telefono)
			etiqueta.Direccion = derefONada(v.Cliente.Direccion)
		}
		etiquetas[ciudad] = append(etiquetas[ciudad], etiqueta)
	}

	return etiquetas, nil
}

// ExportarVentasCSV genera el CSV de ventas por ciudad y cliente, una fila
// por línea de venta
func (s *reporteService) ExportarVentasCSV(ctx context.Context, filtro string, inicio, fin time.Time, estado string) ([]byte, error) {
	reporte, err := s.ReporteVentas(ctx, filtro, inicio, fin, estado)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"CIUDAD", "CLIENTE", "ARTICULO", "CANTIDAD", "PRECIO_UNITARIO", "SUBTOTAL", "TOTAL_CLIENTE"}); err != nil {
		return nil, fmt.Errorf("error escribiendo CSV: %w", err)
	}

	for _, ciudad := range clavesOrdenadas(reporte.PorCiudad) {
		clientes := reporte.PorCiudad[ciudad]
		for _, cliente := range clavesOrdenadas(clientes) {
			acumulado := clientes[cliente]
			primeraFila := true
			for _, venta := range acumulado.Ventas {
				for _, d := range venta.Detalles {
					// El total del cliente solo va en su primera fila
					totalCliente := ""
					if primeraFila {
						totalCliente = lempiras(acumulado.TotalCliente)
						primeraFila = false
					}
					fila := []string{
						ciudad,
						cliente,
						derefONada(d.ArticuloNombre),
						strconv.Itoa(d.Cantidad),
						lempiras(d.PrecioUnitario),
						lempiras(d.Subtotal),
						totalCliente,
					}
					if err := w.Write(fila); err != nil {
						return nil, fmt.Errorf("error escribiendo CSV: %w", err)
					}
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error escribiendo CSV: %w", err)
	}

	s.logger.Info("📄 CSV de ventas generado", zap.String("filtro", filtro))

	return buf.Bytes(), nil
}

// ExportarClientesCSV genera el CSV del acumulado histórico por cliente
func (s *reporteService) ExportarClientesCSV(ctx context.Context) ([]byte, error) {
	clientes, err := s.TopClientes(ctx, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"CLIENTE", "CIUDAD", "TELEFONO", "TOTAL_COMPRAS", "COBRADO", "PENDIENTE", "CANTIDAD_VENTAS"}); err != nil {
		return nil, fmt.Errorf("error escribiendo CSV: %w", err)
	}

	for _, c := range clientes {
		fila := []string{
			c.Nombre,
			c.Ciudad,
			c.Telefono,
			lempiras(c.MontoTotal),
			lempiras(c.MontoCobrado),
			lempiras(c.MontoPendiente),
			strconv.Itoa(c.CantidadVentas),
		}
		if err := w.Write(fila); err != nil {
			return nil, fmt.Errorf("error escribiendo CSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error escribiendo CSV: %w", err)
	}

	s.logger.Info("📄 CSV de clientes generado", zap.Int("clientes", len(clientes)))

	return buf.Bytes(), nil
}

// ciudadYCliente resuelve la ciudad y el nombre del cliente de una venta,
// con defaults cuando la venta quedó sin cliente
func ciudadYCliente(v *models.VentaConDetalles) (ciudad, cliente string) {
	ciudad = ciudadSinEspecificar
	cliente = "CLIENTE DESCONOCIDO"
	if v.Cliente != nil {
		if c := derefONada(v.Cliente.Ciudad); c != "" {
			ciudad = c
		}
		if v.Cliente.NombreCompleto != "" {
			cliente = v.Cliente.NombreCompleto
		}
	}
	return ciudad, cliente
}

// lempiras formatea un monto con el prefijo de moneda de los reportes
func lempiras(monto float64) string {
	return fmt.Sprintf("L. %.2f", monto)
}

// derefONada desreferencia un *string retornando vacío para nil
func derefONada(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// clavesOrdenadas retorna las claves de un mapa ordenadas alfabéticamente,
// para que los CSV salgan deterministas
func clavesOrdenadas[V any](m map[string]V) []string {
	claves := make([]string, 0, len(m))
	for k := range m {
		claves = append(claves, k)
	}
	sort.Strings(claves)
	return claves
}
