package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"ventas-service/internal/models"
)

// Fakes en memoria de los repositories, para probar los services sin base
// de datos.

type fakeArticuloRepo struct {
	articulos map[int]*models.Articulo
	nextID    int
}

func newFakeArticuloRepo() *fakeArticuloRepo {
	return &fakeArticuloRepo{articulos: make(map[int]*models.Articulo), nextID: 1}
}

func (r *fakeArticuloRepo) List(ctx context.Context, searchTerm string, pag models.Paginacion) ([]*models.Articulo, int, error) {
	all, _ := r.ListAll(ctx)
	if searchTerm != "" {
		filtrados := all[:0:0]
		for _, a := range all {
			if strings.Contains(strings.ToLower(a.Nombre), strings.ToLower(searchTerm)) {
				filtrados = append(filtrados, a)
			}
		}
		all = filtrados
	}
	total := len(all)
	inicio := pag.Offset()
	if inicio > total {
		inicio = total
	}
	fin := inicio + pag.Limit
	if fin > total {
		fin = total
	}
	return all[inicio:fin], total, nil
}

func (r *fakeArticuloRepo) ListAll(ctx context.Context) ([]*models.Articulo, error) {
	var all []*models.Articulo
	for _, a := range r.articulos {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *fakeArticuloRepo) GetByID(ctx context.Context, id int) (*models.Articulo, error) {
	return r.articulos[id], nil
}

func (r *fakeArticuloRepo) GetByCodigo(ctx context.Context, codigo string) (*models.Articulo, error) {
	for _, a := range r.articulos {
		if a.Codigo == codigo {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeArticuloRepo) Create(ctx context.Context, articulo *models.Articulo) error {
	articulo.ID = r.nextID
	articulo.CreatedAt = time.Now()
	r.nextID++
	copia := *articulo
	r.articulos[articulo.ID] = &copia
	return nil
}

func (r *fakeArticuloRepo) Update(ctx context.Context, articulo *models.Articulo) error {
	copia := *articulo
	r.articulos[articulo.ID] = &copia
	return nil
}

func (r *fakeArticuloRepo) Delete(ctx context.Context, id int) error {
	delete(r.articulos, id)
	return nil
}

func (r *fakeArticuloRepo) GetStockBajo(ctx context.Context) ([]*models.Articulo, error) {
	var bajos []*models.Articulo
	for _, a := range r.articulos {
		if a.StockBajo() {
			bajos = append(bajos, a)
		}
	}
	return bajos, nil
}

type fakeClienteRepo struct {
	clientes map[int]*models.Cliente
	nextID   int
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: make(map[int]*models.Cliente), nextID: 1}
}

func (r *fakeClienteRepo) List(ctx context.Context, searchTerm string, pag models.Paginacion) ([]*models.Cliente, int, error) {
	var all []*models.Cliente
	for _, c := range r.clientes {
		if searchTerm == "" || strings.Contains(strings.ToLower(c.NombreCompleto), strings.ToLower(searchTerm)) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

func (r *fakeClienteRepo) ListByTipo(ctx context.Context, tipoCliente string) ([]*models.Cliente, error) {
	var all []*models.Cliente
	for _, c := range r.clientes {
		if tipoCliente == "" || c.TipoCliente == tipoCliente {
			all = append(all, c)
		}
	}
	return all, nil
}

func (r *fakeClienteRepo) GetByID(ctx context.Context, id int) (*models.Cliente, error) {
	return r.clientes[id], nil
}

func (r *fakeClienteRepo) Create(ctx context.Context, cliente *models.Cliente) error {
	cliente.ID = r.nextID
	cliente.CreatedAt = time.Now()
	r.nextID++
	copia := *cliente
	r.clientes[cliente.ID] = &copia
	return nil
}

func (r *fakeClienteRepo) Update(ctx context.Context, cliente *models.Cliente) error {
	copia := *cliente
	r.clientes[cliente.ID] = &copia
	return nil
}

func (r *fakeClienteRepo) Delete(ctx context.Context, id int) error {
	delete(r.clientes, id)
	return nil
}

func (r *fakeClienteRepo) Count(ctx context.Context) (int, error) {
	return len(r.clientes), nil
}

type fakeVentaRepo struct {
	ventas   map[int]*models.VentaConDetalles
	clientes *fakeClienteRepo
	nextID   int
}

func newFakeVentaRepo(clientes *fakeClienteRepo) *fakeVentaRepo {
	return &fakeVentaRepo{
		ventas:   make(map[int]*models.VentaConDetalles),
		clientes: clientes,
		nextID:   1,
	}
}

func (r *fakeVentaRepo) List(ctx context.Context, searchTerm string, pag models.Paginacion) ([]*models.VentaConDetalles, int, error) {
	all, _ := r.ListConDetalles(ctx, "")
	if searchTerm != "" {
		filtradas := all[:0:0]
		for _, v := range all {
			if v.Cliente != nil && strings.Contains(strings.ToLower(v.Cliente.NombreCompleto), strings.ToLower(searchTerm)) {
				filtradas = append(filtradas, v)
			}
		}
		all = filtradas
	}
	return all, len(all), nil
}

func (r *fakeVentaRepo) ListConDetalles(ctx context.Context, estado string) ([]*models.VentaConDetalles, error) {
	var all []*models.VentaConDetalles
	for _, v := range r.ventas {
		if estado == "" || v.Estado == estado {
			all = append(all, v)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *fakeVentaRepo) GetConDetalles(ctx context.Context, id int) (*models.VentaConDetalles, error) {
	return r.ventas[id], nil
}

func (r *fakeVentaRepo) CrearConDetalles(ctx context.Context, venta *models.Venta, detalles []models.DetalleVenta) error {
	venta.ID = r.nextID
	venta.CreatedAt = time.Now()
	r.nextID++

	conDetalles := &models.VentaConDetalles{
		Venta:    *venta,
		Detalles: detalles,
		Cobros:   []models.Cobro{},
	}
	if r.clientes != nil {
		conDetalles.Cliente, _ = r.clientes.GetByID(ctx, venta.ClienteID)
	}
	r.ventas[venta.ID] = conDetalles
	return nil
}

func (r *fakeVentaRepo) Delete(ctx context.Context, id int) error {
	delete(r.ventas, id)
	return nil
}

// fakeCobroRepo replica las reglas del repository real: descuenta stock con
// piso en cero y recalcula el estado de la venta a partir de lo cobrado.
type fakeCobroRepo struct {
	ventas    *fakeVentaRepo
	articulos *fakeArticuloRepo
	porVenta  map[int]int
	nextID    int
}

func newFakeCobroRepo(ventas *fakeVentaRepo, articulos *fakeArticuloRepo) *fakeCobroRepo {
	return &fakeCobroRepo{
		ventas:    ventas,
		articulos: articulos,
		porVenta:  make(map[int]int),
		nextID:    1,
	}
}

func (r *fakeCobroRepo) Registrar(ctx context.Context, cobro *models.Cobro) (*models.CobroResultado, error) {
	venta := r.ventas.ventas[cobro.VentaID]

	cobro.ID = r.nextID
	r.nextID++
	r.porVenta[cobro.ID] = cobro.VentaID
	esPrimero := len(venta.Cobros) == 0
	venta.Cobros = append(venta.Cobros, *cobro)

	if esPrimero && r.articulos != nil {
		for _, d := range venta.Detalles {
			if a := r.articulos.articulos[d.ArticuloID]; a != nil {
				a.CantidadStock -= d.Cantidad
				if a.CantidadStock < 0 {
					a.CantidadStock = 0
				}
			}
		}
	}

	return r.recalcular(cobro.ID, venta), nil
}

func (r *fakeCobroRepo) ListAll(ctx context.Context) ([]*models.Cobro, error) {
	var all []*models.Cobro
	ventas, _ := r.ventas.ListConDetalles(ctx, "")
	for _, v := range ventas {
		for i := range v.Cobros {
			all = append(all, &v.Cobros[i])
		}
	}
	return all, nil
}

func (r *fakeCobroRepo) ListPagos(ctx context.Context) ([]*models.PagoListado, error) {
	var pagos []*models.PagoListado
	ventas, _ := r.ventas.ListConDetalles(ctx, "")
	for _, v := range ventas {
		for _, c := range v.Cobros {
			pago := &models.PagoListado{
				ID:           c.ID,
				VentaID:      v.ID,
				Fecha:        c.FechaPago,
				Liquidacion:  c.Liquidacion,
				Banco:        c.Banco,
				MontoPagado:  c.MontoPagado,
				Envio:        c.Envio,
				PagoDelivery: c.PagoDelivery,
				TotalPago:    c.Total(),
				TotalVenta:   v.Total(),
			}
			if v.Cliente != nil {
				pago.Cliente = v.Cliente.NombreCompleto
			}
			pagos = append(pagos, pago)
		}
	}
	return pagos, nil
}

func (r *fakeCobroRepo) Delete(ctx context.Context, id int) (*models.CobroResultado, error) {
	ventaID, ok := r.porVenta[id]
	if !ok {
		return nil, nil
	}
	delete(r.porVenta, id)

	venta := r.ventas.ventas[ventaID]
	restantes := venta.Cobros[:0:0]
	for _, c := range venta.Cobros {
		if c.ID != id {
			restantes = append(restantes, c)
		}
	}
	venta.Cobros = restantes

	return r.recalcular(id, venta), nil
}

func (r *fakeCobroRepo) recalcular(cobroID int, venta *models.VentaConDetalles) *models.CobroResultado {
	total := venta.Total()
	cobrado := venta.TotalCobrado()
	venta.Estado = models.CalcularEstado(cobrado, total)

	return &models.CobroResultado{
		CobroID:     cobroID,
		EstadoVenta: venta.Estado,
		TotalVenta:  total,
		Cobrado:     cobrado,
		Pendiente:   total - cobrado,
	}
}

type fakeUsuarioRepo struct {
	usuarios map[string]*models.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[string]*models.Usuario)}
}

func (r *fakeUsuarioRepo) GetByUsername(ctx context.Context, username string) (*models.Usuario, error) {
	return r.usuarios[username], nil
}

func (r *fakeUsuarioRepo) Create(ctx context.Context, usuario *models.Usuario) error {
	usuario.ID = len(r.usuarios) + 1
	usuario.CreatedAt = time.Now()
	r.usuarios[usuario.Username] = usuario
	return nil
}
