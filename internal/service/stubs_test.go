package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubPedidoRepo is an in-memory PedidoRepository for service tests.
type stubPedidoRepo struct {
	pedidos map[int64]*model.Pedido
	seq     int64
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[int64]*model.Pedido)}
}

func (r *stubPedidoRepo) Create(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	r.seq++
	p.ID = r.seq
	clon := *p
	r.pedidos[p.ID] = &clon
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id int64) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *p
	return &clon, nil
}

func (r *stubPedidoRepo) FindForUpdate(ctx context.Context, _ *gorm.DB, id int64) (*model.Pedido, error) {
	return r.FindByID(ctx, id)
}

func (r *stubPedidoRepo) Update(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	clon := *p
	r.pedidos[p.ID] = &clon
	return nil
}

func (r *stubPedidoRepo) MarcarTerminado(_ context.Context, id int64) (int64, error) {
	p, ok := r.pedidos[id]
	if !ok || p.Terminado {
		return 0, nil
	}
	p.Terminado = true
	return 1, nil
}

func (r *stubPedidoRepo) ListNoTerminados(_ context.Context) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if !p.Terminado {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPedidoRepo) ListTerminadosEntre(_ context.Context, fechas []string) ([]model.Pedido, error) {
	en := make(map[string]bool, len(fechas))
	for _, f := range fechas {
		en[f] = true
	}
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.Terminado && p.Fecha != nil && en[*p.Fecha] {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// stubMesaRepo is an in-memory MesaRepository enforcing the unique destino.
type stubMesaRepo struct {
	mesas map[int64]*model.MesaOcupada
	seq   int64
}

func newStubMesaRepo() *stubMesaRepo {
	return &stubMesaRepo{mesas: make(map[int64]*model.MesaOcupada)}
}

func (r *stubMesaRepo) Create(_ context.Context, _ *gorm.DB, m *model.MesaOcupada) error {
	for _, e := range r.mesas {
		if e.Tipo == m.Tipo && e.Numero == m.Numero {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	m.ID = r.seq
	clon := *m
	r.mesas[m.ID] = &clon
	return nil
}

func (r *stubMesaRepo) FindForUpdate(_ context.Context, _ *gorm.DB, tipo string, numero int) (*model.MesaOcupada, error) {
	for _, m := range r.mesas {
		if m.Tipo == tipo && m.Numero == numero {
			clon := *m
			return &clon, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMesaRepo) FindByDestino(ctx context.Context, tipo string, numero int) (*model.MesaOcupada, error) {
	return r.FindForUpdate(ctx, nil, tipo, numero)
}

func (r *stubMesaRepo) Update(_ context.Context, _ *gorm.DB, m *model.MesaOcupada) error {
	clon := *m
	r.mesas[m.ID] = &clon
	return nil
}

func (r *stubMesaRepo) DeleteByPedido(_ context.Context, _ *gorm.DB, pedidoID int64) error {
	for id, m := range r.mesas {
		if m.PedidoID == pedidoID {
			delete(r.mesas, id)
		}
	}
	return nil
}

func (r *stubMesaRepo) ListAll(_ context.Context) ([]model.MesaOcupada, error) {
	var out []model.MesaOcupada
	for _, m := range r.mesas {
		out = append(out, *m)
	}
	return out, nil
}

var _ repository.MesaRepository = (*stubMesaRepo)(nil)

// stubPlatilloRepo serves a fixed catalog.
type stubPlatilloRepo struct {
	platillos map[int64]*model.Platillo
}

func newStubPlatilloRepo(platillos ...*model.Platillo) *stubPlatilloRepo {
	r := &stubPlatilloRepo{platillos: make(map[int64]*model.Platillo)}
	for _, p := range platillos {
		r.platillos[p.ID] = p
	}
	return r
}

func (r *stubPlatilloRepo) Create(_ context.Context, p *model.Platillo) error {
	r.platillos[p.ID] = p
	return nil
}

func (r *stubPlatilloRepo) FindByID(_ context.Context, id int64) (*model.Platillo, error) {
	p, ok := r.platillos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPlatilloRepo) ListActivos(_ context.Context) ([]model.Platillo, error) { return nil, nil }
func (r *stubPlatilloRepo) ListPorCategoria(_ context.Context, _ int64) ([]model.Platillo, error) {
	return nil, nil
}
func (r *stubPlatilloRepo) Update(_ context.Context, _ *model.Platillo) error { return nil }
func (r *stubPlatilloRepo) Desactivar(_ context.Context, _ int64) error       { return nil }
func (r *stubPlatilloRepo) CreateCategoria(_ context.Context, _ *model.Categoria) error {
	return nil
}
func (r *stubPlatilloRepo) ListCategorias(_ context.Context) ([]model.Categoria, error) {
	return nil, nil
}
func (r *stubPlatilloRepo) FindCategoria(_ context.Context, _ int64) (*model.Categoria, error) {
	return nil, gorm.ErrRecordNotFound
}

var _ repository.PlatilloRepository = (*stubPlatilloRepo)(nil)

// stubRecargoRepo captures deferred-charge and invoice writes.
type stubRecargoRepo struct {
	habitaciones map[int64]*model.PedidoRecargado
	empleados    map[int64]*model.EmpleadoRecargado
	eventos      map[int64]*model.EventoRecargado
	facturas     map[int64]*model.Factura
	seq          int64
}

func newStubRecargoRepo() *stubRecargoRepo {
	return &stubRecargoRepo{
		habitaciones: make(map[int64]*model.PedidoRecargado),
		empleados:    make(map[int64]*model.EmpleadoRecargado),
		eventos:      make(map[int64]*model.EventoRecargado),
		facturas:     make(map[int64]*model.Factura),
	}
}

func (r *stubRecargoRepo) CreateHabitacion(_ context.Context, _ *gorm.DB, rec *model.PedidoRecargado) error {
	r.seq++
	rec.ID = r.seq
	r.habitaciones[rec.ID] = rec
	return nil
}

func (r *stubRecargoRepo) CreateEmpleado(_ context.Context, _ *gorm.DB, rec *model.EmpleadoRecargado) error {
	r.seq++
	rec.ID = r.seq
	r.empleados[rec.ID] = rec
	return nil
}

func (r *stubRecargoRepo) CreateEvento(_ context.Context, _ *gorm.DB, rec *model.EventoRecargado) error {
	r.seq++
	rec.ID = r.seq
	r.eventos[rec.ID] = rec
	return nil
}

func (r *stubRecargoRepo) CreateFactura(_ context.Context, _ *gorm.DB, f *model.Factura) error {
	r.seq++
	f.ID = r.seq
	r.facturas[f.ID] = f
	return nil
}

func (r *stubRecargoRepo) FindHabitacion(_ context.Context, id int64) (*model.PedidoRecargado, error) {
	rec, ok := r.habitaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *stubRecargoRepo) FindEmpleado(_ context.Context, id int64) (*model.EmpleadoRecargado, error) {
	rec, ok := r.empleados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *stubRecargoRepo) FindEvento(_ context.Context, id int64) (*model.EventoRecargado, error) {
	rec, ok := r.eventos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *stubRecargoRepo) FindFactura(_ context.Context, id int64) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubRecargoRepo) ListHabitaciones(_ context.Context, _ string) ([]model.PedidoRecargado, error) {
	var out []model.PedidoRecargado
	for _, rec := range r.habitaciones {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubRecargoRepo) ListEmpleados(_ context.Context, _ string) ([]model.EmpleadoRecargado, error) {
	var out []model.EmpleadoRecargado
	for _, rec := range r.empleados {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubRecargoRepo) ListEventos(_ context.Context, _ string) ([]model.EventoRecargado, error) {
	var out []model.EventoRecargado
	for _, rec := range r.eventos {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubRecargoRepo) ListFacturasPendientes(_ context.Context) ([]model.Factura, error) {
	var out []model.Factura
	for _, f := range r.facturas {
		if !f.Facturado {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubRecargoRepo) DeleteHabitacion(_ context.Context, _ *gorm.DB, id int64) error {
	delete(r.habitaciones, id)
	return nil
}

func (r *stubRecargoRepo) DeleteEmpleado(_ context.Context, _ *gorm.DB, id int64) error {
	delete(r.empleados, id)
	return nil
}

func (r *stubRecargoRepo) DeleteEvento(_ context.Context, _ *gorm.DB, id int64) error {
	delete(r.eventos, id)
	return nil
}

func (r *stubRecargoRepo) SetFacturado(_ context.Context, id int64, facturado bool) (int64, error) {
	f, ok := r.facturas[id]
	if !ok {
		return 0, nil
	}
	f.Facturado = facturado
	return 1, nil
}

func (r *stubRecargoRepo) DeleteFactura(_ context.Context, _ *gorm.DB, id int64) error {
	delete(r.facturas, id)
	return nil
}

var _ repository.RecargoRepository = (*stubRecargoRepo)(nil)

// stubReporteRepo implements the (fecha, turno) upsert in memory.
type stubReporteRepo struct {
	reportes map[string]*model.ReporteEnviado
	seq      int64
}

func newStubReporteRepo() *stubReporteRepo {
	return &stubReporteRepo{reportes: make(map[string]*model.ReporteEnviado)}
}

func (r *stubReporteRepo) Upsert(_ context.Context, rep *model.ReporteEnviado) error {
	clave := rep.Fecha + "|" + rep.Turno
	if previo, ok := r.reportes[clave]; ok {
		rep.ID = previo.ID
	} else {
		r.seq++
		rep.ID = r.seq
	}
	r.reportes[clave] = rep
	return nil
}

func (r *stubReporteRepo) FindByID(_ context.Context, id int64) (*model.ReporteEnviado, error) {
	for _, rep := range r.reportes {
		if rep.ID == id {
			return rep, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubReporteRepo) FindByFechaTurno(_ context.Context, fecha, turno string) (*model.ReporteEnviado, error) {
	rep, ok := r.reportes[fecha+"|"+turno]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rep, nil
}

func (r *stubReporteRepo) List(_ context.Context, _ int) ([]model.ReporteEnviado, error) {
	var out []model.ReporteEnviado
	for _, rep := range r.reportes {
		out = append(out, *rep)
	}
	return out, nil
}

var _ repository.ReporteRepository = (*stubReporteRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func platilloDePrueba(id int64, nombre string, precio int64) *model.Platillo {
	return &model.Platillo{
		ID:          id,
		Nombre:      nombre,
		Precio:      decimal.NewFromInt(precio),
		CategoriaID: 1,
		Activo:      true,
	}
}
