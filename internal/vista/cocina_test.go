package vista

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/feed"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/ws"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubPedidoRepo is an in-memory PedidoRepository for projection tests.
type stubPedidoRepo struct {
	pedidos map[int64]*model.Pedido
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[int64]*model.Pedido)}
}

func (r *stubPedidoRepo) Create(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id int64) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubPedidoRepo) FindForUpdate(_ context.Context, _ *gorm.DB, id int64) (*model.Pedido, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubPedidoRepo) Update(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	r.pedidos[p.ID] = p
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
	// sort by id asc
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[j].ID < out[i].ID {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) ListTerminadosEntre(_ context.Context, _ []string) ([]model.Pedido, error) {
	return nil, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// stubDifusor records every broadcast so tests can assert on chimes.
type stubDifusor struct {
	eventos []string // "<canal>/<tipo>"
}

func (d *stubDifusor) Broadcast(canal string, tipo string, _ interface{}) {
	d.eventos = append(d.eventos, canal+"/"+tipo)
}

func (d *stubDifusor) chimes() int {
	n := 0
	for _, ev := range d.eventos {
		if ev == ws.CanalCocina+"/"+ws.EventoNotificar {
			n++
		}
	}
	return n
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func pedido(id int64, destino string) *model.Pedido {
	return &model.Pedido{
		ID:      id,
		Mesero:  "Ana",
		Destino: destino,
		Tipo:    model.TipoMesa,
		Numero:  "1",
		Items:   model.Items{{PlatilloID: 1, Nombre: "Sopa", Precio: decimal.NewFromInt(10), Cantidad: 1}},
		Total:   decimal.NewFromInt(10),
	}
}

func eventoInsert(t *testing.T, p *model.Pedido) feed.Evento {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return feed.Evento{Tabla: feed.TablaPedidos, Tipo: feed.TipoInsert, New: b}
}

func eventoUpdate(t *testing.T, p *model.Pedido) feed.Evento {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return feed.Evento{Tabla: feed.TablaPedidos, Tipo: feed.TipoUpdate, New: b}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestPantallaMuestraPrimerosTresYCuentaElResto(t *testing.T) {
	v := NewCocinaVista(newStubPedidoRepo(), nil, 3)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		v.ManejarEvento(ctx, eventoInsert(t, pedido(i, "Mesa 1")))
	}

	pantalla := v.Snapshot()
	require.Len(t, pantalla.Pedidos, 3)
	assert.Equal(t, int64(1), pantalla.Pedidos[0].ID)
	assert.Equal(t, int64(3), pantalla.Pedidos[2].ID)
	assert.Equal(t, 2, pantalla.EnCola)
}

func TestInsertDuplicadoEsIdempotente(t *testing.T) {
	v := NewCocinaVista(newStubPedidoRepo(), nil, 3)
	ctx := context.Background()

	ev := eventoInsert(t, pedido(1, "Mesa 1"))
	v.ManejarEvento(ctx, ev)
	v.ManejarEvento(ctx, ev)

	pantalla := v.Snapshot()
	assert.Len(t, pantalla.Pedidos, 1)
	assert.Equal(t, 0, pantalla.EnCola)
}

func TestAgregadoNoMueveLaPosicion(t *testing.T) {
	v := NewCocinaVista(newStubPedidoRepo(), nil, 3)
	ctx := context.Background()

	v.ManejarEvento(ctx, eventoInsert(t, pedido(1, "Mesa 1")))
	v.ManejarEvento(ctx, eventoInsert(t, pedido(2, "Mesa 2")))

	// Un agregado actualiza el pedido 1 sin moverlo del frente.
	crecido := pedido(1, "Mesa 1")
	crecido.Items = append(crecido.Items, model.Item{PlatilloID: 2, Nombre: "Café", Precio: decimal.NewFromInt(8), Cantidad: 1})
	v.ManejarEvento(ctx, eventoUpdate(t, crecido))

	pantalla := v.Snapshot()
	require.Len(t, pantalla.Pedidos, 2)
	assert.Equal(t, int64(1), pantalla.Pedidos[0].ID)
	assert.Len(t, pantalla.Pedidos[0].Items, 2)
}

func TestTerminadoSaleYEntraElSiguiente(t *testing.T) {
	v := NewCocinaVista(newStubPedidoRepo(), nil, 2)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		v.ManejarEvento(ctx, eventoInsert(t, pedido(i, "Mesa 1")))
	}

	cerrado := pedido(1, "Mesa 1")
	cerrado.Terminado = true
	v.ManejarEvento(ctx, eventoUpdate(t, cerrado))

	pantalla := v.Snapshot()
	require.Len(t, pantalla.Pedidos, 2)
	assert.Equal(t, int64(2), pantalla.Pedidos[0].ID)
	assert.Equal(t, int64(3), pantalla.Pedidos[1].ID)
	assert.Equal(t, 0, pantalla.EnCola)
}

func TestMarcarTerminadoPersisteYQuita(t *testing.T) {
	repo := newStubPedidoRepo()
	v := NewCocinaVista(repo, nil, 3)
	ctx := context.Background()

	p := pedido(1, "Mesa 1")
	require.NoError(t, repo.Create(ctx, nil, p))
	v.Resync(ctx)
	require.Len(t, v.Snapshot().Pedidos, 1)

	require.NoError(t, v.MarcarTerminado(ctx, nil, 1))

	assert.Empty(t, v.Snapshot().Pedidos)
	assert.True(t, repo.pedidos[1].Terminado)
}

func TestMarcarTerminadoInexistente(t *testing.T) {
	v := NewCocinaVista(newStubPedidoRepo(), nil, 3)

	err := v.MarcarTerminado(context.Background(), nil, 99)
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestChimeSuenaEnLlegadasYAgregados(t *testing.T) {
	difusor := &stubDifusor{}
	v := NewCocinaVista(newStubPedidoRepo(), difusor, 3)
	ctx := context.Background()

	// Llegada nueva: suena.
	v.ManejarEvento(ctx, eventoInsert(t, pedido(1, "Mesa 1")))
	assert.Equal(t, 1, difusor.chimes())

	// Replay del mismo insert: en pantalla no cambia nada, no suena.
	v.ManejarEvento(ctx, eventoInsert(t, pedido(1, "Mesa 1")))
	assert.Equal(t, 1, difusor.chimes())

	// Agregado sobre un pedido en preparacion: la cocina debe enterarse.
	crecido := pedido(1, "Mesa 1")
	crecido.Items = append(crecido.Items, model.Item{PlatilloID: 2, Nombre: "Café", Precio: decimal.NewFromInt(8), Cantidad: 1})
	v.ManejarEvento(ctx, eventoUpdate(t, crecido))
	assert.Equal(t, 2, difusor.chimes())

	// Update de un pedido nunca visto (hueco en el feed): cuenta como llegada.
	v.ManejarEvento(ctx, eventoUpdate(t, pedido(2, "Mesa 2")))
	assert.Equal(t, 3, difusor.chimes())

	// Cierre: sale de la cola sin sonar.
	cerrado := pedido(1, "Mesa 1")
	cerrado.Terminado = true
	v.ManejarEvento(ctx, eventoUpdate(t, cerrado))
	assert.Equal(t, 3, difusor.chimes())
}

func TestMarcarTerminadoNoSuena(t *testing.T) {
	repo := newStubPedidoRepo()
	difusor := &stubDifusor{}
	v := NewCocinaVista(repo, difusor, 3)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, nil, pedido(1, "Mesa 1")))
	v.Resync(ctx)
	base := difusor.chimes()

	require.NoError(t, v.MarcarTerminado(ctx, nil, 1))
	assert.Equal(t, base, difusor.chimes())
}

func TestResyncReconstruyeDesdeBase(t *testing.T) {
	repo := newStubPedidoRepo()
	ctx := context.Background()
	for i := int64(1); i <= 4; i++ {
		require.NoError(t, repo.Create(ctx, nil, pedido(i, "Mesa 1")))
	}
	repo.pedidos[2].Terminado = true

	v := NewCocinaVista(repo, nil, 3)
	v.Resync(ctx)

	pantalla := v.Snapshot()
	require.Len(t, pantalla.Pedidos, 3)
	assert.Equal(t, int64(1), pantalla.Pedidos[0].ID)
	assert.Equal(t, int64(3), pantalla.Pedidos[1].ID)
	assert.Equal(t, int64(4), pantalla.Pedidos[2].ID)
}
