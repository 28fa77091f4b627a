package vista

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/feed"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/ws"
)

// Pantalla is what the kitchen screen renders: the first maxPantalla pending
// orders in arrival order plus how many more are waiting off-screen.
type Pantalla struct {
	Pedidos []model.Pedido `json:"pedidos"`
	EnCola  int            `json:"en_cola"`
}

// Difusor pushes projection snapshots and alerts to the panels. *ws.Hub is
// the production implementation.
type Difusor interface {
	Broadcast(canal string, tipo string, payload interface{})
}

// CocinaVista projects open orders as a FIFO queue for the kitchen screen.
// Arrival order is the persistent id (ids are monotonic), never wall-clock
// time, so the order survives restarts and resyncs.
type CocinaVista struct {
	repo        repository.PedidoRepository
	hub         Difusor
	maxPantalla int

	mu      sync.RWMutex
	pedidos []model.Pedido // sorted by id asc
}

func NewCocinaVista(repo repository.PedidoRepository, hub Difusor, maxPantalla int) *CocinaVista {
	if maxPantalla < 1 {
		maxPantalla = 3
	}
	return &CocinaVista{repo: repo, hub: hub, maxPantalla: maxPantalla}
}

// Snapshot returns the current kitchen screen.
func (v *CocinaVista) Snapshot() Pantalla {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pantallaLocked()
}

// pantallaLocked must be called with mu held.
func (v *CocinaVista) pantallaLocked() Pantalla {
	n := len(v.pedidos)
	corte := n
	if corte > v.maxPantalla {
		corte = v.maxPantalla
	}
	visibles := make([]model.Pedido, corte)
	copy(visibles, v.pedidos[:corte])
	return Pantalla{Pedidos: visibles, EnCola: n - corte}
}

// Resync reloads the queue from the database.
func (v *CocinaVista) Resync(ctx context.Context) {
	pedidos, err := v.repo.ListNoTerminados(ctx)
	if err != nil {
		log.Error().Err(err).Msg("vista: resync de cocina fallido")
		return
	}
	v.mu.Lock()
	v.pedidos = pedidos
	pantalla := v.pantallaLocked()
	v.mu.Unlock()

	v.difundir(pantalla)
}

// ManejarEvento applies one pedidos feed event to the queue.
//
// Inserts are idempotent (a replayed event for a known id is a no-op).
// Updates replace the row in place (a merge grows items without moving the
// order's queue position) or drop it when terminado flipped. The chime
// sounds for every event that leaves the order pending: a new arrival, a
// merge onto one already cooking, or an update that fills a gap. Removals
// are silent.
func (v *CocinaVista) ManejarEvento(_ context.Context, ev feed.Evento) {
	var p model.Pedido
	if err := json.Unmarshal(ev.New, &p); err != nil {
		log.Error().Err(err).Msg("vista: evento de pedido invalido")
		return
	}

	suena := false
	v.mu.Lock()
	switch {
	case ev.Tipo == feed.TipoInsert && !p.Terminado:
		if v.idxLocked(p.ID) == -1 {
			v.insertarLocked(p)
			suena = true
		}
	case ev.Tipo == feed.TipoUpdate && p.Terminado:
		v.quitarLocked(p.ID)
	case ev.Tipo == feed.TipoUpdate:
		if i := v.idxLocked(p.ID); i >= 0 {
			v.pedidos[i] = p
		} else {
			// Update for an order we never saw (gap): treat as arrival.
			v.insertarLocked(p)
		}
		suena = true
	}
	pantalla := v.pantallaLocked()
	v.mu.Unlock()

	if suena {
		v.notificar(p)
	}
	v.difundir(pantalla)
}

// MarcarTerminado closes an order from the kitchen screen. The queue entry
// is removed optimistically before the write lands; if the order was already
// closed by someone else the removal was correct anyway.
func (v *CocinaVista) MarcarTerminado(ctx context.Context, publicador *feed.Publicador, id int64) error {
	v.mu.Lock()
	v.quitarLocked(id)
	pantalla := v.pantallaLocked()
	v.mu.Unlock()
	v.difundir(pantalla)

	filas, err := v.repo.MarcarTerminado(ctx, id)
	if err != nil {
		// Restore from the source of truth, the optimistic removal may
		// have been wrong.
		v.Resync(ctx)
		return err
	}
	if filas == 0 {
		return apierror.ErrNoEncontrado
	}

	p, err := v.repo.FindByID(ctx, id)
	if err == nil {
		publicador.Publicar(ctx, feed.TablaPedidos, feed.TipoUpdate, p, nil)
	}
	return nil
}

// Registrar wires the projection into the subscriber.
func (v *CocinaVista) Registrar(s *feed.Suscriptor) {
	s.Suscribir(feed.TablaPedidos, v.ManejarEvento)
	s.OnResync(v.Resync)
}

// idxLocked must be called with mu held.
func (v *CocinaVista) idxLocked(id int64) int {
	for i := range v.pedidos {
		if v.pedidos[i].ID == id {
			return i
		}
	}
	return -1
}

// insertarLocked keeps the slice sorted by id asc; must be called with mu held.
func (v *CocinaVista) insertarLocked(p model.Pedido) {
	i := len(v.pedidos)
	for j := range v.pedidos {
		if v.pedidos[j].ID > p.ID {
			i = j
			break
		}
	}
	v.pedidos = append(v.pedidos, model.Pedido{})
	copy(v.pedidos[i+1:], v.pedidos[i:])
	v.pedidos[i] = p
}

// quitarLocked must be called with mu held.
func (v *CocinaVista) quitarLocked(id int64) {
	if i := v.idxLocked(id); i >= 0 {
		v.pedidos = append(v.pedidos[:i], v.pedidos[i+1:]...)
	}
}

func (v *CocinaVista) difundir(p Pantalla) {
	if v.hub != nil {
		v.hub.Broadcast(ws.CanalCocina, ws.EventoCocina, p)
	}
}

func (v *CocinaVista) notificar(p model.Pedido) {
	if v.hub != nil {
		v.hub.Broadcast(ws.CanalCocina, ws.EventoNotificar, map[string]interface{}{
			"pedido_id": p.ID,
			"destino":   p.Destino,
		})
	}
}
