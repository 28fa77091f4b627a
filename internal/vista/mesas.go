// Package vista holds the in-memory read models behind the panels: the
// occupancy map for waiters and the FIFO kitchen queue. Both are rebuilt
// from the database on every resync and nudged by change-feed events, so
// they converge even when individual events are missed.
package vista

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/feed"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/ws"
)

// MesasVista projects mesas_ocupadas for the waiter panel. Events only
// signal that something changed; the projection always refetches the whole
// table, which is small (one row per occupied destination) and makes every
// event trivially idempotent.
type MesasVista struct {
	repo repository.MesaRepository
	hub  Difusor

	mu    sync.RWMutex
	mesas []model.MesaOcupada
}

func NewMesasVista(repo repository.MesaRepository, hub Difusor) *MesasVista {
	return &MesasVista{repo: repo, hub: hub}
}

// Snapshot returns the current occupancy list.
func (v *MesasVista) Snapshot() []model.MesaOcupada {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.MesaOcupada, len(v.mesas))
	copy(out, v.mesas)
	return out
}

// Ocupada reports whether a destination currently has an open order.
func (v *MesasVista) Ocupada(tipo string, numero int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, m := range v.mesas {
		if m.Tipo == tipo && m.Numero == numero {
			return true
		}
	}
	return false
}

// Resync reloads the projection from the database and pushes the fresh map
// to the waiter panel.
func (v *MesasVista) Resync(ctx context.Context) {
	mesas, err := v.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("vista: resync de mesas fallido")
		return
	}
	v.mu.Lock()
	v.mesas = mesas
	v.mu.Unlock()

	if v.hub != nil {
		v.hub.Broadcast(ws.CanalMesero, ws.EventoMesas, mesas)
	}
}

// ManejarEvento handles one mesas_ocupadas feed event.
func (v *MesasVista) ManejarEvento(ctx context.Context, _ feed.Evento) {
	v.Resync(ctx)
}

// Registrar wires the projection into the subscriber.
func (v *MesasVista) Registrar(s *feed.Suscriptor) {
	s.Suscribir(feed.TablaMesas, v.ManejarEvento)
	s.OnResync(v.Resync)
}
