// Package feed is the change bus between writers and read models: every
// committed mutation on a fed table publishes one event on the Redis channel
// "feed:<tabla>", and projections resubscribe on reconnect and resync from
// the database, so a missed event degrades freshness but never correctness.
package feed

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Event kinds mirror row mutations.
const (
	TipoInsert = "insert"
	TipoUpdate = "update"
	TipoDelete = "delete"
)

// Fed tables.
const (
	TablaPedidos    = "pedidos"
	TablaMesas      = "mesas_ocupadas"
	TablaRecargados = "pedidos_recargados"
	TablaEmpleados  = "empleados_recargados"
	TablaEventos    = "eventos_recargados"
	TablaFacturas   = "facturas"
	TablaReportes   = "reportes_enviados"
	TablaUsuarios   = "usuarios"
)

// Evento is one change-feed record. New carries the row after the mutation,
// Old the row before it; delete events only fill Old.
type Evento struct {
	Tabla string          `json:"tabla"`
	Tipo  string          `json:"tipo"`
	New   json.RawMessage `json:"new,omitempty"`
	Old   json.RawMessage `json:"old,omitempty"`
}

func canal(tabla string) string { return "feed:" + tabla }

// Publicador emits events after commit. Publish failures are logged and
// swallowed: the row is already durable and consumers resync on demand.
type Publicador struct {
	rdb *redis.Client
}

func NewPublicador(rdb *redis.Client) *Publicador { return &Publicador{rdb: rdb} }

// Publicar sends one event. Rows that fail to marshal are dropped with a log
// line; that only happens on programming errors.
func (p *Publicador) Publicar(ctx context.Context, tabla, tipo string, newRow, oldRow interface{}) {
	if p == nil || p.rdb == nil {
		return
	}
	ev := Evento{Tabla: tabla, Tipo: tipo}
	var err error
	if newRow != nil {
		if ev.New, err = json.Marshal(newRow); err != nil {
			log.Error().Err(err).Str("tabla", tabla).Msg("feed: marshal new row")
			return
		}
	}
	if oldRow != nil {
		if ev.Old, err = json.Marshal(oldRow); err != nil {
			log.Error().Err(err).Str("tabla", tabla).Msg("feed: marshal old row")
			return
		}
	}
	payload, _ := json.Marshal(ev)
	if err := p.rdb.Publish(ctx, canal(tabla), payload).Err(); err != nil {
		log.Warn().Err(err).Str("tabla", tabla).Str("tipo", tipo).Msg("feed: publish failed, consumers will resync")
	}
}

// Handler processes one decoded event. Handlers must be idempotent: Redis
// pub/sub is at-most-once per connection but resyncs can replay state.
type Handler func(ctx context.Context, ev Evento)

// Suscriptor fans events out to per-table handlers on a single Redis
// subscription. go-redis re-establishes dropped subscriptions internally;
// OnResync hooks let projections refetch after a gap.
type Suscriptor struct {
	rdb      *redis.Client
	handlers map[string][]Handler
	resyncs  []func(ctx context.Context)
}

func NewSuscriptor(rdb *redis.Client) *Suscriptor {
	return &Suscriptor{rdb: rdb, handlers: make(map[string][]Handler)}
}

// Suscribir registers h for every event of tabla. Must be called before Run.
func (s *Suscriptor) Suscribir(tabla string, h Handler) {
	s.handlers[tabla] = append(s.handlers[tabla], h)
}

// OnResync registers a refetch hook invoked once at startup and after every
// subscription gap.
func (s *Suscriptor) OnResync(fn func(ctx context.Context)) {
	s.resyncs = append(s.resyncs, fn)
}

// Run blocks consuming events until ctx is cancelled. Malformed payloads are
// logged and skipped.
func (s *Suscriptor) Run(ctx context.Context) {
	canales := make([]string, 0, len(s.handlers))
	for tabla := range s.handlers {
		canales = append(canales, canal(tabla))
	}
	if len(canales) == 0 {
		return
	}

	sub := s.rdb.Subscribe(ctx, canales...)
	defer sub.Close()

	s.resync(ctx)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Evento
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Error().Err(err).Str("canal", msg.Channel).Msg("feed: payload invalido")
				continue
			}
			for _, h := range s.handlers[ev.Tabla] {
				h(ctx, ev)
			}
		}
	}
}

func (s *Suscriptor) resync(ctx context.Context) {
	for _, fn := range s.resyncs {
		fn(ctx)
	}
}
