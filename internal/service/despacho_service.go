package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/feed"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
)

type DespachoService interface {
	// Despachar sends a composed draft to a destination. If the destination
	// is free it opens a new order; if it is occupied and the caller
	// confirmed, it appends onto the existing order; otherwise it fails
	// with ErrMesaOcupada so the panel can ask for confirmation.
	Despachar(ctx context.Context, mesero string, req dto.DespacharRequest) (*dto.PedidoResponse, error)
}

// MesaOcupadaError carries the order already open on a destination, so
// the confirmation prompt can show what would be merged into.
type MesaOcupadaError struct {
	Pedido dto.PedidoResponse
}

func (e *MesaOcupadaError) Error() string { return apierror.ErrMesaOcupada.Error() }

func (e *MesaOcupadaError) Unwrap() error { return apierror.ErrMesaOcupada }

type despachoService struct {
	pedidos    repository.PedidoRepository
	mesas      repository.MesaRepository
	platillos  repository.PlatilloRepository
	publicador *feed.Publicador
}

func NewDespachoService(
	pedidos repository.PedidoRepository,
	mesas repository.MesaRepository,
	platillos repository.PlatilloRepository,
	publicador *feed.Publicador,
) DespachoService {
	return &despachoService{pedidos: pedidos, mesas: mesas, platillos: platillos, publicador: publicador}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolver builds the persistable lines from the request: the unit price
// always comes from the catalog, options are normalized to the canonical
// pair form, and inactive or unknown dishes reject the whole dispatch.
func (s *despachoService) resolver(ctx context.Context, items []dto.ItemRequest) (model.Items, error) {
	out := make(model.Items, 0, len(items))
	for _, it := range items {
		p, err := s.platillos.FindByID(ctx, it.PlatilloID)
		if err != nil {
			return nil, fmt.Errorf("%w: platillo %d no existe", apierror.ErrValidacion, it.PlatilloID)
		}
		if !p.Activo {
			return nil, fmt.Errorf("%w: platillo %q esta inactivo", apierror.ErrValidacion, p.Nombre)
		}
		out = append(out, model.Item{
			PlatilloID: p.ID,
			Nombre:     p.Nombre,
			Precio:     p.Precio,
			Cantidad:   it.Cantidad,
			Opciones:   model.NormalizarOpciones(it.Opciones),
			Nota:       it.Nota,
		})
	}
	return out, nil
}

func (s *despachoService) Despachar(ctx context.Context, mesero string, req dto.DespacharRequest) (*dto.PedidoResponse, error) {
	nuevos, err := s.resolver(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	var (
		pedido   model.Pedido
		mesa     model.MesaOcupada
		agregado bool
	)

	txErr := runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		// The occupancy row is the merge gate: locking it serializes every
		// dispatch against the same destination, so two waiters appending
		// at once cannot lose each other's lines.
		existente, err := s.mesas.FindForUpdate(ctx, tx, req.Tipo, req.Numero)
		switch {
		case err == nil:
			if !req.ConfirmarAgregado {
				if abierto, ferr := s.pedidos.FindByID(ctx, existente.PedidoID); ferr == nil {
					return &MesaOcupadaError{Pedido: dto.NuevoPedidoResponse(*abierto, false)}
				}
				return apierror.ErrMesaOcupada
			}
			agregado = true
			return s.agregar(ctx, tx, existente, nuevos, &pedido, &mesa)

		case errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apierror.ErrNoEncontrado):
			return s.abrir(ctx, tx, mesero, req, nuevos, &pedido, &mesa)

		default:
			return err
		}
	})
	if txErr != nil {
		return nil, txErr
	}

	// Events go out after commit; a crash in between only costs freshness
	// because projections resync from the database.
	if agregado {
		s.publicador.Publicar(ctx, feed.TablaPedidos, feed.TipoUpdate, pedido, nil)
		s.publicador.Publicar(ctx, feed.TablaMesas, feed.TipoUpdate, mesa, nil)
	} else {
		s.publicador.Publicar(ctx, feed.TablaPedidos, feed.TipoInsert, pedido, nil)
		s.publicador.Publicar(ctx, feed.TablaMesas, feed.TipoInsert, mesa, nil)
	}

	resp := dto.NuevoPedidoResponse(pedido, agregado)
	return &resp, nil
}

// abrir creates the order and its occupancy row in one transaction.
func (s *despachoService) abrir(ctx context.Context, tx *gorm.DB, mesero string, req dto.DespacharRequest, items model.Items, pedido *model.Pedido, mesa *model.MesaOcupada) error {
	*pedido = model.Pedido{
		Mesero:  mesero,
		Destino: model.Destino(req.Tipo, req.Numero),
		Tipo:    req.Tipo,
		Numero:  fmt.Sprintf("%d", req.Numero),
		Items:   items,
		Total:   items.Total(),
	}
	if err := s.pedidos.Create(ctx, tx, pedido); err != nil {
		return err
	}

	*mesa = model.MesaOcupada{
		Numero:   req.Numero,
		Tipo:     req.Tipo,
		PedidoID: pedido.ID,
		Total:    pedido.Total,
		Items:    items,
	}
	return s.mesas.Create(ctx, tx, mesa)
}

// agregar appends the new lines onto the existing order. Lines are appended
// as sent, never collapsed with what the kitchen already has: a second
// "Hamburguesa sin cebolla" must show up as its own line so the kitchen sees
// what is new.
func (s *despachoService) agregar(ctx context.Context, tx *gorm.DB, existente *model.MesaOcupada, nuevos model.Items, pedido *model.Pedido, mesa *model.MesaOcupada) error {
	p, err := s.pedidos.FindForUpdate(ctx, tx, existente.PedidoID)
	if err != nil {
		return err
	}

	p.Items = append(p.Items, nuevos...)
	p.Total = p.Total.Add(nuevos.Total())
	if err := s.pedidos.Update(ctx, tx, p); err != nil {
		return err
	}

	existente.Items = p.Items
	existente.Total = p.Total
	if err := s.mesas.Update(ctx, tx, existente); err != nil {
		return err
	}

	*pedido = *p
	*mesa = *existente
	return nil
}
