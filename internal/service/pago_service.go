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
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/turno"
)

type PagoService interface {
	// Cobrar settles the active order at a destination exactly once: stamps
	// method and business date/time, frees the destination, and fans out to
	// the deferred-billing ledgers and the invoice queue as requested.
	// mesero is the settling staff's display name; the deferred ledgers
	// record who collected, which is not always who served.
	Cobrar(ctx context.Context, mesero string, req dto.CobrarRequest) (*dto.CobroResponse, error)
}

type pagoService struct {
	pedidos    repository.PedidoRepository
	mesas      repository.MesaRepository
	recargos   repository.RecargoRepository
	publicador *feed.Publicador
	ahora      func() (fecha, hora string)
}

func NewPagoService(
	pedidos repository.PedidoRepository,
	mesas repository.MesaRepository,
	recargos repository.RecargoRepository,
	publicador *feed.Publicador,
) PagoService {
	return &pagoService{
		pedidos:    pedidos,
		mesas:      mesas,
		recargos:   recargos,
		publicador: publicador,
		ahora:      func() (string, string) { return turno.FechaHora(turno.Ahora()) },
	}
}

// validar checks the method/sub-identifier pairing before touching anything.
func validar(req dto.CobrarRequest) error {
	switch req.Metodo {
	case model.MetodoRecargado:
		if req.Habitacion == nil {
			return fmt.Errorf("%w: metodo recargado requiere habitacion", apierror.ErrValidacion)
		}
	case model.MetodoEmpleados:
		if req.Empleado == nil || *req.Empleado == "" {
			return fmt.Errorf("%w: metodo empleados requiere empleado", apierror.ErrValidacion)
		}
	case model.MetodoEventos:
		if req.Evento == nil || *req.Evento == "" {
			return fmt.Errorf("%w: metodo eventos requiere evento", apierror.ErrValidacion)
		}
	}
	if req.Facturar && (req.NIT == nil || *req.NIT == "") {
		return fmt.Errorf("%w: facturar requiere nit", apierror.ErrValidacion)
	}
	return nil
}

func (s *pagoService) Cobrar(ctx context.Context, mesero string, req dto.CobrarRequest) (*dto.CobroResponse, error) {
	if err := validar(req); err != nil {
		return nil, err
	}

	fecha, hora := s.ahora()

	var (
		pedido     model.Pedido
		factura    *model.Factura
		extraTabla string
		extraRow   interface{}
	)

	txErr := runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		// The occupancy row is the only index a destination has; a free
		// destination means there is nothing to settle.
		mesa, err := s.mesas.FindForUpdate(ctx, tx, req.Tipo, req.Numero)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNoEncontrado
		}
		if err != nil {
			return err
		}

		p, err := s.pedidos.FindForUpdate(ctx, tx, mesa.PedidoID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNoEncontrado
		}
		if err != nil {
			return err
		}
		if p.MetodoPago != nil {
			return fmt.Errorf("%w: el pedido %d ya fue cobrado", apierror.ErrValidacion, p.ID)
		}

		metodo := req.Metodo
		p.MetodoPago = &metodo
		p.Fecha = &fecha
		p.Hora = &hora
		p.Terminado = true

		detalle := model.Simplificar(p.Items)

		switch req.Metodo {
		case model.MetodoRecargado:
			// El pedido queda apuntando a la habitacion que lo absorbio.
			p.Numero = fmt.Sprintf("%d", *req.Habitacion)
			rec := &model.PedidoRecargado{
				PedidoID:      p.ID,
				Habitacion:    p.Numero,
				DetallePedido: detalle,
				Mesero:        mesero,
				Total:         p.Total,
				Fecha:         fecha,
			}
			if err := s.recargos.CreateHabitacion(ctx, tx, rec); err != nil {
				return err
			}
			extraTabla, extraRow = feed.TablaRecargados, rec

		case model.MetodoEmpleados:
			rec := &model.EmpleadoRecargado{
				PedidoID:      p.ID,
				Empleado:      *req.Empleado,
				DetallePedido: detalle,
				Mesero:        mesero,
				Total:         p.Total,
				Fecha:         fecha,
			}
			if err := s.recargos.CreateEmpleado(ctx, tx, rec); err != nil {
				return err
			}
			extraTabla, extraRow = feed.TablaEmpleados, rec

		case model.MetodoEventos:
			rec := &model.EventoRecargado{
				PedidoID:      p.ID,
				Evento:        *req.Evento,
				DetallePedido: detalle,
				Mesero:        mesero,
				Total:         p.Total,
				Fecha:         fecha,
			}
			if err := s.recargos.CreateEvento(ctx, tx, rec); err != nil {
				return err
			}
			extraTabla, extraRow = feed.TablaEventos, rec
		}

		if req.Facturar {
			descripcion := "consumo"
			if req.Descripcion != nil && *req.Descripcion != "" {
				descripcion = *req.Descripcion
			}
			factura = &model.Factura{
				PedidoID:      p.ID,
				NIT:           *req.NIT,
				Descripcion:   descripcion,
				DetallePedido: detalle,
				Total:         p.Total,
				Fecha:         fecha,
			}
			if err := s.recargos.CreateFactura(ctx, tx, factura); err != nil {
				return err
			}
		}

		if err := s.pedidos.Update(ctx, tx, p); err != nil {
			return err
		}
		if err := s.mesas.DeleteByPedido(ctx, tx, p.ID); err != nil {
			return err
		}

		pedido = *p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.publicador.Publicar(ctx, feed.TablaPedidos, feed.TipoUpdate, pedido, nil)
	s.publicador.Publicar(ctx, feed.TablaMesas, feed.TipoDelete, nil, map[string]int64{"pedido_id": pedido.ID})
	if extraRow != nil {
		s.publicador.Publicar(ctx, extraTabla, feed.TipoInsert, extraRow, nil)
	}
	if factura != nil {
		s.publicador.Publicar(ctx, feed.TablaFacturas, feed.TipoInsert, factura, nil)
	}

	resp := &dto.CobroResponse{
		PedidoID: pedido.ID,
		Destino:  pedido.Destino,
		Metodo:   req.Metodo,
		Total:    pedido.Total,
		Fecha:    fecha,
		Hora:     hora,
		Diferido: extraRow != nil,
	}
	if factura != nil {
		resp.FacturaID = &factura.ID
	}
	return resp, nil
}
