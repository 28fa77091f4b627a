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

type RecepcionService interface {
	ListarHabitaciones(ctx context.Context, fecha string) ([]dto.CargoResponse, error)
	ListarEmpleados(ctx context.Context, fecha string) ([]dto.CargoResponse, error)
	ListarEventos(ctx context.Context, fecha string) ([]dto.CargoResponse, error)
	ListarFacturasPendientes(ctx context.Context) ([]dto.FacturaResponse, error)

	// CobrarHabitacion collects a room charge at checkout: the pedido is
	// re-settled with the method chosen at the desk, the ledger row is
	// deleted and, if asked, an invoice is queued for the real payment.
	CobrarHabitacion(ctx context.Context, id int64, recepcionista string, req dto.CobrarCargoRequest) error
	// CobrarEmpleado and CobrarEvento only clear their ledgers; those
	// consumptions stay settled under their original method.
	CobrarEmpleado(ctx context.Context, id int64) error
	CobrarEvento(ctx context.Context, id int64) error

	MarcarFacturada(ctx context.Context, id int64, facturado bool) error
	EliminarFactura(ctx context.Context, id int64) error
}

type recepcionService struct {
	recargos   repository.RecargoRepository
	pedidos    repository.PedidoRepository
	publicador *feed.Publicador
}

func NewRecepcionService(
	recargos repository.RecargoRepository,
	pedidos repository.PedidoRepository,
	publicador *feed.Publicador,
) RecepcionService {
	return &recepcionService{recargos: recargos, pedidos: pedidos, publicador: publicador}
}

func (s *recepcionService) ListarHabitaciones(ctx context.Context, fecha string) ([]dto.CargoResponse, error) {
	recs, err := s.recargos.ListHabitaciones(ctx, fecha)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CargoResponse, len(recs))
	for i := range recs {
		out[i] = dto.NuevoCargoHabitacion(recs[i])
	}
	return out, nil
}

func (s *recepcionService) ListarEmpleados(ctx context.Context, fecha string) ([]dto.CargoResponse, error) {
	recs, err := s.recargos.ListEmpleados(ctx, fecha)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CargoResponse, len(recs))
	for i := range recs {
		out[i] = dto.NuevoCargoEmpleado(recs[i])
	}
	return out, nil
}

func (s *recepcionService) ListarEventos(ctx context.Context, fecha string) ([]dto.CargoResponse, error) {
	recs, err := s.recargos.ListEventos(ctx, fecha)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CargoResponse, len(recs))
	for i := range recs {
		out[i] = dto.NuevoCargoEvento(recs[i])
	}
	return out, nil
}

func (s *recepcionService) ListarFacturasPendientes(ctx context.Context) ([]dto.FacturaResponse, error) {
	fs, err := s.recargos.ListFacturasPendientes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FacturaResponse, len(fs))
	for i := range fs {
		out[i] = dto.NuevaFacturaResponse(fs[i])
	}
	return out, nil
}

func (s *recepcionService) CobrarHabitacion(ctx context.Context, id int64, recepcionista string, req dto.CobrarCargoRequest) error {
	if req.Facturar && (req.NIT == nil || *req.NIT == "") {
		return fmt.Errorf("%w: facturar requiere nit", apierror.ErrValidacion)
	}

	rec, err := s.recargos.FindHabitacion(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.ErrNoEncontrado
	}
	if err != nil {
		return err
	}

	var pedido *model.Pedido
	var factura *model.Factura
	txErr := runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		p, err := s.pedidos.FindForUpdate(ctx, tx, rec.PedidoID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// The pedido was stamped "recargado" when the table was cleared;
		// the real payment happens now, so the row is re-settled with the
		// method chosen at the desk.
		if err == nil {
			fecha, hora := turno.FechaHora(turno.Ahora())
			metodo := req.Metodo
			p.Terminado = true
			p.MetodoPago = &metodo
			p.Numero = rec.Habitacion
			p.Fecha = &fecha
			p.Hora = &hora
			p.Mesero = rec.Mesero + "/" + recepcionista
			if err := s.pedidos.Update(ctx, tx, p); err != nil {
				return err
			}
			pedido = p
		}
		if req.Facturar {
			fecha, _ := turno.FechaHora(turno.Ahora())
			descripcion := "consumo"
			if req.Descripcion != nil && *req.Descripcion != "" {
				descripcion = *req.Descripcion
			}
			factura = &model.Factura{
				PedidoID:      rec.PedidoID,
				NIT:           *req.NIT,
				Descripcion:   descripcion,
				DetallePedido: rec.DetallePedido,
				Total:         rec.Total,
				Fecha:         fecha,
			}
			if err := s.recargos.CreateFactura(ctx, tx, factura); err != nil {
				return err
			}
		}
		return s.recargos.DeleteHabitacion(ctx, tx, id)
	})
	if txErr != nil {
		return txErr
	}

	if pedido != nil {
		s.publicador.Publicar(ctx, feed.TablaPedidos, feed.TipoUpdate, pedido, nil)
	}
	s.publicador.Publicar(ctx, feed.TablaRecargados, feed.TipoDelete, nil, rec)
	if factura != nil {
		s.publicador.Publicar(ctx, feed.TablaFacturas, feed.TipoInsert, factura, nil)
	}
	return nil
}

func (s *recepcionService) CobrarEmpleado(ctx context.Context, id int64) error {
	rec, err := s.recargos.FindEmpleado(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.ErrNoEncontrado
	}
	if err != nil {
		return err
	}
	if err := runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		return s.recargos.DeleteEmpleado(ctx, tx, id)
	}); err != nil {
		return err
	}
	s.publicador.Publicar(ctx, feed.TablaEmpleados, feed.TipoDelete, nil, rec)
	return nil
}

func (s *recepcionService) CobrarEvento(ctx context.Context, id int64) error {
	rec, err := s.recargos.FindEvento(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.ErrNoEncontrado
	}
	if err != nil {
		return err
	}
	if err := runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		return s.recargos.DeleteEvento(ctx, tx, id)
	}); err != nil {
		return err
	}
	s.publicador.Publicar(ctx, feed.TablaEventos, feed.TipoDelete, nil, rec)
	return nil
}

func (s *recepcionService) MarcarFacturada(ctx context.Context, id int64, facturado bool) error {
	filas, err := s.recargos.SetFacturado(ctx, id, facturado)
	if err != nil {
		return err
	}
	if filas == 0 {
		return apierror.ErrNoEncontrado
	}
	f, err := s.recargos.FindFactura(ctx, id)
	if err == nil {
		s.publicador.Publicar(ctx, feed.TablaFacturas, feed.TipoUpdate, f, nil)
	}
	return nil
}

func (s *recepcionService) EliminarFactura(ctx context.Context, id int64) error {
	f, err := s.recargos.FindFactura(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.ErrNoEncontrado
	}
	if err != nil {
		return err
	}
	if err := runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		return s.recargos.DeleteFactura(ctx, tx, id)
	}); err != nil {
		return err
	}
	s.publicador.Publicar(ctx, feed.TablaFacturas, feed.TipoDelete, nil, f)
	return nil
}
