package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/feed"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/turno"
)

// GeneradorPDF renders a published snapshot to a file and returns its path.
type GeneradorPDF interface {
	GenerarReporte(r *model.ReporteEnviado) (string, error)
}

// EncoladorReporte queues the post-publish mail job.
type EncoladorReporte interface {
	EnqueueReporte(ctx context.Context, payload map[string]interface{}) error
}

type ReporteService interface {
	// Preview aggregates the shift containing en without persisting anything.
	Preview(ctx context.Context, en time.Time) (*dto.ReporteResponse, error)
	// Publicar aggregates, upserts the snapshot for (fecha, turno), renders
	// the PDF and queues the notification mail. Publishing the same shift
	// twice replaces the previous snapshot. A shift with no settled orders
	// fails with ErrValidacion so nobody mails an empty report.
	Publicar(ctx context.Context, nombre string, en time.Time) (*dto.ReporteResponse, error)
	Listar(ctx context.Context, limit int) ([]dto.ReporteResponse, error)
	Obtener(ctx context.Context, id int64) (*model.ReporteEnviado, error)
}

type reporteService struct {
	pedidos    repository.PedidoRepository
	reportes   repository.ReporteRepository
	pdf        GeneradorPDF
	encolador  EncoladorReporte
	publicador *feed.Publicador
}

func NewReporteService(
	pedidos repository.PedidoRepository,
	reportes repository.ReporteRepository,
	pdf GeneradorPDF,
	encolador EncoladorReporte,
	publicador *feed.Publicador,
) ReporteService {
	return &reporteService{
		pedidos:    pedidos,
		reportes:   reportes,
		pdf:        pdf,
		encolador:  encolador,
		publicador: publicador,
	}
}

// agregar computes the snapshot of the shift containing en. The shift key is
// the window's closing date, so the AM shift that starts the night before is
// filed under the day it closes.
func (s *reporteService) agregar(ctx context.Context, en time.Time) (*model.ReporteEnviado, error) {
	rango := turno.RangoDe(en)

	candidatos, err := s.pedidos.ListTerminadosEntre(ctx, turno.FechasConsulta(en))
	if err != nil {
		return nil, err
	}

	totales := make(map[string]decimal.Decimal, len(model.MetodosPago))
	for _, m := range model.MetodosPago {
		totales[m] = decimal.Zero
	}

	var incluidos model.PedidosJSON
	for _, p := range candidatos {
		if p.MetodoPago == nil || p.Fecha == nil || p.Hora == nil {
			continue
		}
		cobrado, err := turno.ParseFechaHora(*p.Fecha, *p.Hora)
		if err != nil {
			log.Warn().Int64("pedido_id", p.ID).Msg("reporte: fecha/hora ilegible, pedido omitido")
			continue
		}
		if !rango.Contiene(cobrado) {
			continue
		}
		if _, ok := totales[*p.MetodoPago]; !ok {
			log.Warn().Int64("pedido_id", p.ID).Str("metodo", *p.MetodoPago).Msg("reporte: metodo desconocido, pedido omitido")
			continue
		}
		totales[*p.MetodoPago] = totales[*p.MetodoPago].Add(p.Total)
		incluidos = append(incluidos, p)
	}

	return &model.ReporteEnviado{
		Fecha:              rango.Fin.Format("2006-01-02"),
		Turno:              rango.Etiqueta,
		TotalEfectivo:      totales[model.MetodoEfectivo],
		TotalTarjeta:       totales[model.MetodoTarjeta],
		TotalRecargado:     totales[model.MetodoRecargado],
		TotalTransferencia: totales[model.MetodoTransferencia],
		TotalEventos:       totales[model.MetodoEventos],
		TotalEmpleados:     totales[model.MetodoEmpleados],
		TotalPedidos:       len(incluidos),
		DatosReportes:      incluidos,
	}, nil
}

func (s *reporteService) Preview(ctx context.Context, en time.Time) (*dto.ReporteResponse, error) {
	rep, err := s.agregar(ctx, en)
	if err != nil {
		return nil, err
	}
	resp := dto.NuevoReporteResponse(*rep)
	return &resp, nil
}

func (s *reporteService) Publicar(ctx context.Context, nombre string, en time.Time) (*dto.ReporteResponse, error) {
	rep, err := s.agregar(ctx, en)
	if err != nil {
		return nil, err
	}
	if rep.TotalPedidos == 0 {
		return nil, fmt.Errorf("%w: el turno %s no tiene pedidos cobrados", apierror.ErrValidacion, rep.Turno)
	}
	rep.MeseroRecepcionista = nombre

	if s.pdf != nil {
		ruta, err := s.pdf.GenerarReporte(rep)
		if err != nil {
			// Publish continues without the artifact.
			log.Error().Err(err).Msg("reporte: PDF fallido")
		} else {
			rep.RutaPDF = &ruta
		}
	}

	if err := s.reportes.Upsert(ctx, rep); err != nil {
		return nil, err
	}

	s.publicador.Publicar(ctx, feed.TablaReportes, feed.TipoInsert, rep, nil)

	if s.encolador != nil {
		payload := map[string]interface{}{
			"reporte_id": rep.ID,
			"fecha":      rep.Fecha,
			"turno":      rep.Turno,
		}
		if err := s.encolador.EnqueueReporte(ctx, payload); err != nil {
			log.Error().Err(err).Msg("reporte: no se pudo encolar el envio por correo")
		}
	}

	resp := dto.NuevoReporteResponse(*rep)
	return &resp, nil
}

func (s *reporteService) Listar(ctx context.Context, limit int) ([]dto.ReporteResponse, error) {
	reps, err := s.reportes.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReporteResponse, len(reps))
	for i := range reps {
		out[i] = dto.NuevoReporteResponse(reps[i])
	}
	return out, nil
}

func (s *reporteService) Obtener(ctx context.Context, id int64) (*model.ReporteEnviado, error) {
	rep, err := s.reportes.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.ErrNoEncontrado
	}
	return rep, err
}
