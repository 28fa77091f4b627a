package worker

// reporte_worker.go
// Processes report-delivery jobs from QueueReporte: loads the published
// snapshot, composes the summary mail and hands the actual SMTP send to
// QueueEmail so a slow relay never blocks this queue.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
)

// ReporteJobPayload is the job envelope sent to QueueReporte.
type ReporteJobPayload struct {
	ReporteID int64  `json:"reporte_id"`
	Fecha     string `json:"fecha"`
	Turno     string `json:"turno"`
}

// ReporteWorker turns a published report into an outgoing email job.
type ReporteWorker struct {
	reportes   repository.ReporteRepository
	dispatcher *Dispatcher
	rdb        *redis.Client
	toEmail    string
}

func NewReporteWorker(reportes repository.ReporteRepository, dispatcher *Dispatcher, rdb *redis.Client, toEmail string) *ReporteWorker {
	return &ReporteWorker{reportes: reportes, dispatcher: dispatcher, rdb: rdb, toEmail: toEmail}
}

// Process loads the report row and enqueues the delivery mail.
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}
	if w.toEmail == "" {
		log.Warn().Int64("reporte_id", payload.ReporteID).Msg("reporte_worker: REPORTE_EMAIL not configured — skipping")
		return
	}

	rep, err := w.reportes.FindByID(ctx, payload.ReporteID)
	if err != nil {
		log.Error().Err(err).Int64("reporte_id", payload.ReporteID).Msg("reporte_worker: report not found")
		SendToDLQ(ctx, w.rdb, QueueReporte, "reporte", raw, "report not found: "+err.Error(), 1)
		return
	}

	general := rep.TotalEfectivo.Add(rep.TotalTarjeta).
		Add(rep.TotalTransferencia).Add(rep.TotalRecargado).
		Add(rep.TotalEmpleados).Add(rep.TotalEventos)

	subject := fmt.Sprintf("Reporte de turno %s — %s", rep.Turno, rep.Fecha)
	body := fmt.Sprintf(
		"Reporte de turno %s del %s\n\n"+
			"Efectivo:        Q%s\n"+
			"Tarjeta:         Q%s\n"+
			"Transferencia:   Q%s\n"+
			"Recargado:       Q%s\n"+
			"Empleados:       Q%s\n"+
			"Eventos:         Q%s\n\n"+
			"Total general:   Q%s\n"+
			"Pedidos:         %d\n\n"+
			"Publicado por: %s\n",
		rep.Turno, rep.Fecha,
		rep.TotalEfectivo.StringFixed(2),
		rep.TotalTarjeta.StringFixed(2),
		rep.TotalTransferencia.StringFixed(2),
		rep.TotalRecargado.StringFixed(2),
		rep.TotalEmpleados.StringFixed(2),
		rep.TotalEventos.StringFixed(2),
		general.StringFixed(2),
		rep.TotalPedidos,
		rep.MeseroRecepcionista,
	)

	pdfPath := ""
	if rep.RutaPDF != nil {
		pdfPath = *rep.RutaPDF
	}

	emailPayload := EmailJobPayload{
		ToEmail: w.toEmail,
		Subject: subject,
		Body:    body,
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailPayload); err != nil {
		log.Error().Err(err).Int64("reporte_id", payload.ReporteID).Msg("reporte_worker: failed to enqueue email")
		SendToDLQ(ctx, w.rdb, QueueReporte, "reporte", raw, "enqueue email: "+err.Error(), 1)
		return
	}
	log.Info().Int64("reporte_id", rep.ID).Str("turno", rep.Turno).Msg("reporte_worker: delivery mail queued")
}
