package worker

// turno_cron.go
// Background goroutine that publishes the shift report automatically at the
// last minute of each shift (13:59 / 21:59 business time), so a forgotten
// manual close never loses the snapshot. Manual publishes remain possible;
// the upsert keyed by (fecha, turno) makes both paths converge.

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/service"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/turno"
)

const turnoTickInterval = 30 * time.Second

// NombreSistema is recorded as the publisher on auto-generated reports.
const NombreSistema = "sistema"

// StartTurnoCron launches a goroutine that ticks every 30s and publishes the
// closing shift's report during each cut-off minute, at most once per minute
// and only when the shift settled at least one order.
func StartTurnoCron(ctx context.Context, reportes service.ReporteService) {
	go func() {
		ticker := time.NewTicker(turnoTickInterval)
		defer ticker.Stop()

		log.Info().Msg("turno_cron: started")

		var ultimoCorte string
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("turno_cron: shutting down")
				return
			case <-ticker.C:
				ahora := turno.Ahora()
				if !turno.EsMinutoDeCorte(ahora) {
					continue
				}
				// Two ticks land in the same cut-off minute; fire once.
				minuto := ahora.Format("2006-01-02 15:04")
				if minuto == ultimoCorte {
					continue
				}
				ultimoCorte = minuto

				rango := turno.RangoDe(ahora)
				if _, err := reportes.Publicar(ctx, NombreSistema, ahora); err != nil {
					// A quiet shift has nothing to report.
					if errors.Is(err, apierror.ErrValidacion) {
						log.Info().Str("turno", rango.Etiqueta).Msg("turno_cron: turno sin pedidos, no se publica")
						continue
					}
					log.Error().Err(err).Str("turno", rango.Etiqueta).Msg("turno_cron: auto-publish failed")
					continue
				}
				log.Info().Str("turno", rango.Etiqueta).Str("minuto", minuto).Msg("turno_cron: reporte publicado")
			}
		}
	}()
}
