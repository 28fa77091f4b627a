package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PublicarReporteRequest publishes the current shift snapshot. The name is
// recorded as the responsible receptionist; when the cron auto-publishes it
// uses "sistema".
type PublicarReporteRequest struct {
	MeseroRecepcionista string `json:"mesero_recepcionista" validate:"required,min=2,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ReporteResponse is both the live preview (ID zero, RutaPDF nil) and the
// persisted snapshot.
type ReporteResponse struct {
	ID                  int64                      `json:"id,omitempty"`
	Fecha               string                     `json:"fecha"`
	Turno               string                     `json:"turno"`
	Totales             map[string]decimal.Decimal `json:"totales"`
	TotalGeneral        decimal.Decimal            `json:"total_general"`
	TotalPedidos        int                        `json:"total_pedidos"`
	Pedidos             []PedidoResponse           `json:"pedidos"`
	MeseroRecepcionista string                     `json:"mesero_recepcionista,omitempty"`
	RutaPDF             *string                    `json:"ruta_pdf,omitempty"`
}

func NuevoReporteResponse(r model.ReporteEnviado) ReporteResponse {
	totales := map[string]decimal.Decimal{
		model.MetodoEfectivo:      r.TotalEfectivo,
		model.MetodoTarjeta:       r.TotalTarjeta,
		model.MetodoRecargado:     r.TotalRecargado,
		model.MetodoTransferencia: r.TotalTransferencia,
		model.MetodoEventos:       r.TotalEventos,
		model.MetodoEmpleados:     r.TotalEmpleados,
	}
	general := decimal.Zero
	for _, t := range totales {
		general = general.Add(t)
	}
	pedidos := make([]PedidoResponse, 0, len(r.DatosReportes))
	for _, p := range r.DatosReportes {
		pedidos = append(pedidos, NuevoPedidoResponse(p, false))
	}
	return ReporteResponse{
		ID:                  r.ID,
		Fecha:               r.Fecha,
		Turno:               r.Turno,
		Totales:             totales,
		TotalGeneral:        general,
		TotalPedidos:        r.TotalPedidos,
		Pedidos:             pedidos,
		MeseroRecepcionista: r.MeseroRecepcionista,
		RutaPDF:             r.RutaPDF,
	}
}
