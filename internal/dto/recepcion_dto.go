package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

// CargoFilter is bound from query string of the deferred-charge listings.
type CargoFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD; empty = all pending
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CobrarCargoRequest collects a deferred room charge at reception, turning it
// into a real payment with the method chosen at checkout.
type CobrarCargoRequest struct {
	Metodo      string  `json:"metodo"      validate:"required,oneof=efectivo tarjeta transferencia"`
	Facturar    bool    `json:"facturar"`
	NIT         *string `json:"nit"         validate:"omitempty,min=3,max=20"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=200"`
}

// MarcarFacturadaRequest flips the emitted flag once the fiscal invoice is
// actually issued outside the system.
type MarcarFacturadaRequest struct {
	Facturado bool `json:"facturado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CargoResponse struct {
	ID       int64                    `json:"id"`
	PedidoID int64                    `json:"pedido_id"`
	Detalle  []model.ItemSimplificado `json:"detalle_pedido"`
	Mesero   string                   `json:"mesero"`
	Total    decimal.Decimal          `json:"total"`
	Fecha    string                   `json:"fecha"`
	// Exactly one of the following identifies the debtor.
	Habitacion *string `json:"habitacion,omitempty"`
	Empleado   *string `json:"empleado,omitempty"`
	Evento     *string `json:"evento,omitempty"`
}

type FacturaResponse struct {
	ID          int64                    `json:"id"`
	PedidoID    int64                    `json:"pedido_id"`
	NIT         string                   `json:"nit"`
	Descripcion string                   `json:"descripcion"`
	Detalle     []model.ItemSimplificado `json:"detalle_pedido"`
	Total       decimal.Decimal          `json:"total"`
	Fecha       string                   `json:"fecha"`
	Facturado   bool                     `json:"facturado"`
}

func NuevoCargoHabitacion(r model.PedidoRecargado) CargoResponse {
	hab := r.Habitacion
	return CargoResponse{
		ID: r.ID, PedidoID: r.PedidoID, Detalle: r.DetallePedido,
		Mesero: r.Mesero, Total: r.Total, Fecha: r.Fecha,
		Habitacion: &hab,
	}
}

func NuevoCargoEmpleado(r model.EmpleadoRecargado) CargoResponse {
	emp := r.Empleado
	return CargoResponse{
		ID: r.ID, PedidoID: r.PedidoID, Detalle: r.DetallePedido,
		Mesero: r.Mesero, Total: r.Total, Fecha: r.Fecha,
		Empleado: &emp,
	}
}

func NuevoCargoEvento(r model.EventoRecargado) CargoResponse {
	ev := r.Evento
	return CargoResponse{
		ID: r.ID, PedidoID: r.PedidoID, Detalle: r.DetallePedido,
		Mesero: r.Mesero, Total: r.Total, Fecha: r.Fecha,
		Evento: &ev,
	}
}

func NuevaFacturaResponse(f model.Factura) FacturaResponse {
	return FacturaResponse{
		ID: f.ID, PedidoID: f.PedidoID, NIT: f.NIT,
		Descripcion: f.Descripcion, Detalle: f.DetallePedido,
		Total: f.Total, Fecha: f.Fecha, Facturado: f.Facturado,
	}
}
