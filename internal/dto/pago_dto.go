package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CobrarRequest settles the active order at a destination. The waiter panel
// works in tables and rooms, never order ids, so the destination is the key
// and the occupancy row resolves it. The sub-identifier fields are required
// only for their method: Habitacion for recargado, Empleado for empleados,
// Evento for eventos. Facturar is orthogonal to the method and records an
// invoice with the given NIT.
type CobrarRequest struct {
	Tipo   string `json:"tipo"   validate:"required,oneof=mesa habitacion"`
	Numero int    `json:"numero" validate:"required,min=1"`
	Metodo string `json:"metodo" validate:"required,oneof=efectivo tarjeta recargado transferencia eventos empleados"`

	Habitacion *int    `json:"habitacion" validate:"omitempty,min=1"`
	Empleado   *string `json:"empleado"   validate:"omitempty,min=2,max=100"`
	Evento     *string `json:"evento"     validate:"omitempty,min=2,max=150"`

	Facturar    bool    `json:"facturar"`
	NIT         *string `json:"nit"         validate:"omitempty,min=3,max=20"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CobroResponse struct {
	PedidoID int64           `json:"pedido_id"`
	Destino  string          `json:"destino"`
	Metodo   string          `json:"metodo"`
	Total    decimal.Decimal `json:"total"`
	Fecha    string          `json:"fecha"`
	Hora     string          `json:"hora"`
	// Diferido is true when the charge went to a deferred-billing ledger
	// (recargado, empleados, eventos) instead of being collected now.
	Diferido  bool   `json:"diferido"`
	FacturaID *int64 `json:"factura_id,omitempty"`
}
