package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemRequest is a single dish line inside a draft or dispatch request.
// Opciones accepts either the canonical pair list or a keyed object; the
// service normalizes it before comparing lines.
type ItemRequest struct {
	PlatilloID int64           `json:"id"       validate:"required,min=1"`
	Cantidad   int             `json:"cantidad" validate:"required,min=1"`
	Opciones   json.RawMessage `json:"opciones" validate:"omitempty"`
	Nota       string          `json:"nota"     validate:"omitempty,max=300"`
}

// DespacharRequest sends a draft to kitchen. ConfirmarAgregado must be true
// to append onto a destination that already has an active order; without it
// the dispatch is rejected so the waiter can confirm first.
type DespacharRequest struct {
	Tipo              string        `json:"tipo"               validate:"required,oneof=mesa habitacion"`
	Numero            int           `json:"numero"             validate:"required,min=1"`
	Items             []ItemRequest `json:"items"              validate:"required,min=1,dive"`
	ConfirmarAgregado bool          `json:"confirmar_agregado"`
}

// AgregarItemRequest adds (or merges) one line into the caller's draft.
type AgregarItemRequest struct {
	Item ItemRequest `json:"item" validate:"required"`
}

// QuitarItemRequest removes the draft line matching dish, options and note.
type QuitarItemRequest struct {
	PlatilloID int64           `json:"id"       validate:"required,min=1"`
	Opciones   json.RawMessage `json:"opciones" validate:"omitempty"`
	Nota       string          `json:"nota"     validate:"omitempty,max=300"`
}

// CantidadItemRequest sets the quantity of a draft line; below 1 removes it.
type CantidadItemRequest struct {
	PlatilloID int64           `json:"id"       validate:"required,min=1"`
	Opciones   json.RawMessage `json:"opciones" validate:"omitempty"`
	Nota       string          `json:"nota"     validate:"omitempty,max=300"`
	Cantidad   int             `json:"cantidad" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemResponse struct {
	PlatilloID int64           `json:"id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
	Opciones   model.Opciones  `json:"opciones"`
	Nota       string          `json:"nota,omitempty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID        int64           `json:"id"`
	Mesero    string          `json:"mesero"`
	Destino   string          `json:"destino"`
	Tipo      string          `json:"tipo"`
	Numero    string          `json:"numero"`
	Items     []ItemResponse  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Terminado bool            `json:"terminado"`
	// Agregado is true when the dispatch merged into an existing order
	// instead of opening a new one.
	Agregado bool `json:"agregado,omitempty"`
}

type BorradorResponse struct {
	Items []ItemResponse  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// NuevoItemResponse maps a model line to its wire shape.
func NuevoItemResponse(it model.Item) ItemResponse {
	return ItemResponse{
		PlatilloID: it.PlatilloID,
		Nombre:     it.Nombre,
		Precio:     it.Precio,
		Cantidad:   it.Cantidad,
		Opciones:   it.Opciones,
		Nota:       it.Nota,
		Subtotal:   it.Subtotal(),
	}
}

// NuevoBorradorResponse maps a draft's lines to the composer wire shape.
func NuevoBorradorResponse(items model.Items) BorradorResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NuevoItemResponse(it))
	}
	return BorradorResponse{Items: out, Total: items.Total()}
}

// NuevoPedidoResponse maps a persisted order to its wire shape.
func NuevoPedidoResponse(p model.Pedido, agregado bool) PedidoResponse {
	items := make([]ItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, NuevoItemResponse(it))
	}
	return PedidoResponse{
		ID:        p.ID,
		Mesero:    p.Mesero,
		Destino:   p.Destino,
		Tipo:      p.Tipo,
		Numero:    p.Numero,
		Items:     items,
		Total:     p.Total,
		Terminado: p.Terminado,
		Agregado:  agregado,
	}
}
