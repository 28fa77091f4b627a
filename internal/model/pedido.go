package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Destination kinds. Numero identifies the table or room within its kind.
const (
	TipoMesa       = "mesa"
	TipoHabitacion = "habitacion"
)

// Destino renders the human key used on every screen ("Mesa 5", "Habitación 101").
func Destino(tipo string, numero int) string {
	if tipo == TipoHabitacion {
		return fmt.Sprintf("Habitación %d", numero)
	}
	return fmt.Sprintf("Mesa %d", numero)
}

// Item is one line of an order. PlatilloID links back to the catalog; Precio
// is the unit price frozen at the moment the item entered a draft (catalog
// price, never client-editable).
type Item struct {
	PlatilloID int64           `json:"id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
	Opciones   Opciones        `json:"opciones,omitempty"`
	Nota       string          `json:"nota,omitempty"`
}

// Subtotal returns precio × cantidad.
func (i Item) Subtotal() decimal.Decimal {
	return i.Precio.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}

// MismaLinea reports whether otro belongs to the same draft line: same dish
// and the same option set (set-wise), ignoring the note.
func (i Item) MismaLinea(otro Item) bool {
	return i.PlatilloID == otro.PlatilloID && i.Opciones.Iguales(otro.Opciones)
}

// Items is the JSONB column type for an order's line items.
type Items []Item

func (it Items) Value() (driver.Value, error) {
	if it == nil {
		return "[]", nil
	}
	b, err := json.Marshal(it)
	return string(b), err
}

func (it *Items) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*it = nil
		return nil
	case []byte:
		return json.Unmarshal(v, it)
	case string:
		return json.Unmarshal([]byte(v), it)
	default:
		return fmt.Errorf("items: cannot scan %T", src)
	}
}

// Total sums precio × cantidad over all lines.
func (it Items) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range it {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Pedido is an order addressed to a destination. It is created on first
// dispatch, grows by merge while open, is closed exactly once at settlement
// and is never physically deleted — a finished pedido is history.
//
// Fecha/Hora are the settlement date and time in the business timezone
// (UTC−6), stored as strings the way the reporting queries consume them;
// both stay nil while the order is open.
type Pedido struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Mesero  string `gorm:"not null" json:"mesero"`
	Destino string `gorm:"not null" json:"destino"`
	// Tipo: "mesa" | "habitacion"
	Tipo string `gorm:"type:varchar(20);not null;index:idx_pedidos_destino" json:"tipo"`
	// Numero starts as the destination number; a settlement with metodo
	// "recargado" overwrites it with the room the total was billed to.
	Numero     string          `gorm:"type:varchar(20);not null;index:idx_pedidos_destino" json:"numero"`
	Items      Items           `gorm:"type:jsonb;not null" json:"items"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Terminado  bool            `gorm:"not null;default:false;index" json:"terminado"`
	MetodoPago *string         `gorm:"type:varchar(20)" json:"metodo_pago"`
	Fecha      *string         `gorm:"type:varchar(10)" json:"fecha"`
	Hora       *string         `gorm:"type:varchar(8)" json:"hora"`
	CreadoEn   time.Time       `gorm:"autoCreateTime;column:creado_en" json:"creado_en"`
}

func (Pedido) TableName() string { return "pedidos" }

// Payment methods. The recargado/empleados/eventos variants defer collection
// to reception; facturar is orthogonal (any method may request an invoice).
const (
	MetodoEfectivo      = "efectivo"
	MetodoTarjeta       = "tarjeta"
	MetodoTransferencia = "transferencia"
	MetodoRecargado     = "recargado"
	MetodoEmpleados     = "empleados"
	MetodoEventos       = "eventos"
)

// MetodosPago lists every accepted payment method, in report column order.
var MetodosPago = []string{
	MetodoEfectivo, MetodoTarjeta, MetodoRecargado,
	MetodoTransferencia, MetodoEventos, MetodoEmpleados,
}
