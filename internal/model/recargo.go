package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ItemSimplificado is the reduced line kept on deferred-billing records:
// name, quantity and unit price only — options and notes are dropped at
// settlement because reception never needs them.
type ItemSimplificado struct {
	Nombre   string          `json:"nombre"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
}

// Detalle is the JSONB column type for simplified item snapshots.
type Detalle []ItemSimplificado

func (d Detalle) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	return string(b), err
}

func (d *Detalle) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("detalle: cannot scan %T", src)
	}
}

// Simplificar strips items down to the deferred-billing snapshot.
func Simplificar(items Items) Detalle {
	out := make(Detalle, 0, len(items))
	for _, it := range items {
		out = append(out, ItemSimplificado{Nombre: it.Nombre, Cantidad: it.Cantidad, Precio: it.Precio})
	}
	return out
}

// PedidoRecargado bills an order to a hotel room. Collection is signalled by
// deleting the row (reception re-settles the pedido first).
type PedidoRecargado struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PedidoID      int64           `gorm:"not null;index" json:"pedido_id"`
	Habitacion    string          `gorm:"type:varchar(20);not null;index" json:"habitacion"`
	DetallePedido Detalle         `gorm:"type:jsonb;not null" json:"detalle_pedido"`
	Mesero        string          `gorm:"not null" json:"mesero"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Fecha         string          `gorm:"type:varchar(10);not null" json:"fecha"`
	CreadoEn      time.Time       `gorm:"autoCreateTime;column:creado_en" json:"creado_en"`
}

func (PedidoRecargado) TableName() string { return "pedidos_recargados" }

// EmpleadoRecargado bills an order to a staff member. Deleted when collected.
type EmpleadoRecargado struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PedidoID      int64           `gorm:"not null;index" json:"pedido_id"`
	Empleado      string          `gorm:"not null" json:"empleado"`
	DetallePedido Detalle         `gorm:"type:jsonb;not null" json:"detalle_pedido"`
	Mesero        string          `gorm:"not null" json:"mesero"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Fecha         string          `gorm:"type:varchar(10);not null" json:"fecha"`
	CreadoEn      time.Time       `gorm:"autoCreateTime;column:creado_en" json:"creado_en"`
}

func (EmpleadoRecargado) TableName() string { return "empleados_recargados" }

// EventoRecargado bills an order to a hosted event. Deleted when collected.
type EventoRecargado struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PedidoID      int64           `gorm:"not null;index" json:"pedido_id"`
	Evento        string          `gorm:"not null" json:"evento"`
	DetallePedido Detalle         `gorm:"type:jsonb;not null" json:"detalle_pedido"`
	Mesero        string          `gorm:"not null" json:"mesero"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Fecha         string          `gorm:"type:varchar(10);not null" json:"fecha"`
	CreadoEn      time.Time       `gorm:"autoCreateTime;column:creado_en" json:"creado_en"`
}

func (EventoRecargado) TableName() string { return "eventos_recargados" }

// Factura queues an order for formal invoicing. Unlike the recharge variants
// it carries a facturado flag (reception filters on facturado=false) and the
// row is deleted once the invoice is actually printed.
type Factura struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PedidoID      int64           `gorm:"not null;index" json:"pedido_id"`
	NIT           string          `gorm:"type:varchar(20);not null;column:nit" json:"nit"`
	Descripcion   string          `gorm:"not null;default:'consumo'" json:"descripcion"`
	DetallePedido Detalle         `gorm:"type:jsonb;not null" json:"detalle_pedido"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Facturado     bool            `gorm:"not null;default:false;index" json:"facturado"`
	Fecha         string          `gorm:"type:varchar(10);not null" json:"fecha"`
	CreadoEn      time.Time       `gorm:"autoCreateTime;column:creado_en" json:"creado_en"`
}

func (Factura) TableName() string { return "facturas" }
