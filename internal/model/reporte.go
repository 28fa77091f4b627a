package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PedidosJSON embeds the finished-order snapshot inside a report row.
type PedidosJSON []Pedido

func (p PedidosJSON) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	return string(b), err
}

func (p *PedidosJSON) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("pedidos_json: cannot scan %T", src)
	}
}

// ReporteEnviado is the shift sales snapshot delivered to reception.
// At most one row exists per (fecha, turno); re-publishing within the same
// shift overwrites totals, the embedded order list and the PDF — it never
// accumulates.
type ReporteEnviado struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Fecha string `gorm:"type:varchar(10);not null;uniqueIndex:uni_reportes_fecha_turno" json:"fecha"`
	// Turno: "AM" | "PM"
	Turno               string          `gorm:"type:varchar(4);not null;uniqueIndex:uni_reportes_fecha_turno" json:"turno"`
	TotalEfectivo       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_efectivo"`
	TotalTarjeta        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_tarjeta"`
	TotalRecargado      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_recargado"`
	TotalTransferencia  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_transferencia"`
	TotalEventos        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_eventos"`
	TotalEmpleados      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_empleados"`
	TotalPedidos        int             `gorm:"not null" json:"total_pedidos"`
	DatosReportes       PedidosJSON     `gorm:"type:jsonb;not null" json:"datos_reportes"`
	MeseroRecepcionista string          `gorm:"not null" json:"mesero_recepcionista"`
	// RutaPDF points at the rendered artifact under PDF_STORAGE_PATH.
	RutaPDF   *string   `gorm:"column:ruta_pdf" json:"ruta_pdf"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReporteEnviado) TableName() string { return "reportes_enviados" }
