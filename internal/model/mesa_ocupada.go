package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MesaOcupada is the live pointer from a destination to its open order,
// with a denormalized snapshot of items and running total for the table map.
//
// Invariant: a row exists if and only if a Pedido with terminado=false exists
// for (tipo, numero). Created in the same transaction as the pedido, updated
// in the same transaction as every merge, deleted in the same transaction as
// the settlement.
type MesaOcupada struct {
	ID       int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Numero   int             `gorm:"not null;uniqueIndex:uni_mesas_ocupadas_destino" json:"numero"`
	Tipo     string          `gorm:"type:varchar(20);not null;uniqueIndex:uni_mesas_ocupadas_destino" json:"tipo"`
	PedidoID int64           `gorm:"not null;index" json:"pedido_id"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Items    Items           `gorm:"type:jsonb;not null" json:"items"`
	CreadoEn time.Time       `gorm:"autoCreateTime;column:creado_en" json:"creado_en"`
}

func (MesaOcupada) TableName() string { return "mesas_ocupadas" }

// Destino renders the screen key for this occupancy ("Mesa 5").
func (m MesaOcupada) Destino() string { return Destino(m.Tipo, m.Numero) }
