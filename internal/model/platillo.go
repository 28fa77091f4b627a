package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Categoria groups catalog dishes for the waiter panel.
type Categoria struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Nombre    string `gorm:"not null;uniqueIndex" json:"nombre"`
	Imagen    string `json:"imagen"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Categoria) TableName() string { return "categorias" }

// OpcionCatalogo declares one configurable option of a dish and the values a
// waiter may pick from ("Término": ["Rojo", "Medio", "Bien cocido"]).
type OpcionCatalogo struct {
	Nombre  string   `json:"nombre"`
	Valores []string `json:"valores"`
}

// OpcionesCatalogo is the JSONB column holding a dish's option catalog.
type OpcionesCatalogo []OpcionCatalogo

func (o OpcionesCatalogo) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	return string(b), err
}

func (o *OpcionesCatalogo) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("opciones_catalogo: cannot scan %T", src)
	}
}

// Platillo is a catalog dish. Precio is the only price source — drafts copy
// it and clients cannot override it.
type Platillo struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Nombre      string           `gorm:"not null" json:"nombre"`
	Precio      decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"precio"`
	CategoriaID int64            `gorm:"not null;index" json:"categoria_id"`
	Opciones    OpcionesCatalogo `gorm:"type:jsonb" json:"opciones"`
	Activo      bool             `gorm:"not null;default:true" json:"activo"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Platillo) TableName() string { return "platillos" }
