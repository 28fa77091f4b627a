package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpcionCatalogoRequest struct {
	Nombre  string   `json:"nombre"  validate:"required,min=1,max=60"`
	Valores []string `json:"valores" validate:"required,min=1,dive,min=1"`
}

type CrearPlatilloRequest struct {
	Nombre      string                  `json:"nombre"       validate:"required,min=2,max=120"`
	Precio      decimal.Decimal         `json:"precio"       validate:"required"`
	CategoriaID int64                   `json:"categoria_id" validate:"required,min=1"`
	Opciones    []OpcionCatalogoRequest `json:"opciones"     validate:"omitempty,dive"`
}

type ActualizarPlatilloRequest struct {
	Nombre      *string                 `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Precio      *decimal.Decimal        `json:"precio"`
	CategoriaID *int64                  `json:"categoria_id" validate:"omitempty,min=1"`
	Opciones    []OpcionCatalogoRequest `json:"opciones"     validate:"omitempty,dive"`
	Activo      *bool                   `json:"activo"`
}

type CrearCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PlatilloResponse struct {
	ID        int64                  `json:"id"`
	Nombre    string                 `json:"nombre"`
	Precio    decimal.Decimal        `json:"precio"`
	Categoria string                 `json:"categoria"`
	Opciones  model.OpcionesCatalogo `json:"opciones"`
	Activo    bool                   `json:"activo"`
}

type CategoriaResponse struct {
	ID        int64              `json:"id"`
	Nombre    string             `json:"nombre"`
	Platillos []PlatilloResponse `json:"platillos,omitempty"`
}
