package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizarOpcionesDesdePares(t *testing.T) {
	raw := json.RawMessage(`[{"opcion":"Queso","valor":"Extra"},{"opcion":"Término","valor":"Medio"}]`)
	got := NormalizarOpciones(raw)

	assert.Equal(t, Opciones{
		{Opcion: "Queso", Valor: "Extra"},
		{Opcion: "Término", Valor: "Medio"},
	}, got)
}

func TestNormalizarOpcionesDesdeObjeto(t *testing.T) {
	raw := json.RawMessage(`{"Término":"Medio","Queso":"Extra"}`)
	got := NormalizarOpciones(raw)

	// Sorted by option name regardless of the source map's iteration order.
	assert.Equal(t, Opciones{
		{Opcion: "Queso", Valor: "Extra"},
		{Opcion: "Término", Valor: "Medio"},
	}, got)
}

func TestNormalizarOpcionesVacioYBasura(t *testing.T) {
	assert.Nil(t, NormalizarOpciones(nil))
	assert.Nil(t, NormalizarOpciones(json.RawMessage(`[]`)))
	assert.Nil(t, NormalizarOpciones(json.RawMessage(`"texto"`)))
}

func TestNormalizarOpcionesDeduplica(t *testing.T) {
	raw := json.RawMessage(`[{"opcion":"Queso","valor":"Extra"},{"opcion":"Queso","valor":"Doble"}]`)
	got := NormalizarOpciones(raw)

	// First occurrence wins.
	assert.Equal(t, Opciones{{Opcion: "Queso", Valor: "Extra"}}, got)
}

func TestIgualesIgnoraOrden(t *testing.T) {
	a := Opciones{{Opcion: "A", Valor: "1"}, {Opcion: "B", Valor: "2"}}
	b := Opciones{{Opcion: "B", Valor: "2"}, {Opcion: "A", Valor: "1"}}

	assert.True(t, a.Iguales(b))
	assert.False(t, a.Iguales(Opciones{{Opcion: "A", Valor: "1"}}))
	assert.False(t, a.Iguales(Opciones{{Opcion: "A", Valor: "x"}, {Opcion: "B", Valor: "2"}}))
}

func TestMismaLineaIgnoraNota(t *testing.T) {
	base := Item{PlatilloID: 7, Opciones: Opciones{{Opcion: "Término", Valor: "Medio"}}, Nota: "sin sal"}
	otro := Item{PlatilloID: 7, Opciones: Opciones{{Opcion: "Término", Valor: "Medio"}}, Nota: "con sal"}

	assert.True(t, base.MismaLinea(otro))
	assert.False(t, base.MismaLinea(Item{PlatilloID: 7}))
	assert.False(t, base.MismaLinea(Item{PlatilloID: 8, Opciones: base.Opciones}))
}

func TestItemsTotal(t *testing.T) {
	items := Items{
		{Precio: decimal.NewFromInt(35), Cantidad: 2},
		{Precio: decimal.NewFromFloat(10.50), Cantidad: 1},
	}
	assert.True(t, items.Total().Equal(decimal.NewFromFloat(80.50)))
	assert.True(t, Items{}.Total().Equal(decimal.Zero))
}
