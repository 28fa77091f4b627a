package model

import (
	"encoding/json"
	"sort"
)

// Opcion is one selected option of a line item, e.g. {Opcion: "Término", Valor: "Bien cocido"}.
type Opcion struct {
	Opcion string `json:"opcion"`
	Valor  string `json:"valor"`
}

// Opciones is the canonical representation of a line item's option set:
// a sequence of name/value pairs, unique by name. Historical clients sent
// either an array of pairs or a keyed object — NormalizarOpciones converts
// both at the ingress boundary so the rest of the system only ever sees
// this one shape.
type Opciones []Opcion

// NormalizarOpciones accepts the raw JSON of an options field in either the
// array-of-pairs form ([{"opcion":...,"valor":...}]) or the keyed-object form
// ({"Término":"Bien cocido"}) and returns the canonical pair sequence, sorted
// by option name. nil/empty input yields nil.
func NormalizarOpciones(raw json.RawMessage) Opciones {
	if len(raw) == 0 {
		return nil
	}

	var pares Opciones
	if err := json.Unmarshal(raw, &pares); err == nil {
		return pares.canonicas()
	}

	var mapa map[string]string
	if err := json.Unmarshal(raw, &mapa); err == nil {
		out := make(Opciones, 0, len(mapa))
		for nombre, valor := range mapa {
			out = append(out, Opcion{Opcion: nombre, Valor: valor})
		}
		return out.canonicas()
	}

	return nil
}

// canonicas deduplicates by option name (first occurrence wins) and sorts.
func (o Opciones) canonicas() Opciones {
	if len(o) == 0 {
		return nil
	}
	vistas := make(map[string]bool, len(o))
	out := make(Opciones, 0, len(o))
	for _, op := range o {
		if op.Opcion == "" || vistas[op.Opcion] {
			continue
		}
		vistas[op.Opcion] = true
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Opcion < out[j].Opcion })
	if len(out) == 0 {
		return nil
	}
	return out
}

// Iguales compares two option sets set-wise: same pairs regardless of order.
func (o Opciones) Iguales(otras Opciones) bool {
	a := o.canonicas()
	b := otras.canonicas()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
