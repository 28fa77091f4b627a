// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Sentinel errors for the operation taxonomy. Services return these (wrapped
// with fmt.Errorf + %w where more context helps) and handlers map them to
// status codes with errors.Is.
var (
	// ErrNoEncontrado: occupancy/order/record lookup miss.
	ErrNoEncontrado = errors.New("registro no encontrado")
	// ErrValidacion: rejected before any write (empty items, bad destino,
	// missing sub-identifier on a deferred payment method).
	ErrValidacion = errors.New("datos invalidos")
	// ErrMesaOcupada: the destination already has an open order and the caller
	// did not confirm the merge. This is the explicit merge gate, not a failure.
	ErrMesaOcupada = errors.New("el destino ya tiene un pedido activo")
)
