// Package apperr define la taxonomía de errores compartida por servicios y adapters.
// Los handlers traducen estos sentinels a códigos HTTP con errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Invalid envuelve ErrInvalidInput con un detalle legible para el cliente.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound indicando qué recurso faltó.
func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}
