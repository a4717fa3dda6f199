// Package dates centraliza el formato YYYY-MM-DD usado en toda la API.
package dates

import (
	"strings"

	"cloud.google.com/go/civil"

	"pawcare/internal/platform/apperr"
)

// Parse acepta vacío (fecha cero) o YYYY-MM-DD.
func Parse(field, s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, apperr.Invalid("%s must be YYYY-MM-DD", field)
	}
	return d, nil
}

// ParseRequired es como Parse pero rechaza vacío.
func ParseRequired(field, s string) (civil.Date, error) {
	if strings.TrimSpace(s) == "" {
		return civil.Date{}, apperr.Invalid("%s is required", field)
	}
	return Parse(field, s)
}

// Format devuelve "" para la fecha cero.
func Format(d civil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// FormatPtr devuelve nil para fechas ausentes (útil con omitempty).
func FormatPtr(d *civil.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// Within reporta si d cae en [start, end] inclusivo.
func Within(d, start, end civil.Date) bool {
	return !d.Before(start) && !d.After(end)
}
