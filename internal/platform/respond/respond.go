// Package respond reúne los helpers HTTP comunes a los handlers.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pawcare/internal/platform/apperr"
	"pawcare/internal/platform/logger"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Decode lee el body JSON; un body inválido es ErrInvalidInput.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Invalid("invalid json")
	}
	return nil
}

// Error traduce la taxonomía de apperr a status HTTP.
// Los errores no clasificados se loguean y salen como 500 sin detalle.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		if log != nil {
			log.Error("request failed", map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"err":        err,
			})
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
