package oplog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pawcare/internal/platform/dates"
	"pawcare/internal/platform/logger"
	"pawcare/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Get("/ops/log", listHandler(svc, log))
}

// EntryResponse se reutiliza en el resumen de reportes.
type EntryResponse struct {
	ID      string    `json:"id"`
	TS      time.Time `json:"ts"`
	Type    EntryType `json:"type"`
	Message string    `json:"message"`
	PetID   string    `json:"petId,omitempty"`
}

// listHandler godoc
// @Summary Listar bitácora de operaciones
// @Description Devuelve las entradas de la bitácora cuyo día cae entre from y to (inclusive), en orden cronológico.
// @Tags ops
// @Produce json
// @Param from query string true "Fecha inicial YYYY-MM-DD"
// @Param to query string true "Fecha final YYYY-MM-DD"
// @Success 200 {array} EntryResponse
// @Failure 400 {string} string "from/to faltantes o inválidos"
// @Router /ops/log [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := dates.ParseRequired("from", r.URL.Query().Get("from"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		to, err := dates.ParseRequired("to", r.URL.Query().Get("to"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		items, err := svc.Between(r.Context(), from, to)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.JSON(w, http.StatusOK, ToResponses(items))
	}
}

func ToResponses(items []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, EntryResponse{
			ID:      e.ID,
			TS:      e.Timestamp,
			Type:    e.Type,
			Message: e.Message,
			PetID:   e.PetID,
		})
	}
	return out
}
