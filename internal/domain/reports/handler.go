package reports

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pawcare/internal/domain/oplog"
	"pawcare/internal/platform/dates"
	"pawcare/internal/platform/logger"
	"pawcare/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/summary", summaryHandler(svc, log))
		rr.Get("/export", exportHandler(svc, log))
	})
}

type summaryResponse struct {
	Period                 Period                `json:"period"`
	From                   string                `json:"from"`
	To                     string                `json:"to"`
	AppointmentsDone       int                   `json:"appointmentsDone"`
	PrescriptionsDispensed int                   `json:"prescriptionsDispensed"`
	PetsAdded              int                   `json:"petsAdded"`
	Events                 []oplog.EntryResponse `json:"events"`
}

func inputFrom(r *http.Request) SummaryInput {
	q := r.URL.Query()
	return SummaryInput{
		Period: q.Get("period"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
}

// summaryHandler godoc
// @Summary Resumen del período
// @Description day = hoy, week = últimos 7 días, month = mes en curso, custom = from..to (ambos requeridos).
// @Tags reports
// @Produce json
// @Param period query string true "day | week | month | custom"
// @Param from query string false "YYYY-MM-DD (custom)"
// @Param to query string false "YYYY-MM-DD (custom)"
// @Success 200 {object} summaryResponse
// @Failure 400 {string} string "período inválido o rango incompleto"
// @Router /reports/summary [get]
func summaryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Summary(r.Context(), inputFrom(r))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.JSON(w, http.StatusOK, summaryResponse{
			Period:                 s.Period,
			From:                   dates.Format(s.From),
			To:                     dates.Format(s.To),
			AppointmentsDone:       s.AppointmentsDone,
			PrescriptionsDispensed: s.PrescriptionsDispensed,
			PetsAdded:              s.PetsAdded,
			Events:                 oplog.ToResponses(s.Events),
		})
	}
}

// exportHandler godoc
// @Summary Exportar resumen a Excel
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param period query string true "day | week | month | custom"
// @Param from query string false "YYYY-MM-DD (custom)"
// @Param to query string false "YYYY-MM-DD (custom)"
// @Success 200 {file} file
// @Failure 400 {string} string "período inválido o rango incompleto"
// @Router /reports/export [get]
func exportHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Summary(r.Context(), inputFrom(r))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		// armamos en memoria para poder responder 500 si excelize falla a mitad
		var buf bytes.Buffer
		if err := ExportXLSX(&buf, s); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		w.Header().Set("Content-Type", ContentTypeXLSX)
		w.Header().Set("Content-Disposition", "attachment; filename="+ExportFilename(s))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
