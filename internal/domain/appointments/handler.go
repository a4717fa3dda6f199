package appointments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawcare/internal/platform/dates"
	"pawcare/internal/platform/logger"
	"pawcare/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listHandler(svc, log))
		ar.Post("/", createHandler(svc, log))

		ar.Get("/{apptID}", getHandler(svc, log))
		ar.Delete("/{apptID}", deleteHandler(svc, log))

		// Transiciones de estado
		ar.Post("/{apptID}/approve", approveHandler(svc, log))
		ar.Post("/{apptID}/done", doneHandler(svc, log))
	})
}

type createRequest struct {
	PetID  string `json:"petId"`
	Owner  string `json:"owner"`
	Date   string `json:"date"` // YYYY-MM-DD
	Time   string `json:"time"` // HH:mm
	Vet    string `json:"vet"`
	Status string `json:"status"` // ignorado, siempre Pending
}

type appointmentResponse struct {
	ID          string  `json:"id"`
	PetID       string  `json:"petId"`
	Owner       string  `json:"owner"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Vet         string  `json:"vet"`
	Status      Status  `json:"status"`
	CompletedAt *string `json:"completedAt"`
}

// listHandler godoc
// @Summary Listar citas
// @Tags appointments
// @Produce json
// @Success 200 {array} appointmentResponse
// @Router /appointments [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toResponse(a))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// createHandler godoc
// @Summary Agendar cita
// @Description El status enviado se ignora; la cita nace Pending. Deja APPT_CREATED.
// @Tags appointments
// @Accept json
// @Produce json
// @Param body body createRequest true "Cita"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "json inválido, petId faltante o fecha inválida"
// @Router /appointments [post]
func createHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		d, err := dates.Parse("date", req.Date)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			PetID:  req.PetID,
			Owner:  req.Owner,
			Date:   d,
			Time:   req.Time,
			Vet:    req.Vet,
			Status: Status(req.Status),
		})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toResponse(a))
	}
}

// getHandler godoc
// @Summary Ver cita
// @Tags appointments
// @Produce json
// @Param apptID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{apptID} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "apptID"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(a))
	}
}

// approveHandler godoc
// @Summary Aprobar cita
// @Tags appointments
// @Produce json
// @Param apptID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{apptID}/approve [post]
func approveHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Approve(r.Context(), chi.URLParam(r, "apptID"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(a))
	}
}

// doneHandler godoc
// @Summary Marcar cita como realizada
// @Description completedAt queda con la fecha de hoy.
// @Tags appointments
// @Produce json
// @Param apptID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{apptID}/done [post]
func doneHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.MarkDone(r.Context(), chi.URLParam(r, "apptID"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(a))
	}
}

// deleteHandler godoc
// @Summary Eliminar cita
// @Tags appointments
// @Param apptID path string true "ID de la cita"
// @Success 204
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{apptID} [delete]
func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "apptID")); err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.NoContent(w)
	}
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		PetID:       a.PetID,
		Owner:       a.Owner,
		Date:        dates.Format(a.Date),
		Time:        a.Time,
		Vet:         a.Vet,
		Status:      a.Status,
		CompletedAt: dates.FormatPtr(a.CompletedAt),
	}
}
