package prescriptions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawcare/internal/platform/dates"
	"pawcare/internal/platform/logger"
	"pawcare/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/prescriptions", func(pr chi.Router) {
		pr.Get("/", listHandler(svc, log))
		pr.Post("/", createHandler(svc, log))

		pr.Get("/{rxID}", getHandler(svc, log))
		pr.Delete("/{rxID}", deleteHandler(svc, log))

		pr.Post("/{rxID}/dispense", dispenseHandler(svc, log))
	})
}

// createRequest usa "pet" para el nombre, como espera el cliente web.
type createRequest struct {
	PetID      string `json:"petId"`
	Pet        string `json:"pet"`
	Owner      string `json:"owner"`
	Drug       string `json:"drug"`
	Dosage     string `json:"dosage"`
	Directions string `json:"directions"`
	Prescriber string `json:"prescriber"`
	Date       string `json:"date"` // YYYY-MM-DD, opcional (hoy)
}

type prescriptionResponse struct {
	ID          string  `json:"id"`
	PetID       string  `json:"petId"`
	Pet         string  `json:"pet"`
	Owner       string  `json:"owner"`
	Drug        string  `json:"drug"`
	Dosage      string  `json:"dosage"`
	Directions  string  `json:"directions"`
	Prescriber  string  `json:"prescriber"`
	Date        string  `json:"date"`
	Dispensed   bool    `json:"dispensed"`
	DispensedAt *string `json:"dispensedAt"`
}

// listHandler godoc
// @Summary Listar recetas
// @Tags prescriptions
// @Produce json
// @Success 200 {array} prescriptionResponse
// @Router /prescriptions [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		out := make([]prescriptionResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toResponse(p))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// createHandler godoc
// @Summary Emitir receta
// @Description Nace sin dispensar. Deja RX_CREATED.
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param body body createRequest true "Receta"
// @Success 201 {object} prescriptionResponse
// @Failure 400 {string} string "json inválido, petId/drug faltantes o fecha inválida"
// @Router /prescriptions [post]
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

		p, err := svc.Create(r.Context(), CreateInput{
			PetID:      req.PetID,
			PetName:    req.Pet,
			Owner:      req.Owner,
			Drug:       req.Drug,
			Dosage:     req.Dosage,
			Directions: req.Directions,
			Prescriber: req.Prescriber,
			Date:       d,
		})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toResponse(p))
	}
}

// getHandler godoc
// @Summary Ver receta
// @Tags prescriptions
// @Produce json
// @Param rxID path string true "ID de la receta"
// @Success 200 {object} prescriptionResponse
// @Failure 404 {string} string "prescription not found"
// @Router /prescriptions/{rxID} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "rxID"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(p))
	}
}

// dispenseHandler godoc
// @Summary Dispensar receta
// @Description Cada llamada deja RX_DISPENSED, aun si ya estaba dispensada.
// @Tags prescriptions
// @Produce json
// @Param rxID path string true "ID de la receta"
// @Success 200 {object} prescriptionResponse
// @Failure 404 {string} string "prescription not found"
// @Router /prescriptions/{rxID}/dispense [post]
func dispenseHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Dispense(r.Context(), chi.URLParam(r, "rxID"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(p))
	}
}

// deleteHandler godoc
// @Summary Eliminar receta
// @Tags prescriptions
// @Param rxID path string true "ID de la receta"
// @Success 204
// @Failure 404 {string} string "prescription not found"
// @Router /prescriptions/{rxID} [delete]
func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "rxID")); err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.NoContent(w)
	}
}

func toResponse(p Prescription) prescriptionResponse {
	return prescriptionResponse{
		ID:          p.ID,
		PetID:       p.PetID,
		Pet:         p.PetName,
		Owner:       p.Owner,
		Drug:        p.Drug,
		Dosage:      p.Dosage,
		Directions:  p.Directions,
		Prescriber:  p.Prescriber,
		Date:        dates.Format(p.Date),
		Dispensed:   p.Dispensed,
		DispensedAt: dates.FormatPtr(p.DispensedAt),
	}
}
