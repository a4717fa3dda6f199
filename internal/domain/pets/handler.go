package pets

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pawcare/internal/platform/dates"
	"pawcare/internal/platform/logger"
	"pawcare/internal/platform/respond"
)

// DefaultMaxUpload se usa cuando el router no configura un límite.
const DefaultMaxUpload int64 = 5 << 20

// multipartOverhead es el margen para boundaries y headers de las partes.
// El límite real lo aplica el chequeo del tamaño del archivo.
const multipartOverhead int64 = 1 << 20

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, maxUpload int64) {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, log))
		pr.Post("/", createPetHandler(svc, log))

		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))

		pr.Post("/{petID}/photo", uploadPhotoHandler(svc, log, maxUpload))
		pr.Post("/{petID}/procedures", addProcedureHandler(svc, log))
	})
}

type procedureDTO struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Procedure string `json:"procedure"`
	Notes     string `json:"notes"`
	Vet       string `json:"vet"`
}

// petRequest es el reemplazo completo (POST y PUT usan el mismo body).
type petRequest struct {
	Name          string         `json:"name"`
	Species       string         `json:"species"`
	Breed         string         `json:"breed"`
	Gender        string         `json:"gender"`
	Age           int            `json:"age"`
	ContactNumber string         `json:"contactNumber"`
	Microchip     string         `json:"microchip"`
	Owner         string         `json:"owner"`
	Address       string         `json:"address"`
	Federation    string         `json:"federation"`
	Photo         string         `json:"photo"`
	Procedures    []procedureDTO `json:"procedures"`
}

type petResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Species        string         `json:"species"`
	Breed          string         `json:"breed"`
	Gender         string         `json:"gender"`
	Age            int            `json:"age"`
	ContactNumber  string         `json:"contactNumber"`
	Microchip      string         `json:"microchip"`
	Owner          string         `json:"owner"`
	Address        string         `json:"address"`
	Federation     string         `json:"federation"`
	Photo          string         `json:"photo"`
	PhotoThumbnail string         `json:"photoThumbnail,omitempty"`
	Procedures     []procedureDTO `json:"procedures"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type photoResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea la ficha y deja PET_CREATED en la bitácora.
// @Tags pets
// @Accept json
// @Produce json
// @Param body body petRequest true "Ficha completa"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "json inválido o name faltante"
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		in, err := req.toInput()
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Reemplazar mascota
// @Description Reemplazo completo de la ficha (no es PATCH). Deja PET_UPDATED.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param body body petRequest true "Ficha completa"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "json inválido"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		in, err := req.toInput()
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), in)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Description No borra citas ni recetas asociadas.
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.NoContent(w)
	}
}

// uploadPhotoHandler godoc
// @Summary Subir foto
// @Description multipart/form-data con el campo "file". El límite aplica al archivo, no al cuerpo completo. Devuelve el path público de la foto.
// @Tags pets
// @Accept mpfd
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param file formData file true "Imagen"
// @Success 200 {object} photoResponse
// @Failure 400 {string} string "file faltante"
// @Failure 404 {string} string "pet not found"
// @Failure 413 {string} string "archivo demasiado grande"
// @Router /pets/{petID}/photo [post]
func uploadPhotoHandler(svc *Service, log logger.Logger, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Size > maxUpload {
			http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}

		p, err := svc.AttachPhoto(r.Context(), chi.URLParam(r, "petID"), header.Filename, header.Header.Get("Content-Type"), file)
		if errors.Is(err, ErrPhotosDisabled) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.JSON(w, http.StatusOK, photoResponse{URL: p.Photo, ThumbnailURL: p.PhotoThumbnail})
	}
}

// addProcedureHandler godoc
// @Summary Agregar procedimiento
// @Description Agrega al historial de la mascota. No deja entrada en la bitácora.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param body body procedureDTO true "Procedimiento"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "json o fecha inválidos"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/procedures [post]
func addProcedureHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req procedureDTO
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		proc, err := req.toProcedure()
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		p, err := svc.AddProcedure(r.Context(), chi.URLParam(r, "petID"), proc)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

func (req petRequest) toInput() (Input, error) {
	procs := make([]Procedure, 0, len(req.Procedures))
	for _, dto := range req.Procedures {
		p, err := dto.toProcedure()
		if err != nil {
			return Input{}, err
		}
		procs = append(procs, p)
	}

	return Input{
		Name:          req.Name,
		Species:       req.Species,
		Breed:         req.Breed,
		Gender:        req.Gender,
		Age:           req.Age,
		ContactNumber: req.ContactNumber,
		Microchip:     req.Microchip,
		Owner:         req.Owner,
		Address:       req.Address,
		Federation:    req.Federation,
		Photo:         req.Photo,
		Procedures:    procs,
	}, nil
}

func (dto procedureDTO) toProcedure() (Procedure, error) {
	d, err := dates.Parse("date", dto.Date)
	if err != nil {
		return Procedure{}, err
	}
	return Procedure{
		Date:  d,
		Name:  strings.TrimSpace(dto.Procedure),
		Notes: dto.Notes,
		Vet:   dto.Vet,
	}, nil
}

func toPetResponse(p Pet) petResponse {
	procs := make([]procedureDTO, 0, len(p.Procedures))
	for _, pr := range p.Procedures {
		procs = append(procs, procedureDTO{
			Date:      dates.Format(pr.Date),
			Procedure: pr.Name,
			Notes:     pr.Notes,
			Vet:       pr.Vet,
		})
	}

	return petResponse{
		ID:             p.ID,
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Gender:         p.Gender,
		Age:            p.Age,
		ContactNumber:  p.ContactNumber,
		Microchip:      p.Microchip,
		Owner:          p.Owner,
		Address:        p.Address,
		Federation:     p.Federation,
		Photo:          p.Photo,
		PhotoThumbnail: p.PhotoThumbnail,
		Procedures:     procs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
