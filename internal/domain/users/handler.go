package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawcare/internal/platform/logger"
	"pawcare/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listHandler(svc, log))
		ur.Post("/", createHandler(svc, log))

		ur.Get("/{userID}", getHandler(svc, log))
		ur.Put("/{userID}", updateHandler(svc, log))
		ur.Delete("/{userID}", deleteHandler(svc, log))
	})
}

type userRequest struct {
	Name string `json:"name"`
	Role string `json:"role"` // admin | vet | receptionist | pharmacist
}

type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// listHandler godoc
// @Summary Listar staff
// @Tags users
// @Produce json
// @Success 200 {array} userResponse
// @Router /users [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toResponse(u))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// createHandler godoc
// @Summary Alta de staff
// @Tags users
// @Accept json
// @Produce json
// @Param body body userRequest true "Usuario"
// @Success 201 {object} userResponse
// @Failure 400 {string} string "name/role faltantes o role inválido"
// @Router /users [post]
func createHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		u, err := svc.Create(r.Context(), Input{Name: req.Name, Role: Role(req.Role)})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toResponse(u))
	}
}

// getHandler godoc
// @Summary Ver usuario
// @Tags users
// @Produce json
// @Param userID path string true "ID del usuario"
// @Success 200 {object} userResponse
// @Failure 404 {string} string "user not found"
// @Router /users/{userID} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(u))
	}
}

// updateHandler godoc
// @Summary Modificar usuario
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "ID del usuario"
// @Param body body userRequest true "Usuario"
// @Success 200 {object} userResponse
// @Failure 400 {string} string "name/role inválidos"
// @Failure 404 {string} string "user not found"
// @Router /users/{userID} [put]
func updateHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		u, err := svc.Update(r.Context(), chi.URLParam(r, "userID"), Input{Name: req.Name, Role: Role(req.Role)})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(u))
	}
}

// deleteHandler godoc
// @Summary Baja de staff
// @Tags users
// @Param userID path string true "ID del usuario"
// @Success 204
// @Failure 404 {string} string "user not found"
// @Router /users/{userID} [delete]
func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.NoContent(w)
	}
}

func toResponse(u User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Role: u.Role}
}
