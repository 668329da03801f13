// internal/controller/school_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/service"
)

type SchoolController struct {
	SchoolService *service.SchoolService
}

func (c *SchoolController) List(w http.ResponseWriter, r *http.Request) {
	schools, err := c.SchoolService.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schools)
}

func (c *SchoolController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		City  string `json:"city"`
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.InvalidInput("invalid body"))
		return
	}

	school, err := c.SchoolService.Create(body.Name, body.City, body.State)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, school)
}

func (c *SchoolController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("Invalid id"))
		return
	}

	var body struct {
		Name  *string `json:"name"`
		City  *string `json:"city"`
		State *string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.InvalidInput("invalid body"))
		return
	}

	school, err := c.SchoolService.Update(id, service.SchoolPatch{
		Name:  body.Name,
		City:  body.City,
		State: body.State,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, school)
}

func (c *SchoolController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("Invalid id"))
		return
	}
	if err := c.SchoolService.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
