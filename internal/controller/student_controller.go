// internal/controller/student_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/export"
	"github.com/glowpoint/recruiting-backend/internal/service"
)

type StudentController struct {
	IntakeService  *service.IntakeService
	StudentService *service.StudentService
	Validate       *validator.Validate
	Log            *zap.SugaredLogger
}

// Intake is the PUBLIC kiosk endpoint. The campaign is auto-assigned from
// the active campaign; the kiosk never picks one.
func (c *StudentController) Intake(w http.ResponseWriter, r *http.Request) {
	var req service.IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid body"))
		return
	}
	if err := c.Validate.Struct(req); err != nil {
		writeError(w, apperrors.InvalidInput("Missing required fields"))
		return
	}

	student, err := c.IntakeService.Submit(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

func (c *StudentController) List(w http.ResponseWriter, r *http.Request) {
	var schoolID, campaignID *int
	if v := r.URL.Query().Get("school_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			schoolID = &id
		}
	}
	if v := r.URL.Query().Get("campaign_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			campaignID = &id
		}
	}

	students, err := c.StudentService.List(schoolID, campaignID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (c *StudentController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("Invalid id"))
		return
	}

	var body struct {
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		AreaOfInterest *string `json:"area_of_interest"`
		Consent        *bool   `json:"consent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.InvalidInput("invalid body"))
		return
	}

	student, err := c.StudentService.Update(id, service.StudentPatch{
		FirstName:      body.FirstName,
		LastName:       body.LastName,
		Email:          body.Email,
		Phone:          body.Phone,
		AreaOfInterest: body.AreaOfInterest,
		Consent:        body.Consent,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (c *StudentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("Invalid id"))
		return
	}
	if err := c.StudentService.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV streams every student as a CSV attachment.
func (c *StudentController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	students, err := c.StudentService.List(nil, nil)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)
	if err := export.WriteStudents(w, students); err != nil {
		c.Log.Errorw("csv export failed", "error", err)
	}
}
