// internal/controller/tour_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/service"
)

type TourController struct {
	TourService *service.TourService
}

// parseISODateTime accepts RFC 3339 or a zone-less timestamp, which is read
// in server-local time the way the booking window is defined.
func parseISODateTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", v, time.Local)
}

// ListForDay handles GET /tours?date=YYYY-MM-DD.
func (c *TourController) ListForDay(w http.ResponseWriter, r *http.Request) {
	tours, err := c.TourService.ListForDay(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tours)
}

// Book handles POST /tours with {student_id, starts_at, notes?}.
func (c *TourController) Book(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StudentID int     `json:"student_id"`
		StartsAt  string  `json:"starts_at"`
		Notes     *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.InvalidInput("invalid body"))
		return
	}
	if body.StudentID == 0 || body.StartsAt == "" {
		writeError(w, apperrors.InvalidInput("student_id and starts_at are required"))
		return
	}

	startsAt, err := parseISODateTime(body.StartsAt)
	if err != nil {
		writeError(w, apperrors.InvalidInput("starts_at must be a valid ISO datetime"))
		return
	}

	tour, err := c.TourService.Book(body.StudentID, startsAt, body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tour)
}

// Reschedule handles PUT /tours/{id} with {starts_at?, status?, notes?}.
func (c *TourController) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("Invalid id"))
		return
	}

	var body struct {
		StartsAt *string `json:"starts_at"`
		Status   *string `json:"status"`
		Notes    *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.InvalidInput("invalid body"))
		return
	}

	patch := service.TourPatch{Status: body.Status, Notes: body.Notes}
	if body.StartsAt != nil {
		startsAt, err := parseISODateTime(*body.StartsAt)
		if err != nil {
			writeError(w, apperrors.InvalidInput("starts_at must be a valid ISO datetime"))
			return
		}
		patch.StartsAt = &startsAt
	}

	tour, err := c.TourService.Reschedule(id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tour)
}

// Cancel handles DELETE /tours/{id}; tours are canceled, never hard-deleted.
func (c *TourController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("Invalid id"))
		return
	}

	tour, err := c.TourService.Cancel(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tour)
}
