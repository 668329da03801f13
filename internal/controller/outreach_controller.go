// internal/controller/outreach_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/service"
)

type OutreachController struct {
	OutreachService *service.OutreachService
}

// SendSMS handles POST /outreach/sms with {student_ids, message}. The
// response always carries the whole per-recipient report; individual
// failures never fail the request.
func (c *OutreachController) SendSMS(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StudentIDs []int  `json:"student_ids"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.InvalidInput("invalid body"))
		return
	}

	report, err := c.OutreachService.SendBulk(r.Context(), body.StudentIDs, body.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"batch_id": report.BatchID,
		"results":  report.Results,
	})
}
