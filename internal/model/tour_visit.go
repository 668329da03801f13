// internal/model/tour_visit.go
package model

import (
	"strings"
	"time"
)

// TourStatus is the lifecycle state of a TourVisit. SCHEDULED is the only
// initial state; the other three are terminal.
type TourStatus string

const (
	TourScheduled TourStatus = "SCHEDULED"
	TourCompleted TourStatus = "COMPLETED"
	TourCanceled  TourStatus = "CANCELED"
	TourNoShow    TourStatus = "NO_SHOW"
)

// ParseTourStatus normalizes a raw status string, returning "" if unknown.
// Whitespace and case are forgiven: " completed " parses as COMPLETED.
func ParseTourStatus(s string) TourStatus {
	normalized := TourStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch normalized {
	case TourScheduled, TourCompleted, TourCanceled, TourNoShow:
		return normalized
	}
	return ""
}

type TourVisit struct {
	ID        int        `db:"id" json:"id"`
	StudentID int        `db:"student_id" json:"student_id"`
	StartsAt  time.Time  `db:"starts_at" json:"starts_at"`
	Status    TourStatus `db:"status" json:"status"`
	Notes     *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`

	Student *Student `json:"student,omitempty"`
}
