// internal/model/student.go
package model

import "time"

// AreaOfInterest is the program a prospective student is interested in.
type AreaOfInterest string

const (
	InterestCosmetology    AreaOfInterest = "COSMETOLOGY"
	InterestBarber         AreaOfInterest = "BARBER"
	InterestNailTechnician AreaOfInterest = "NAIL_TECHNICIAN"
)

// ValidInterest reports whether s is one of the known areas of interest.
func ValidInterest(s string) bool {
	switch AreaOfInterest(s) {
	case InterestCosmetology, InterestBarber, InterestNailTechnician:
		return true
	}
	return false
}

type Student struct {
	ID               int            `db:"id" json:"id"`
	FirstName        string         `db:"first_name" json:"first_name"`
	LastName         string         `db:"last_name" json:"last_name"`
	Email            *string        `db:"email" json:"email,omitempty"`
	Phone            *string        `db:"phone" json:"phone,omitempty"`
	AreaOfInterest   AreaOfInterest `db:"area_of_interest" json:"area_of_interest"`
	Consent          *bool          `db:"consent" json:"consent,omitempty"`
	Contacted        bool           `db:"contacted" json:"contacted"`
	ContactedAt      *time.Time     `db:"contacted_at" json:"contacted_at,omitempty"`
	VisitCompleted   bool           `db:"visit_completed" json:"visit_completed"`
	VisitCompletedAt *time.Time     `db:"visit_completed_at" json:"visit_completed_at,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	SchoolID         int            `db:"school_id" json:"school_id"`
	CampaignID       int            `db:"campaign_id" json:"campaign_id"`

	// Joined rows, populated by the repository on reads.
	School   *School   `json:"school,omitempty"`
	Campaign *Campaign `json:"campaign,omitempty"`
}
