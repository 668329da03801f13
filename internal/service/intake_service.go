// internal/service/intake_service.go
package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/phone"
	"github.com/glowpoint/recruiting-backend/internal/repository"
)

// IntakeService validates and stores public kiosk submissions. The campaign
// is never chosen by the kiosk: every new student is stamped with the
// currently active campaign.
type IntakeService struct {
	StudentRepo  repository.StudentRepositoryInterface
	SchoolRepo   repository.SchoolRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
	Log          *zap.SugaredLogger
}

// IntakeRequest is the raw kiosk submission.
type IntakeRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	SchoolID       int    `json:"school_id" validate:"required"`
	AreaOfInterest string `json:"area_of_interest" validate:"required,oneof=COSMETOLOGY BARBER NAIL_TECHNICIAN"`
	Consent        *bool  `json:"consent"`
}

// Submit normalizes, validates, and creates the student, returned joined
// with its school and campaign.
func (s *IntakeService) Submit(req IntakeRequest) (*model.Student, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" || req.SchoolID == 0 {
		return nil, apperrors.InvalidInput("Missing required fields")
	}
	if !model.ValidInterest(req.AreaOfInterest) {
		return nil, apperrors.InvalidInput("Unknown area of interest")
	}

	school, err := s.SchoolRepo.GetByID(req.SchoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, apperrors.NotFound("school not found")
	}

	email := strings.TrimSpace(req.Email)
	phoneDigits := phone.Digits(req.Phone)
	if email == "" && phoneDigits == "" {
		return nil, apperrors.InvalidInput("Provide an email or a phone number")
	}

	active, err := s.CampaignRepo.GetActive()
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, apperrors.Unavailable("no active campaign")
	}

	// Kiosk users double-tap submit; the same contact in the same campaign
	// is rejected rather than stored twice.
	duplicate, err := s.StudentRepo.ExistsContactInCampaign(active.ID, email, phoneDigits)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperrors.Conflict("This contact has already signed up for the current campaign")
	}

	student := &model.Student{
		FirstName:      firstName,
		LastName:       lastName,
		AreaOfInterest: model.AreaOfInterest(req.AreaOfInterest),
		Consent:        req.Consent,
		SchoolID:       school.ID,
		CampaignID:     active.ID,
	}
	if email != "" {
		student.Email = &email
	}
	if phoneDigits != "" {
		student.Phone = &phoneDigits
	}

	if err := s.StudentRepo.Create(student); err != nil {
		return nil, err
	}
	s.Log.Infow("student intake", "student_id", student.ID, "campaign_id", active.ID, "school_id", school.ID)

	return s.StudentRepo.GetByID(student.ID)
}
