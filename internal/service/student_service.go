// internal/service/student_service.go
package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/phone"
	"github.com/glowpoint/recruiting-backend/internal/repository"
)

// StudentService covers the admin surface over students. Intake has its own
// service; outreach and tours mutate student flags through their own paths.
type StudentService struct {
	StudentRepo repository.StudentRepositoryInterface
	Log         *zap.SugaredLogger
}

// StudentPatch carries optional admin edits. A nil field keeps the stored
// value; a pointer to "" clears a nullable field.
type StudentPatch struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	AreaOfInterest *string
	Consent        *bool
}

func (s *StudentService) List(schoolID, campaignID *int) ([]model.Student, error) {
	return s.StudentRepo.List(schoolID, campaignID)
}

func (s *StudentService) Get(id int) (*model.Student, error) {
	student, err := s.StudentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NotFound("student not found")
	}
	return student, nil
}

func (s *StudentService) Update(id int, patch StudentPatch) (*model.Student, error) {
	student, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		name := strings.TrimSpace(*patch.FirstName)
		if name == "" {
			return nil, apperrors.InvalidInput("first name cannot be empty")
		}
		student.FirstName = name
	}
	if patch.LastName != nil {
		name := strings.TrimSpace(*patch.LastName)
		if name == "" {
			return nil, apperrors.InvalidInput("last name cannot be empty")
		}
		student.LastName = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			student.Email = nil
		} else {
			student.Email = &email
		}
	}
	if patch.Phone != nil {
		digits := phone.Digits(*patch.Phone)
		if digits == "" {
			student.Phone = nil
		} else {
			student.Phone = &digits
		}
	}
	if patch.AreaOfInterest != nil {
		if !model.ValidInterest(*patch.AreaOfInterest) {
			return nil, apperrors.InvalidInput("Unknown area of interest")
		}
		student.AreaOfInterest = model.AreaOfInterest(*patch.AreaOfInterest)
	}
	if patch.Consent != nil {
		student.Consent = patch.Consent
	}

	// A student must stay reachable through at least one channel.
	if student.Email == nil && student.Phone == nil {
		return nil, apperrors.InvalidInput("Provide an email or a phone number")
	}

	if err := s.StudentRepo.Update(student); err != nil {
		return nil, err
	}
	return s.StudentRepo.GetByID(id)
}

func (s *StudentService) Delete(id int) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.StudentRepo.Delete(id); err != nil {
		return err
	}
	s.Log.Infow("student deleted", "student_id", id)
	return nil
}
