// internal/service/school_service.go
package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/repository"
)

type SchoolService struct {
	SchoolRepo repository.SchoolRepositoryInterface
	Log        *zap.SugaredLogger
}

// SchoolPatch carries optional admin edits; a pointer to "" clears city/state.
type SchoolPatch struct {
	Name  *string
	City  *string
	State *string
}

func (s *SchoolService) List() ([]model.School, error) {
	return s.SchoolRepo.List()
}

func trimToNil(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *SchoolService) Create(name, city, state string) (*model.School, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.InvalidInput("Name is required")
	}

	// Case-insensitive dedup keeps "Lincoln High" and "lincoln high" one row.
	existing, err := s.SchoolRepo.GetByNameFold(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("a school with that name already exists")
	}

	school := &model.School{
		Name:  name,
		City:  trimToNil(city),
		State: trimToNil(state),
	}
	if err := s.SchoolRepo.Create(school); err != nil {
		return nil, err
	}
	s.Log.Infow("school created", "school_id", school.ID, "name", school.Name)
	return school, nil
}

func (s *SchoolService) Update(id int, patch SchoolPatch) (*model.School, error) {
	school, err := s.SchoolRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, apperrors.NotFound("school not found")
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.InvalidInput("Name is required")
		}
		school.Name = name
	}
	if patch.City != nil {
		school.City = trimToNil(*patch.City)
	}
	if patch.State != nil {
		school.State = trimToNil(*patch.State)
	}

	if err := s.SchoolRepo.Update(school); err != nil {
		return nil, err
	}
	return school, nil
}

// Delete removes a school unless students still reference it.
func (s *SchoolService) Delete(id int) error {
	school, err := s.SchoolRepo.GetByID(id)
	if err != nil {
		return err
	}
	if school == nil {
		return apperrors.NotFound("school not found")
	}

	count, err := s.SchoolRepo.CountStudents(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("school has students and cannot be deleted")
	}

	return s.SchoolRepo.Delete(id)
}
