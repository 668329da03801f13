// internal/service/tour_service.go
package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/queue"
	"github.com/glowpoint/recruiting-backend/internal/repository"
)

// Business rules:
// - Tours Tue–Sat only
// - 9:00 AM – 4:00 PM (last start 3:30 PM, 30-minute slots)
// - No double-booking the same starts_at unless the previous one is CANCELED
type TourService struct {
	TourRepo    repository.TourRepositoryInterface
	StudentRepo repository.StudentRepositoryInterface
	Events      queue.Publisher
	Log         *zap.SugaredLogger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *TourService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// TourPatch carries the optional fields of a reschedule request. A nil field
// keeps the stored value.
type TourPatch struct {
	StartsAt *time.Time
	Status   *string
	Notes    *string
}

// tourEffects maps the status a tour resolves to onto the student-side writes
// that must land in the same transaction as the tour update.
type tourEffect int

const effectCompleteVisit tourEffect = iota

var tourEffects = map[model.TourStatus][]tourEffect{
	model.TourCompleted: {effectCompleteVisit},
}

// validateSlot checks startsAt against the booking window. The window is
// defined in server-local time, so zone-bearing input is converted first.
// The reasons are the user-facing strings the admin UI shows verbatim.
func validateSlot(t time.Time) error {
	t = t.In(time.Local)
	day := t.Weekday()
	if day < time.Tuesday || day > time.Saturday {
		return apperrors.InvalidInput("Tours are only Tue–Sat")
	}

	h, m := t.Hour(), t.Minute()
	if h < 9 || h > 15 || (h == 15 && m > 30) {
		return apperrors.InvalidInput("Tours must be between 9:00 AM and 4:00 PM (last start 3:30 PM)")
	}
	if m != 0 && m != 30 {
		return apperrors.InvalidInput("Tours must be scheduled on 30-minute slots (:00 or :30)")
	}
	return nil
}

// checkClash fails Conflict when another non-canceled tour already holds the
// exact slot. excludeID skips the row being rescheduled.
func (s *TourService) checkClash(startsAt time.Time, excludeID int) error {
	clash, err := s.TourRepo.FindClashAt(startsAt, excludeID)
	if err != nil {
		return err
	}
	if clash != nil {
		return apperrors.Conflict("That tour time is already booked")
	}
	return nil
}

// ListForDay returns the tours whose starts_at falls within the local
// calendar day, ascending, each joined with its student.
func (s *TourService) ListForDay(date string) ([]model.TourVisit, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, apperrors.InvalidInput("Provide date=YYYY-MM-DD")
	}

	start := day
	end := day.Add(24*time.Hour - time.Millisecond)
	return s.TourRepo.ListForDay(start, end)
}

// Book validates the slot and creates a SCHEDULED tour. A successful booking
// also publishes a confirmation event; a publish failure never fails the
// booking.
func (s *TourService) Book(studentID int, startsAt time.Time, notes *string) (*model.TourVisit, error) {
	student, err := s.StudentRepo.GetByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NotFound("student not found")
	}

	if err := validateSlot(startsAt); err != nil {
		return nil, err
	}
	if err := s.checkClash(startsAt, 0); err != nil {
		return nil, err
	}

	tour := &model.TourVisit{
		StudentID: studentID,
		StartsAt:  startsAt,
		Status:    model.TourScheduled,
		Notes:     notes,
	}
	if err := s.TourRepo.Create(tour); err != nil {
		return nil, err
	}

	if s.Events != nil {
		event := queue.TourBooked{TourID: tour.ID, StudentID: studentID, StartsAt: startsAt}
		if err := s.Events.Publish(queue.TopicTourConfirmations, event); err != nil {
			s.Log.Warnw("failed to publish tour confirmation", "tour_id", tour.ID, "error", err)
		}
	}

	s.Log.Infow("tour booked", "tour_id", tour.ID, "student_id", studentID, "starts_at", startsAt)
	return s.TourRepo.GetJoined(tour.ID)
}

// Reschedule applies a partial update. When the resolved status is COMPLETED
// the student's visit flags are written in the same transaction as the tour
// row; visit_completed_at is re-stamped even if the tour was already
// COMPLETED, matching the admin-override behavior of the update route.
func (s *TourService) Reschedule(tourID int, patch TourPatch) (*model.TourVisit, error) {
	existing, err := s.TourRepo.GetByID(tourID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NotFound("tour not found")
	}

	updated := *existing
	if patch.StartsAt != nil {
		if err := validateSlot(*patch.StartsAt); err != nil {
			return nil, err
		}
		if err := s.checkClash(*patch.StartsAt, tourID); err != nil {
			return nil, err
		}
		updated.StartsAt = *patch.StartsAt
	}
	if patch.Status != nil {
		status := model.ParseTourStatus(*patch.Status)
		if status == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown tour status %q", *patch.Status))
		}
		updated.Status = status
	}
	if patch.Notes != nil {
		updated.Notes = patch.Notes
	}

	completeStudent := false
	for _, effect := range tourEffects[updated.Status] {
		if effect == effectCompleteVisit {
			completeStudent = true
		}
	}

	if err := s.TourRepo.UpdateWithCompletion(&updated, completeStudent, s.now()); err != nil {
		return nil, err
	}

	if completeStudent {
		s.Log.Infow("tour completed", "tour_id", tourID, "student_id", updated.StudentID)
	}
	return s.TourRepo.GetJoined(tourID)
}

// Cancel marks the tour CANCELED. Tours are never hard-deleted; a canceled
// tour keeps its history and frees the slot for rebooking.
func (s *TourService) Cancel(tourID int) (*model.TourVisit, error) {
	tour, err := s.TourRepo.Cancel(tourID)
	if err != nil {
		return nil, err
	}
	s.Log.Infow("tour canceled", "tour_id", tourID)
	return tour, nil
}
