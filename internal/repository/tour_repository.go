// internal/repository/tour_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
)

type TourRepositoryInterface interface {
	GetByID(id int) (*model.TourVisit, error)
	GetJoined(id int) (*model.TourVisit, error)
	ListForDay(start, end time.Time) ([]model.TourVisit, error)
	FindClashAt(startsAt time.Time, excludeID int) (*model.TourVisit, error)
	Create(t *model.TourVisit) error
	UpdateWithCompletion(t *model.TourVisit, completeStudent bool, now time.Time) error
	Cancel(id int) (*model.TourVisit, error)
}

type TourRepository struct {
	DB *sql.DB
}

const tourColumns = `t.id, t.student_id, t.starts_at, t.status, t.notes, t.created_at, t.updated_at`

func scanTourJoined(row interface{ Scan(...any) error }) (*model.TourVisit, error) {
	var t model.TourVisit
	var s model.Student
	var school model.School
	var campaign model.Campaign
	err := row.Scan(
		&t.ID, &t.StudentID, &t.StartsAt, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.AreaOfInterest,
		&s.Consent, &s.Contacted, &s.ContactedAt, &s.VisitCompleted,
		&s.VisitCompletedAt, &s.CreatedAt, &s.SchoolID, &s.CampaignID,
		&school.ID, &school.Name, &school.City, &school.State,
		&campaign.ID, &campaign.Name, &campaign.IsActive, &campaign.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.School = &school
	s.Campaign = &campaign
	t.Student = &s
	return &t, nil
}

func (r *TourRepository) GetByID(id int) (*model.TourVisit, error) {
	var t model.TourVisit
	err := r.DB.QueryRow(
		`SELECT id, student_id, starts_at, status, notes, created_at, updated_at
		 FROM tour_visits WHERE id=$1`, id,
	).Scan(&t.ID, &t.StudentID, &t.StartsAt, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get tour: %w", err)
	}
	return &t, nil
}

// GetJoined returns the tour with its student and the student's school and
// campaign attached.
func (r *TourRepository) GetJoined(id int) (*model.TourVisit, error) {
	query := `SELECT ` + tourColumns + `,` + studentJoinedColumns + `
		FROM tour_visits t
		JOIN students s ON s.id = t.student_id
		JOIN schools sc ON sc.id = s.school_id
		JOIN campaigns c ON c.id = s.campaign_id
		WHERE t.id=$1`
	t, err := scanTourJoined(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get tour joined: %w", err)
	}
	return t, nil
}

// ListForDay returns tours with starts_at in [start, end], ascending.
func (r *TourRepository) ListForDay(start, end time.Time) ([]model.TourVisit, error) {
	query := `SELECT ` + tourColumns + `,` + studentJoinedColumns + `
		FROM tour_visits t
		JOIN students s ON s.id = t.student_id
		JOIN schools sc ON sc.id = s.school_id
		JOIN campaigns c ON c.id = s.campaign_id
		WHERE t.starts_at >= $1 AND t.starts_at <= $2
		ORDER BY t.starts_at ASC`
	rows, err := r.DB.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list tours for day: %w", err)
	}
	defer rows.Close()

	tours := []model.TourVisit{}
	for rows.Next() {
		t, err := scanTourJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tour: %w", err)
		}
		tours = append(tours, *t)
	}
	return tours, rows.Err()
}

// FindClashAt returns a non-canceled tour at exactly startsAt, excluding the
// row with excludeID (0 excludes nothing). nil means the slot is free.
func (r *TourRepository) FindClashAt(startsAt time.Time, excludeID int) (*model.TourVisit, error) {
	var t model.TourVisit
	err := r.DB.QueryRow(
		`SELECT id, student_id, starts_at, status, notes, created_at, updated_at
		 FROM tour_visits
		 WHERE starts_at=$1 AND status <> 'CANCELED' AND id <> $2
		 LIMIT 1`,
		startsAt, excludeID,
	).Scan(&t.ID, &t.StudentID, &t.StartsAt, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find clashing tour: %w", err)
	}
	return &t, nil
}

func (r *TourRepository) Create(t *model.TourVisit) error {
	err := r.DB.QueryRow(
		`INSERT INTO tour_visits (student_id, starts_at, status, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		t.StudentID, t.StartsAt, t.Status, t.Notes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create tour: %w", err)
	}
	return nil
}

// UpdateWithCompletion writes the tour row and, when completeStudent is set,
// the student's visit flags in the same transaction. Readers never observe
// one write without the other.
func (r *TourRepository) UpdateWithCompletion(t *model.TourVisit, completeStudent bool, now time.Time) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin tour update: %w", err)
	}
	defer tx.Rollback()

	t.UpdatedAt = now
	_, err = tx.Exec(
		`UPDATE tour_visits SET starts_at=$1, status=$2, notes=$3, updated_at=$4 WHERE id=$5`,
		t.StartsAt, t.Status, t.Notes, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update tour: %w", err)
	}

	if completeStudent {
		_, err = tx.Exec(
			`UPDATE students SET visit_completed=true, visit_completed_at=$1 WHERE id=$2`,
			now, t.StudentID,
		)
		if err != nil {
			return fmt.Errorf("complete student visit: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tour update: %w", err)
	}
	return nil
}

// Cancel is the sole delete operation: the row survives with status CANCELED
// and its slot becomes bookable again.
func (r *TourRepository) Cancel(id int) (*model.TourVisit, error) {
	var t model.TourVisit
	err := r.DB.QueryRow(
		`UPDATE tour_visits SET status='CANCELED', updated_at=NOW() WHERE id=$1
		 RETURNING id, student_id, starts_at, status, notes, created_at, updated_at`,
		id,
	).Scan(&t.ID, &t.StudentID, &t.StartsAt, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("tour not found")
		}
		return nil, fmt.Errorf("cancel tour: %w", err)
	}
	return &t, nil
}

var _ TourRepositoryInterface = (*TourRepository)(nil)
