// internal/repository/student_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/glowpoint/recruiting-backend/internal/model"
)

type StudentRepositoryInterface interface {
	List(schoolID, campaignID *int) ([]model.Student, error)
	ListByIDs(ids []int) ([]model.Student, error)
	GetByID(id int) (*model.Student, error)
	Create(s *model.Student) error
	Update(s *model.Student) error
	Delete(id int) error
	ExistsContactInCampaign(campaignID int, email, phone string) (bool, error)
	MarkContacted(id int, at time.Time) error
}

type StudentRepository struct {
	DB *sql.DB
}

const studentJoinedColumns = `
	s.id, s.first_name, s.last_name, s.email, s.phone, s.area_of_interest,
	s.consent, s.contacted, s.contacted_at, s.visit_completed,
	s.visit_completed_at, s.created_at, s.school_id, s.campaign_id,
	sc.id, sc.name, sc.city, sc.state,
	c.id, c.name, c.is_active, c.created_at`

const studentJoinedFrom = `
	FROM students s
	JOIN schools sc ON sc.id = s.school_id
	JOIN campaigns c ON c.id = s.campaign_id`

func scanStudentJoined(row interface{ Scan(...any) error }) (*model.Student, error) {
	var s model.Student
	var school model.School
	var campaign model.Campaign
	err := row.Scan(
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
	return &s, nil
}

func (r *StudentRepository) List(schoolID, campaignID *int) ([]model.Student, error) {
	query := `SELECT` + studentJoinedColumns + studentJoinedFrom + ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if schoolID != nil {
		query += fmt.Sprintf(" AND s.school_id=$%d", argPos)
		args = append(args, *schoolID)
		argPos++
	}
	if campaignID != nil {
		query += fmt.Sprintf(" AND s.campaign_id=$%d", argPos)
		args = append(args, *campaignID)
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		s, err := scanStudentJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// ListByIDs resolves students in the given id set. Unknown ids are simply
// absent from the result. Order follows the input ids.
func (r *StudentRepository) ListByIDs(ids []int) ([]model.Student, error) {
	if len(ids) == 0 {
		return []model.Student{}, nil
	}

	query := `SELECT` + studentJoinedColumns + studentJoinedFrom + ` WHERE s.id = ANY($1)`
	rows, err := r.DB.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list students by ids: %w", err)
	}
	defer rows.Close()

	byID := map[int]model.Student{}
	for rows.Next() {
		s, err := scanStudentJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		byID[s.ID] = *s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	students := []model.Student{}
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			students = append(students, s)
		}
	}
	return students, nil
}

func (r *StudentRepository) GetByID(id int) (*model.Student, error) {
	query := `SELECT` + studentJoinedColumns + studentJoinedFrom + ` WHERE s.id=$1`
	s, err := scanStudentJoined(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return s, nil
}

func (r *StudentRepository) Create(s *model.Student) error {
	err := r.DB.QueryRow(
		`INSERT INTO students
			(first_name, last_name, email, phone, area_of_interest, consent, school_id, campaign_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, contacted, visit_completed, created_at`,
		s.FirstName, s.LastName, s.Email, s.Phone, s.AreaOfInterest,
		s.Consent, s.SchoolID, s.CampaignID,
	).Scan(&s.ID, &s.Contacted, &s.VisitCompleted, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (r *StudentRepository) Update(s *model.Student) error {
	_, err := r.DB.Exec(
		`UPDATE students
		 SET first_name=$1, last_name=$2, email=$3, phone=$4, area_of_interest=$5, consent=$6
		 WHERE id=$7`,
		s.FirstName, s.LastName, s.Email, s.Phone, s.AreaOfInterest, s.Consent, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

func (r *StudentRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM students WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}

// ExistsContactInCampaign reports whether a student in the campaign already
// carries the given email or phone. Empty values never match.
func (r *StudentRepository) ExistsContactInCampaign(campaignID int, email, phone string) (bool, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM students
		 WHERE campaign_id=$1
		   AND (($2 <> '' AND email=$2) OR ($3 <> '' AND phone=$3))`,
		campaignID, email, phone,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check duplicate contact: %w", err)
	}
	return count > 0, nil
}

// MarkContacted flags the student contacted. contacted_at keeps its first
// value: COALESCE makes the stamp first-write-wins.
func (r *StudentRepository) MarkContacted(id int, at time.Time) error {
	_, err := r.DB.Exec(
		`UPDATE students SET contacted=true, contacted_at=COALESCE(contacted_at, $2) WHERE id=$1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("mark student contacted: %w", err)
	}
	return nil
}

var _ StudentRepositoryInterface = (*StudentRepository)(nil)
