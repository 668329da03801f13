// internal/repository/school_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/glowpoint/recruiting-backend/internal/model"
)

type SchoolRepositoryInterface interface {
	List() ([]model.School, error)
	GetByID(id int) (*model.School, error)
	GetByNameFold(name string) (*model.School, error)
	Create(s *model.School) error
	Update(s *model.School) error
	Delete(id int) error
	CountStudents(schoolID int) (int, error)
}

type SchoolRepository struct {
	DB *sql.DB
}

func (r *SchoolRepository) List() ([]model.School, error) {
	rows, err := r.DB.Query(`SELECT id, name, city, state FROM schools ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	defer rows.Close()

	schools := []model.School{}
	for rows.Next() {
		var s model.School
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State); err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

func (r *SchoolRepository) GetByID(id int) (*model.School, error) {
	var s model.School
	err := r.DB.QueryRow(
		`SELECT id, name, city, state FROM schools WHERE id=$1`, id,
	).Scan(&s.ID, &s.Name, &s.City, &s.State)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	return &s, nil
}

// GetByNameFold finds a school by case-insensitive name, for dedup on create.
func (r *SchoolRepository) GetByNameFold(name string) (*model.School, error) {
	var s model.School
	err := r.DB.QueryRow(
		`SELECT id, name, city, state FROM schools WHERE LOWER(name)=LOWER($1)`, name,
	).Scan(&s.ID, &s.Name, &s.City, &s.State)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get school by name: %w", err)
	}
	return &s, nil
}

func (r *SchoolRepository) Create(s *model.School) error {
	err := r.DB.QueryRow(
		`INSERT INTO schools (name, city, state) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.City, s.State,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("create school: %w", err)
	}
	return nil
}

func (r *SchoolRepository) Update(s *model.School) error {
	_, err := r.DB.Exec(
		`UPDATE schools SET name=$1, city=$2, state=$3 WHERE id=$4`,
		s.Name, s.City, s.State, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	return nil
}

func (r *SchoolRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM schools WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	return nil
}

func (r *SchoolRepository) CountStudents(schoolID int) (int, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM students WHERE school_id=$1`, schoolID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count students by school: %w", err)
	}
	return count, nil
}

var _ SchoolRepositoryInterface = (*SchoolRepository)(nil)
