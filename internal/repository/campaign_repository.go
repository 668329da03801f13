// internal/repository/campaign_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	List() ([]model.Campaign, error)
	GetByID(id int) (*model.Campaign, error)
	GetActive() (*model.Campaign, error)
	Create(c *model.Campaign) error
	Activate(id int) error
	Deactivate(id int) error
	Delete(id int) error
	CountStudents(campaignID int) (int, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) List() ([]model.Campaign, error) {
	rows, err := r.DB.Query(
		`SELECT id, name, is_active, created_at FROM campaigns ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	var c model.Campaign
	err := r.DB.QueryRow(
		`SELECT id, name, is_active, created_at FROM campaigns WHERE id=$1`, id,
	).Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return &c, nil
}

// GetActive returns the single active campaign, or nil when none is active.
func (r *CampaignRepository) GetActive() (*model.Campaign, error) {
	var c model.Campaign
	err := r.DB.QueryRow(
		`SELECT id, name, is_active, created_at FROM campaigns WHERE is_active=true`,
	).Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get active campaign: %w", err)
	}
	return &c, nil
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	err := r.DB.QueryRow(
		`INSERT INTO campaigns (name, is_active) VALUES ($1, false) RETURNING id, created_at`,
		c.Name,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	c.IsActive = false
	return nil
}

// Activate flips every campaign inactive and the target active in one
// transaction, so no reader ever observes zero or two active campaigns.
func (r *CampaignRepository) Activate(id int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin activate: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE campaigns SET is_active=false WHERE is_active=true`); err != nil {
		return fmt.Errorf("deactivate all campaigns: %w", err)
	}

	res, err := tx.Exec(`UPDATE campaigns SET is_active=true WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("activate campaign: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate campaign: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("campaign not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate: %w", err)
	}
	return nil
}

func (r *CampaignRepository) Deactivate(id int) error {
	res, err := r.DB.Exec(`UPDATE campaigns SET is_active=false WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("deactivate campaign: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate campaign: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("campaign not found")
	}
	return nil
}

func (r *CampaignRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) CountStudents(campaignID int) (int, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM students WHERE campaign_id=$1`, campaignID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count students by campaign: %w", err)
	}
	return count, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
