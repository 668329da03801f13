// internal/service/campaign_service.go
package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/repository"
)

// CampaignService owns the single-active-campaign invariant. is_active is
// only ever toggled through Activate and Deactivate here; no other code path
// writes it.
type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	Log          *zap.SugaredLogger
}

func (s *CampaignService) List() ([]model.Campaign, error) {
	return s.CampaignRepo.List()
}

func (s *CampaignService) Create(name string) (*model.Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.InvalidInput("name required")
	}

	c := &model.Campaign{Name: name}
	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}
	s.Log.Infow("campaign created", "campaign_id", c.ID, "name", c.Name)
	return c, nil
}

// Activate makes the target campaign the single active one. The repository
// performs the flip-all-off, flip-one-on pair inside one transaction, so a
// concurrent reader never sees zero or two active campaigns.
func (s *CampaignService) Activate(id int) (*model.Campaign, error) {
	if err := s.CampaignRepo.Activate(id); err != nil {
		return nil, err
	}
	s.Log.Infow("campaign activated", "campaign_id", id)
	return s.CampaignRepo.GetByID(id)
}

func (s *CampaignService) Deactivate(id int) error {
	if err := s.CampaignRepo.Deactivate(id); err != nil {
		return err
	}
	s.Log.Infow("campaign deactivated", "campaign_id", id)
	return nil
}

// GetActive returns the campaign currently accepting kiosk submissions.
func (s *CampaignService) GetActive() (*model.Campaign, error) {
	c, err := s.CampaignRepo.GetActive()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.NotFound("no active campaign")
	}
	return c, nil
}

// Delete removes a campaign. Active campaigns and campaigns still referenced
// by students are protected.
func (s *CampaignService) Delete(id int) error {
	c, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperrors.NotFound("campaign not found")
	}
	if c.IsActive {
		return apperrors.Conflict("deactivate campaign before deleting it")
	}

	count, err := s.CampaignRepo.CountStudents(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("campaign has students and cannot be deleted")
	}

	return s.CampaignRepo.Delete(id)
}
