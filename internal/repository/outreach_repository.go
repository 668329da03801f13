// internal/repository/outreach_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/glowpoint/recruiting-backend/internal/model"
)

type OutreachRepositoryInterface interface {
	CreateMessage(m *model.OutreachMessage) error
	CreateLog(l *model.OutreachLog) error
}

type OutreachRepository struct {
	DB *sql.DB
}

func (r *OutreachRepository) CreateMessage(m *model.OutreachMessage) error {
	err := r.DB.QueryRow(
		`INSERT INTO outreach_messages (student_id, campaign_id, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		m.StudentID, m.CampaignID, m.Message,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create outreach message: %w", err)
	}
	return nil
}

func (r *OutreachRepository) CreateLog(l *model.OutreachLog) error {
	err := r.DB.QueryRow(
		`INSERT INTO outreach_logs (student_id, message_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		l.StudentID, l.MessageID, l.Status,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create outreach log: %w", err)
	}
	return nil
}

var _ OutreachRepositoryInterface = (*OutreachRepository)(nil)
