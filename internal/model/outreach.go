// internal/model/outreach.go
package model

import "time"

// OutreachMessage records one attempted send, including failed attempts.
// Immutable once created.
type OutreachMessage struct {
	ID         int       `db:"id" json:"id"`
	StudentID  int       `db:"student_id" json:"student_id"`
	CampaignID int       `db:"campaign_id" json:"campaign_id"`
	Message    string    `db:"message" json:"message"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// OutreachStatus is the delivery outcome of a single attempt.
type OutreachStatus string

const (
	OutreachSent   OutreachStatus = "SENT"
	OutreachFailed OutreachStatus = "FAILED"
)

// OutreachLog records one delivery outcome, immutable.
type OutreachLog struct {
	ID        int            `db:"id" json:"id"`
	StudentID int            `db:"student_id" json:"student_id"`
	MessageID int            `db:"message_id" json:"message_id"`
	Status    OutreachStatus `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
