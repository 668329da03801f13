// internal/service/outreach_service.go
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/phone"
	"github.com/glowpoint/recruiting-backend/internal/repository"
	"github.com/glowpoint/recruiting-backend/internal/sms"
)

const maxMessageLength = 1000

// OutreachService sends a message to a set of students, one at a time, and
// reports per-recipient outcomes. Recipients are processed strictly
// sequentially: that bounds provider-side rate limits and keeps the
// outreach_logs ordering meaningful.
type OutreachService struct {
	StudentRepo  repository.StudentRepositoryInterface
	OutreachRepo repository.OutreachRepositoryInterface
	Sender       sms.Sender
	Phones       *phone.Normalizer
	Log          *zap.SugaredLogger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *OutreachService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SendResult is one recipient's outcome in the batch report.
type SendResult struct {
	StudentID int    `json:"studentId"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// SendReport aggregates a whole batch. Partial failure is normal: the batch
// never fails wholesale because some recipients failed.
type SendReport struct {
	BatchID string       `json:"batch_id"`
	Results []SendResult `json:"results"`
}

// SendBulk delivers message to every resolvable student in studentIDs.
// Unknown ids are dropped silently and produce no report entry.
func (s *OutreachService) SendBulk(ctx context.Context, studentIDs []int, message string) (*SendReport, error) {
	message = strings.TrimSpace(message)

	if len(studentIDs) == 0 {
		return nil, apperrors.InvalidInput("studentIds required")
	}
	if message == "" {
		return nil, apperrors.InvalidInput("message required")
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return nil, apperrors.InvalidInput("message too long")
	}
	if s.Sender == nil {
		return nil, apperrors.Unavailable("SMS provider not configured")
	}

	students, err := s.StudentRepo.ListByIDs(studentIDs)
	if err != nil {
		return nil, err
	}

	report := &SendReport{
		BatchID: uuid.NewString(),
		Results: []SendResult{},
	}

	for i := range students {
		report.Results = append(report.Results, s.sendOne(ctx, &students[i], message))
	}

	s.Log.Infow("outreach batch finished",
		"batch_id", report.BatchID,
		"requested", len(studentIDs),
		"resolved", len(students),
	)
	return report, nil
}

func (s *OutreachService) sendOne(ctx context.Context, student *model.Student, message string) SendResult {
	fail := func(reason string) SendResult {
		return SendResult{StudentID: student.ID, OK: false, Error: reason}
	}

	if student.Phone == nil || *student.Phone == "" {
		return fail("Missing/invalid phone")
	}
	to, err := s.Phones.ToE164(*student.Phone)
	if err != nil {
		return fail("Missing/invalid phone")
	}

	msg := &model.OutreachMessage{
		StudentID:  student.ID,
		CampaignID: student.CampaignID,
		Message:    message,
	}
	if err := s.OutreachRepo.CreateMessage(msg); err != nil {
		s.Log.Errorw("failed to record outreach attempt", "student_id", student.ID, "error", err)
		return fail(err.Error())
	}

	if sendErr := s.Sender.Send(ctx, to, message); sendErr != nil {
		// Best-effort failure log. Its own error must never mask sendErr.
		if logErr := s.OutreachRepo.CreateLog(&model.OutreachLog{
			StudentID: student.ID,
			MessageID: msg.ID,
			Status:    model.OutreachFailed,
		}); logErr != nil {
			s.Log.Warnw("failed to log failed send", "student_id", student.ID, "error", logErr)
		}
		return fail(sendErr.Error())
	}

	// The SMS is already out; bookkeeping problems after this point are
	// logged but the recipient still counts as sent.
	if err := s.OutreachRepo.CreateLog(&model.OutreachLog{
		StudentID: student.ID,
		MessageID: msg.ID,
		Status:    model.OutreachSent,
	}); err != nil {
		s.Log.Warnw("failed to log sent message", "student_id", student.ID, "error", err)
	}
	if err := s.StudentRepo.MarkContacted(student.ID, s.now()); err != nil {
		s.Log.Warnw("failed to mark student contacted", "student_id", student.ID, "error", err)
	}

	return SendResult{StudentID: student.ID, OK: true}
}
