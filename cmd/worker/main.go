// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/config"
	"github.com/glowpoint/recruiting-backend/internal/db"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/phone"
	"github.com/glowpoint/recruiting-backend/internal/queue"
	"github.com/glowpoint/recruiting-backend/internal/repository"
	"github.com/glowpoint/recruiting-backend/internal/sms"
)

// The worker consumes tour-booked events and texts the student a
// confirmation. Confirmations are a courtesy: they do not touch the
// contacted flags and create no outreach rows.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	database, err := db.Open(cfg.DSN())
	if err != nil {
		logger.Fatalw("connect database", "error", err)
	}

	var sender sms.Sender = sms.MockSender{}
	if tw := sms.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom); tw != nil {
		sender = tw
	} else {
		logger.Warn("twilio not configured, using mock sender")
	}

	tourRepo := &repository.TourRepository{DB: database}
	normalizer := phone.NewNormalizer(cfg.DefaultRegion)

	q, err := queue.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Fatalw("connect amqp", "error", err)
	}
	defer q.Close()

	logger.Info("worker running, waiting for tour confirmations")

	err = q.Consume(queue.TopicTourConfirmations, func(body []byte) error {
		var event queue.TourBooked
		if err := json.Unmarshal(body, &event); err != nil {
			logger.Warnw("invalid event payload", "error", err)
			return nil // malformed events are dropped, not requeued
		}
		return confirmTour(tourRepo, normalizer, sender, logger, event)
	})
	if err != nil {
		logger.Fatalw("consume tour confirmations", "error", err)
	}
}

func confirmTour(
	tourRepo repository.TourRepositoryInterface,
	normalizer *phone.Normalizer,
	sender sms.Sender,
	logger *zap.SugaredLogger,
	event queue.TourBooked,
) error {
	tour, err := tourRepo.GetJoined(event.TourID)
	if err != nil {
		return err
	}
	if tour == nil || tour.Status != model.TourScheduled {
		// Canceled or vanished between booking and pickup; nothing to confirm.
		return nil
	}

	student := tour.Student
	if student == nil || student.Phone == nil {
		return nil
	}
	to, err := normalizer.ToE164(*student.Phone)
	if err != nil {
		logger.Infow("skipping confirmation, unusable phone", "tour_id", tour.ID)
		return nil
	}

	body := fmt.Sprintf(
		"Hi %s! Your campus tour is confirmed for %s. Reply STOP to opt out.",
		student.FirstName,
		tour.StartsAt.Format("Monday, Jan 2 at 3:04 PM"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sender.Send(ctx, to, body); err != nil {
		logger.Warnw("confirmation send failed", "tour_id", tour.ID, "error", err)
		return err // requeued by the consumer
	}

	logger.Infow("confirmation sent", "tour_id", tour.ID, "student_id", student.ID)
	return nil
}
