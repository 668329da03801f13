// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/config"
	"github.com/glowpoint/recruiting-backend/internal/controller"
	"github.com/glowpoint/recruiting-backend/internal/db"
	"github.com/glowpoint/recruiting-backend/internal/middleware"
	"github.com/glowpoint/recruiting-backend/internal/phone"
	"github.com/glowpoint/recruiting-backend/internal/queue"
	"github.com/glowpoint/recruiting-backend/internal/repository"
	"github.com/glowpoint/recruiting-backend/internal/service"
	"github.com/glowpoint/recruiting-backend/internal/sms"
)

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
	logger.Infow("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	// Confirmation events are optional: without a broker, bookings still work.
	var events queue.Publisher = queue.NopPublisher{}
	if q, err := queue.Dial(cfg.AMQPURL); err != nil {
		logger.Warnw("amqp unavailable, tour confirmations disabled", "error", err)
	} else {
		defer q.Close()
		events = q
	}

	// The sender stays nil without Twilio credentials; outreach then fails
	// Unavailable instead of silently dropping messages.
	var sender sms.Sender
	if tw := sms.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom); tw != nil {
		sender = tw
	} else {
		logger.Warn("twilio not configured, bulk SMS will be unavailable")
	}

	schoolRepo := &repository.SchoolRepository{DB: database}
	campaignRepo := &repository.CampaignRepository{DB: database}
	studentRepo := &repository.StudentRepository{DB: database}
	tourRepo := &repository.TourRepository{DB: database}
	outreachRepo := &repository.OutreachRepository{DB: database}

	schoolService := &service.SchoolService{SchoolRepo: schoolRepo, Log: logger}
	campaignService := &service.CampaignService{CampaignRepo: campaignRepo, Log: logger}
	studentService := &service.StudentService{StudentRepo: studentRepo, Log: logger}
	intakeService := &service.IntakeService{
		StudentRepo:  studentRepo,
		SchoolRepo:   schoolRepo,
		CampaignRepo: campaignRepo,
		Log:          logger,
	}
	tourService := &service.TourService{
		TourRepo:    tourRepo,
		StudentRepo: studentRepo,
		Events:      events,
		Log:         logger,
	}
	outreachService := &service.OutreachService{
		StudentRepo:  studentRepo,
		OutreachRepo: outreachRepo,
		Sender:       sender,
		Phones:       phone.NewNormalizer(cfg.DefaultRegion),
		Log:          logger,
	}

	schoolController := &controller.SchoolController{SchoolService: schoolService}
	campaignController := &controller.CampaignController{CampaignService: campaignService}
	studentController := &controller.StudentController{
		IntakeService:  intakeService,
		StudentService: studentService,
		Validate:       validator.New(),
		Log:            logger,
	}
	tourController := &controller.TourController{TourService: tourService}
	outreachController := &controller.OutreachController{OutreachService: outreachService}

	publicLimit := middleware.NewIPRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	// Public kiosk intake, rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(publicLimit.Middleware)
		r.Post("/students", studentController.Intake)
	})

	// Admin surface behind the shared PIN.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminPin(cfg.AdminPin))

		r.Get("/students", studentController.List)
		r.Put("/students/{id}", studentController.Update)
		r.Delete("/students/{id}", studentController.Delete)
		r.Get("/students/export/csv", studentController.ExportCSV)

		r.Get("/schools", schoolController.List)
		r.Post("/schools", schoolController.Create)
		r.Put("/schools/{id}", schoolController.Update)
		r.Delete("/schools/{id}", schoolController.Delete)

		r.Get("/campaigns", campaignController.List)
		r.Post("/campaigns", campaignController.Create)
		r.Get("/campaigns/active", campaignController.GetActive)
		r.Post("/campaigns/{id}/activate", campaignController.Activate)
		r.Post("/campaigns/{id}/deactivate", campaignController.Deactivate)
		r.Delete("/campaigns/{id}", campaignController.Delete)

		r.Get("/tours", tourController.ListForDay)
		r.Post("/tours", tourController.Book)
		r.Put("/tours/{id}", tourController.Reschedule)
		r.Delete("/tours/{id}", tourController.Cancel)

		r.Post("/outreach/sms", outreachController.SendSMS)
	})

	logger.Infow("server running", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
