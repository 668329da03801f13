// cmd/seeder/main.go
package main

import (
	"log"

	"github.com/glowpoint/recruiting-backend/internal/config"
	"github.com/glowpoint/recruiting-backend/internal/db"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/repository"
)

func strPtr(s string) *string { return &s }

// Seeds a clean dev database: two schools, one activated campaign, two
// students. Destructive; dev only.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	database, err := db.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	for _, table := range []string{"outreach_logs", "outreach_messages", "tour_visits", "students", "campaigns", "schools"} {
		if _, err := database.Exec("DELETE FROM " + table); err != nil {
			log.Fatalf("clear %s: %v", table, err)
		}
	}

	schoolRepo := &repository.SchoolRepository{DB: database}
	campaignRepo := &repository.CampaignRepository{DB: database}
	studentRepo := &repository.StudentRepository{DB: database}

	school1 := &model.School{Name: "Lincoln High School", City: strPtr("Phoenix"), State: strPtr("AZ")}
	school2 := &model.School{Name: "Roosevelt High School", City: strPtr("Phoenix"), State: strPtr("AZ")}
	for _, s := range []*model.School{school1, school2} {
		if err := schoolRepo.Create(s); err != nil {
			log.Fatalf("create school %s: %v", s.Name, err)
		}
	}

	campaign := &model.Campaign{Name: "Spring 2026 Beauty Recruitment"}
	if err := campaignRepo.Create(campaign); err != nil {
		log.Fatalf("create campaign: %v", err)
	}
	if err := campaignRepo.Activate(campaign.ID); err != nil {
		log.Fatalf("activate campaign: %v", err)
	}

	students := []*model.Student{
		{
			FirstName:      "Emily",
			LastName:       "Garcia",
			Email:          strPtr("emily@example.com"),
			Phone:          strPtr("6025551111"),
			AreaOfInterest: model.InterestCosmetology,
			SchoolID:       school1.ID,
			CampaignID:     campaign.ID,
		},
		{
			FirstName:      "Sofia",
			LastName:       "Martinez",
			Email:          strPtr("sofia@example.com"),
			Phone:          strPtr("6025552222"),
			AreaOfInterest: model.InterestNailTechnician,
			SchoolID:       school2.ID,
			CampaignID:     campaign.ID,
		},
	}
	for _, s := range students {
		if err := studentRepo.Create(s); err != nil {
			log.Fatalf("create student %s %s: %v", s.FirstName, s.LastName, err)
		}
	}

	log.Println("seed data inserted")
}
