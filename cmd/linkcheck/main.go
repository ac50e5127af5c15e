package main

import (
	"context"
	"log"

	"refgallery/internal/linkcheck"
	"refgallery/internal/submissions"
	"refgallery/pkg/database"
	"refgallery/pkg/utils"
)

// One-shot dead-link sweep over approved submissions. Run it from cron.
func main() {
	cfg := utils.LoadConfig()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	checker := linkcheck.New(submissions.NewRepo(db), cfg.HTTPTimeout)
	dead, err := checker.Run(context.Background())
	if err != nil {
		log.Fatalf("link check failed: %v", err)
	}
	log.Printf("link check complete, %d dead links found", dead)
}
