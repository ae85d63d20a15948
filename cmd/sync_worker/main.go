package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"rentora/internal/config"
	"rentora/internal/database"
	syncmod "rentora/internal/modules/sync"
	"rentora/internal/pms"
	"rentora/internal/repository"
)

// One-shot sync-all runner, meant to be invoked from cron:
//
//	SYNC_ORGANIZATION_ID=1 sync_worker
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	organizationID, err := strconv.ParseInt(os.Getenv("SYNC_ORGANIZATION_ID"), 10, 64)
	if err != nil || organizationID <= 0 {
		log.Fatal("SYNC_ORGANIZATION_ID is required")
	}

	cfg, err := config.LoadSyncRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	pmsClient := pms.NewClient(pms.Config{
		BaseURL:      cfg.PMSBaseURL,
		ClientID:     cfg.PMSClientID,
		ClientSecret: cfg.PMSClientSecret,
		Timeout:      cfg.PMSTimeout,
	})

	svc := syncmod.NewService(
		repository.NewCalendarDayRepository(db),
		repository.NewPropertyMappingRepository(db),
		repository.NewReservationRepository(db),
		repository.NewSyncAuditRepository(db),
		pmsClient,
		nil,
		cfg.HorizonDays,
		cfg.SyncWorkers,
	)

	res, err := svc.SyncAll(context.Background(), organizationID)
	if err != nil {
		log.Fatalf("sync all failed: %v", err)
	}

	log.Printf("sync completed: organization=%d processed=%d succeeded=%d failed=%d",
		organizationID, res.Processed, res.Succeeded, res.Failed)
	for _, r := range res.Results {
		if !r.Success {
			log.Printf("sync failed: property=%d code=%s error=%s", r.PropertyID, r.ErrorCode, r.Error)
		}
	}

	if !res.Success {
		os.Exit(1)
	}
}
