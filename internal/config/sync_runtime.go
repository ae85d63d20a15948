package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHorizonDays = "365"
	defaultSyncWorkers = "4"
	defaultRecentLimit = "20"
	defaultPMSTimeout  = "15s"
)

type SyncRuntimeConfig struct {
	AppEnv string

	// HorizonDays is N in the "today → +N days" reconciliation window.
	HorizonDays int
	// SyncWorkers bounds the orchestrator's parallel fan-out against the PMS.
	SyncWorkers int
	// RecentEventsLimit caps audit-event lists on the status surface.
	RecentEventsLimit int

	PMSBaseURL      string
	PMSClientID     string
	PMSClientSecret string
	PMSTimeout      time.Duration
}

func LoadSyncRuntimeConfig() (*SyncRuntimeConfig, error) {
	cfg := &SyncRuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	var err error
	cfg.HorizonDays, err = parseIntEnv("SYNC_HORIZON_DAYS", defaultHorizonDays)
	if err != nil {
		return nil, err
	}
	cfg.SyncWorkers, err = parseIntEnv("SYNC_WORKERS", defaultSyncWorkers)
	if err != nil {
		return nil, err
	}
	cfg.RecentEventsLimit, err = parseIntEnv("SYNC_RECENT_EVENTS_LIMIT", defaultRecentLimit)
	if err != nil {
		return nil, err
	}
	cfg.PMSTimeout, err = parseDurationEnv("PMS_TIMEOUT", defaultPMSTimeout)
	if err != nil {
		return nil, err
	}

	cfg.PMSBaseURL = strings.TrimSpace(os.Getenv("PMS_BASE_URL"))
	cfg.PMSClientID = strings.TrimSpace(os.Getenv("PMS_CLIENT_ID"))
	cfg.PMSClientSecret = strings.TrimSpace(os.Getenv("PMS_CLIENT_SECRET"))

	if err := validateSyncConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateSyncConfig(cfg *SyncRuntimeConfig) error {
	if cfg.HorizonDays <= 0 {
		return fmt.Errorf("SYNC_HORIZON_DAYS must be > 0")
	}
	if cfg.SyncWorkers <= 0 {
		return fmt.Errorf("SYNC_WORKERS must be > 0")
	}
	if cfg.RecentEventsLimit <= 0 {
		return fmt.Errorf("SYNC_RECENT_EVENTS_LIMIT must be > 0")
	}
	if cfg.PMSTimeout <= 0 {
		return fmt.Errorf("PMS_TIMEOUT must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.PMSBaseURL == "" {
			return fmt.Errorf("in prod/release PMS_BASE_URL must be set")
		}
		if cfg.PMSClientID == "" || cfg.PMSClientSecret == "" {
			return fmt.Errorf("in prod/release PMS_CLIENT_ID and PMS_CLIENT_SECRET must be set")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
