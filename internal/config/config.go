package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ycwang-tw/matcha-trip-weather/internal/models"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
	}

	CWA struct {
		BaseURL string
		APIKey  string

		// Dataset IDs per location, one set per retrieval mode.
		WeeklyDatasets     map[models.LocationKind]string
		ShortRangeDatasets map[models.LocationKind]string

		// Upstream location names as they appear in the response.
		LocationNames map[models.LocationKind]string
	}

	Trip struct {
		TripDates   []string // YYYY-MM-DD
		HikingDates []string // YYYY-MM-DD, subset of TripDates
	}

	Cache struct {
		TTL  time.Duration
		Path string // sqlite file; empty falls back to in-memory
	}

	CircuitBreaker struct {
		Timeout time.Duration
	}

	Scheduler struct {
		RefreshInterval time.Duration
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	// CWA open data configuration
	cfg.CWA.BaseURL = getEnv("CWA_BASE_URL", "https://opendata.cwa.gov.tw")
	cfg.CWA.APIKey = getEnv("CWA_API_KEY", "")

	cfg.CWA.WeeklyDatasets = map[models.LocationKind]string{
		models.LocationJiaoxi:   getEnv("CWA_DATASET_JIAOXI_WEEKLY", "F-D0047-003"),
		models.LocationMountain: getEnv("CWA_DATASET_MOUNTAIN_WEEKLY", "F-B0053-031"),
	}
	cfg.CWA.ShortRangeDatasets = map[models.LocationKind]string{
		models.LocationJiaoxi:   getEnv("CWA_DATASET_JIAOXI_3DAY", "F-D0047-001"),
		models.LocationMountain: getEnv("CWA_DATASET_MOUNTAIN_3DAY", "F-B0053-035"),
	}
	cfg.CWA.LocationNames = map[models.LocationKind]string{
		models.LocationJiaoxi:   getEnv("CWA_LOCATION_JIAOXI", "礁溪鄉"),
		models.LocationMountain: getEnv("CWA_LOCATION_MOUNTAIN", "三角崙山"),
	}

	// Trip configuration
	cfg.Trip.TripDates = splitDates(getEnv("TRIP_DATES", "2026-01-24,2026-01-25,2026-01-26"))
	cfg.Trip.HikingDates = splitDates(getEnv("HIKING_DATES", "2026-01-25"))

	// Cache configuration
	cfg.Cache.TTL = parseDuration(getEnv("CACHE_TTL", "30m"))
	cfg.Cache.Path = getEnv("CACHE_PATH", "weather-cache.db")

	// Circuit breaker configuration
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Scheduler configuration
	cfg.Scheduler.RefreshInterval = parseDuration(getEnv("REFRESH_INTERVAL", "30m"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func splitDates(value string) []string {
	parts := strings.Split(value, ",")
	dates := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			dates = append(dates, p)
		}
	}
	return dates
}
