package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string `validate:"required,url"`

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// DebounceWindow is the quiet period before stale results are cleared.
	DebounceWindow time.Duration `validate:"gt=0"`

	DefaultUnit weather.Unit `validate:"oneof=metric imperial"`

	// Outbound rate limit (requests per second, burst). ProviderRPS 0 disables it.
	ProviderRPS   float64 `validate:"gte=0"`
	ProviderBurst int     `validate:"gte=1"`

	Port string `validate:"required,numeric"`

	LogLevel string `validate:"oneof=debug info warn error"`
	LogFile  string
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logging.Debug("no .env file loaded", "err", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.DebounceWindow, err = getenvDuration("DEBOUNCE_WINDOW", "300ms"); err != nil {
		return nil, err
	}

	unit, err := weather.ParseUnit(getenvDefault("DEFAULT_UNITS", string(weather.UnitMetric)))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UNITS: %w", err)
	}
	cfg.DefaultUnit = unit

	// OpenWeatherMap free tier allows 60 calls/minute.
	cfg.ProviderRPS, err = strconv.ParseFloat(getenvDefault("PROVIDER_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_RPS: %w", err)
	}
	cfg.ProviderBurst = getenvInt("PROVIDER_BURST", 5)

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFile = os.Getenv("LOG_FILE")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints. Call it again after applying flag overrides.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
