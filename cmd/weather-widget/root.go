package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-widget/internal/config"
	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/weather"
	"github.com/i474232898/weather-widget/internal/weather/providers"
)

var unitsFlag string

var rootCmd = &cobra.Command{
	Use:   "weather-widget",
	Short: "City weather lookup with current conditions and a daily forecast",
	Long: `weather-widget looks up current conditions and a five-day forecast for a
city from OpenWeatherMap.

With no arguments it starts the interactive terminal widget. Use "serve" to
expose the same lookup over HTTP, or "lookup" for a one-shot query.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&unitsFlag, "units", "", "Unit system: metric or imperial (default from DEFAULT_UNITS)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lookupCmd)
}

// app bundles what every front end needs.
type app struct {
	cfg     *config.AppConfig
	service *weather.Service
}

// bootstrap loads configuration, applies flag overrides and builds the
// lookup service. logFile overrides LOG_FILE when LOG_FILE is unset.
func bootstrap(logFile string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if unitsFlag != "" {
		unit, err := weather.ParseUnit(unitsFlag)
		if err != nil {
			return nil, err
		}
		cfg.DefaultUnit = unit
	}
	if cfg.LogFile == "" {
		cfg.LogFile = logFile
	}

	if err := logging.Init(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		return nil, err
	}
	if cfg.OpenWeatherAPIKey == "" {
		logging.Warn("OPENWEATHER_API_KEY is not set; the provider will reject lookups")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, providers.OpenWeatherConfig{
		APIKey:  cfg.OpenWeatherAPIKey,
		BaseURL: cfg.OpenWeatherBaseURL,
		RPS:     cfg.ProviderRPS,
		Burst:   cfg.ProviderBurst,
	})

	return &app{
		cfg:     cfg,
		service: weather.NewService(provider),
	}, nil
}
