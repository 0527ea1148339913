package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-widget/internal/api/http"
	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/search"
)

var portFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lookup and widget session over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap("")
		if err != nil {
			return err
		}
		defer logging.Close()

		if portFlag != "" {
			a.cfg.Port = portFlag
			if err := a.cfg.Validate(); err != nil {
				return err
			}
		}
		return serve(a)
	},
}

func init() {
	serveCmd.Flags().StringVar(&portFlag, "port", "", "Port to listen on (default from PORT)")
}

func serve(a *app) error {
	orch := search.New(a.service, search.Options{
		Debounce: a.cfg.DebounceWindow,
		Unit:     a.cfg.DefaultUnit,
	})
	defer orch.Close()

	// Basic app configuration
	srv := fiber.New(fiber.Config{
		AppName:               "weather-widget",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * a.cfg.HTTPTimeout,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	srv.Use(logger.New())
	srv.Use(recover.New())

	httpapi.RegisterHealth(srv)
	httpapi.RegisterRoutes(srv, a.service, orch, a.cfg.DefaultUnit)

	go func() {
		logging.Info("http server listening", "port", a.cfg.Port)
		if err := srv.Listen(":" + a.cfg.Port); err != nil {
			logging.Error("fiber server stopped", "err", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error("error during shutdown", "err", err)
		return err
	}
	return nil
}
