package main

import (
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal widget",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	// The terminal is owned by the UI, so logs go to a file.
	a, err := bootstrap(logging.DefaultFile())
	if err != nil {
		return err
	}
	defer logging.Close()

	logging.Info("widget started", "unit", a.cfg.DefaultUnit)
	return tui.Run(tui.New(a.service, a.cfg.DefaultUnit, a.cfg.DebounceWindow))
}
