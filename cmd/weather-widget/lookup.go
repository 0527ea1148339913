package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-widget/internal/search"
	"github.com/i474232898/weather-widget/internal/view"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <city>",
	Short: "Print current conditions and the daily forecast for a city",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap("")
		if err != nil {
			return err
		}

		orch := search.New(a.service, search.Options{Unit: a.cfg.DefaultUnit})
		defer orch.Close()

		city := strings.Join(args, " ")
		v := orch.Search(context.Background(), &city)
		if v.State.Error != "" {
			return errors.New(v.State.Error)
		}
		printView(v)
		return nil
	},
}

func printView(v search.View) {
	st := v.State
	if st.Snapshot == nil {
		return
	}

	s := st.Snapshot
	bold := color.New(color.Bold)
	bold.Println(s.DisplayName)
	color.Yellow("%s  %s", view.Temperature(s.Temperature, v.Unit), view.Capitalize(s.ConditionDescription))
	fmt.Printf("Humidity: %s   Wind: %s\n", view.Humidity(s.Humidity), view.WindSpeed(s.WindSpeed, v.Unit))

	if len(st.Forecast) == 0 {
		return
	}
	fmt.Println()
	label := color.New(color.FgCyan)
	for _, d := range st.Forecast {
		label.Printf("%-12s", view.DayLabel(d.Timestamp))
		fmt.Printf(" %6s  %s\n", view.Temperature(d.Temperature, v.Unit), view.Capitalize(d.ConditionDescription))
	}
}
