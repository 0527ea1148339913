package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/i474232898/weather-widget/internal/weather"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	unitActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1)

	unitInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("62")).
				Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	cityStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	tempStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(18).
			Align(lipgloss.Center)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// themeColors maps a condition to the frame's border colour.
var themeColors = map[weather.Condition]lipgloss.Color{
	weather.ConditionClear:      lipgloss.Color("39"),
	weather.ConditionClouds:     lipgloss.Color("245"),
	weather.ConditionRain:       lipgloss.Color("63"),
	weather.ConditionStorm:      lipgloss.Color("236"),
	weather.ConditionSnow:       lipgloss.Color("153"),
	weather.ConditionAtmosphere: lipgloss.Color("242"),
}

const defaultThemeColor = lipgloss.Color("62")

func frameStyle(c weather.Condition) lipgloss.Style {
	color, ok := themeColors[c]
	if !ok {
		color = defaultThemeColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(color).
		Padding(1, 2)
}
