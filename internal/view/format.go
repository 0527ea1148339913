// Package view formats weather values for display.
package view

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/i474232898/weather-widget/internal/weather"
)

const iconBaseURL = "https://openweathermap.org/img/wn/"

// Temperature renders a rounded temperature with its unit symbol, e.g. "21°C".
func Temperature(v float64, unit weather.Unit) string {
	return fmt.Sprintf("%d°%s", round(v), TemperatureSymbol(unit))
}

// TemperatureSymbol is "C" for metric and "F" for imperial.
func TemperatureSymbol(unit weather.Unit) string {
	if unit == weather.UnitImperial {
		return "F"
	}
	return "C"
}

// WindSpeed renders a rounded wind speed: m/s for metric, mph for imperial.
func WindSpeed(v float64, unit weather.Unit) string {
	if unit == weather.UnitImperial {
		return fmt.Sprintf("%d mph", round(v))
	}
	return fmt.Sprintf("%d m/s", round(v))
}

// Humidity renders a humidity percentage.
func Humidity(v float64) string {
	return fmt.Sprintf("%g%%", v)
}

// DayLabel renders a forecast date as "Mon, Jan 2".
func DayLabel(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

// IconURL returns the provider's icon image URL. Size is the density suffix,
// e.g. "2x" or "4x".
func IconURL(iconID, size string) string {
	if iconID == "" {
		return ""
	}
	return iconBaseURL + iconID + "@" + size + ".png"
}

// Capitalize upper-cases the first letter of each word in a condition
// description.
func Capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func round(v float64) int {
	return int(math.Round(v))
}
