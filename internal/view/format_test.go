package view

import (
	"testing"
	"time"

	"github.com/i474232898/weather-widget/internal/weather"
)

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"metric temperature", Temperature(21.6, weather.UnitMetric), "22°C"},
		{"imperial temperature", Temperature(70.2, weather.UnitImperial), "70°F"},
		{"negative temperature", Temperature(-3.4, weather.UnitMetric), "-3°C"},
		{"metric wind", WindSpeed(4.4, weather.UnitMetric), "4 m/s"},
		{"imperial wind", WindSpeed(9.6, weather.UnitImperial), "10 mph"},
		{"humidity", Humidity(56), "56%"},
		{"day label", DayLabel(time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)), "Tue, Jan 2"},
		{"icon url", IconURL("04d", "2x"), "https://openweathermap.org/img/wn/04d@2x.png"},
		{"missing icon", IconURL("", "2x"), ""},
		{"capitalize", Capitalize("broken  clouds"), "Broken Clouds"},
		{"capitalize empty", Capitalize(""), ""},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
