package weather

import (
	"fmt"
	"time"
)

// Unit is the measurement system requested from the provider.
type Unit string

const (
	UnitMetric   Unit = "metric"
	UnitImperial Unit = "imperial"
)

// ParseUnit accepts the provider's unit names.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitMetric, UnitImperial:
		return Unit(s), nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// Query identifies one lookup. LocationText is free-form user input.
type Query struct {
	LocationText string `json:"location" validate:"required"`
	Unit         Unit   `json:"unit" validate:"required,oneof=metric imperial"`
}

// WeatherSnapshot is the normalized current-conditions reading for one location.
type WeatherSnapshot struct {
	DisplayName          string  `json:"displayName"`
	Temperature          float64 `json:"temperature"`
	Humidity             float64 `json:"humidityPercent"`
	WindSpeed            float64 `json:"windSpeed"`
	ConditionMain        string  `json:"conditionMain"`
	ConditionDescription string  `json:"conditionDescription"`
	IconID               string  `json:"iconId"`
}

// Condition returns the coarse category of the snapshot's main condition.
func (s WeatherSnapshot) Condition() Condition {
	return ClassifyCondition(s.ConditionMain)
}

// ForecastEntry is the one-per-day digest shown as a forecast card.
type ForecastEntry struct {
	Timestamp            time.Time `json:"timestamp"` // provider local wall clock, zone UTC
	Temperature          float64   `json:"temperature"`
	ConditionDescription string    `json:"conditionDescription"`
	IconID               string    `json:"iconId"`
}

// RawForecastEntry is one 3-hour sample as returned by the provider.
type RawForecastEntry struct {
	DtTxt                string
	Temperature          float64
	Humidity             float64
	ConditionMain        string
	ConditionDescription string
	IconID               string
}
