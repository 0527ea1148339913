package weather

import (
	"context"
)

// Client abstracts the remote weather provider. Implementations return
// *Error values so callers can tell provider failures from transport ones.
type Client interface {
	FetchConditions(ctx context.Context, location string, unit Unit) (WeatherSnapshot, error)
	FetchForecastRaw(ctx context.Context, location string, unit Unit) ([]RawForecastEntry, error)
}
