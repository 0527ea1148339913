package weather

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-widget/internal/logging"
)

// Lookup is the committed outcome of a successful paired fetch.
type Lookup struct {
	Snapshot WeatherSnapshot
	Forecast []ForecastEntry
}

// Service runs the paired current-conditions and forecast fetch.
type Service struct {
	client Client
}

// NewService creates a new Service.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// Lookup fetches current conditions and the forecast concurrently, waits for
// both, and commits all-or-nothing: any failure yields an *Error and no data.
// A transport failure on either call takes precedence; otherwise the
// current-conditions error is reported before the forecast one.
func (s *Service) Lookup(ctx context.Context, q Query) (Lookup, error) {
	location := strings.TrimSpace(q.LocationText)
	if location == "" {
		return Lookup{}, ValidationError(MsgEmptyLocation)
	}

	reqID := uuid.NewString()
	logging.Debug("lookup started", "request", reqID, "location", location, "unit", q.Unit)

	var (
		wg          sync.WaitGroup
		snapshot    WeatherSnapshot
		raw         []RawForecastEntry
		conditionsE error
		forecastE   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snapshot, conditionsE = s.client.FetchConditions(ctx, location, q.Unit)
	}()
	go func() {
		defer wg.Done()
		raw, forecastE = s.client.FetchForecastRaw(ctx, location, q.Unit)
	}()
	wg.Wait()

	if err := pickError(conditionsE, forecastE); err != nil {
		logFailure(reqID, location, err)
		return Lookup{}, err
	}

	daily := ReduceToDaily(raw)
	logging.Debug("lookup completed", "request", reqID, "location", snapshot.DisplayName, "days", len(daily))
	return Lookup{Snapshot: snapshot, Forecast: daily}, nil
}

func pickError(conditionsE, forecastE error) error {
	for _, err := range []error{conditionsE, forecastE} {
		if err != nil && KindOf(err) == KindTransport {
			return asError(err)
		}
	}
	if conditionsE != nil {
		return asError(conditionsE)
	}
	if forecastE != nil {
		return asError(forecastE)
	}
	return nil
}

// asError normalizes foreign errors into *Error so callers always see a kind.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return TransportError(err)
}

func logFailure(reqID, location string, err error) {
	var e *Error
	errors.As(err, &e)
	switch e.Kind {
	case KindTransport:
		logging.Error("lookup transport failure", "request", reqID, "location", location, "err", e.Err)
	default:
		logging.Warn("lookup rejected by provider", "request", reqID, "location", location, "message", e.Message)
	}
}
