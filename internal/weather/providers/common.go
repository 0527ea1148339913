package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-widget/internal/logging"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 1 << 20

// HTTPClientConfig bundles the HTTP client and the outbound request guards.
type HTTPClientConfig struct {
	Client *http.Client
	// Limiter throttles outbound calls; nil disables throttling.
	Limiter *rate.Limiter
}

var errNoHTTPClient = errors.New("http client not configured")

// NewLimiter returns a limiter allowing rps requests per second, or nil when
// rps is not positive.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// newCircuitBreaker returns a breaker that tracks provider health without
// ever turning a call away. Its open state expires before the next call, so a
// trigger after a trip goes out as the half-open probe.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     time.Nanosecond,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// fetchBody performs one GET through the limiter and circuit breaker and
// returns the response body whatever the HTTP status: the provider reports
// lookup failures inside the payload. There are no retries; every error
// returned here is a transport failure.
func fetchBody(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) ([]byte, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	do := func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr != nil {
			return nil, fmt.Errorf("failed to read response body: %w", readErr)
		}
		return body, nil
	}

	result, err := cb.Execute(do)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		// Another call holds the half-open slot. Send this one uncounted.
		logging.Debug("circuit breaker busy; sending uncounted", "breaker", cb.Name(), "state", cb.State().String())
		result, err = do()
	}
	if err != nil {
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}

// envelope holds the status fields shared by every provider payload. Both are
// kept raw: cod is a number or a string depending on endpoint and outcome, and
// message is a number on forecast successes.
type envelope struct {
	Cod     json.RawMessage `json:"cod"`
	Message json.RawMessage `json:"message"`
}

// codEquals reports whether raw decodes to exactly want, type included.
func codEquals(raw json.RawMessage, want interface{}) bool {
	if len(raw) == 0 {
		return false
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v == want
}

// messageText returns the message field if it is a JSON string.
func messageText(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
