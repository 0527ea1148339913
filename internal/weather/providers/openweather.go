package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/weather"
)

// DefaultOpenWeatherBaseURL is the root of the OpenWeatherMap 2.5 API.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherConfig configures an OpenWeatherProvider.
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string
	// RPS and Burst configure the outbound rate limiter; RPS <= 0 disables it.
	RPS   float64
	Burst int
}

// OpenWeatherProvider implements weather.Client for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig

	// One breaker per endpoint so the paired calls never contend for the
	// half-open slot.
	currentCircuit  *gobreaker.CircuitBreaker
	forecastCircuit *gobreaker.CircuitBreaker
}

var _ weather.Client = (*OpenWeatherProvider)(nil)

func NewOpenWeatherProvider(client *http.Client, cfg OpenWeatherConfig) *OpenWeatherProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}

	p := &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Limiter: NewLimiter(cfg.RPS, cfg.Burst),
		},
	}
	p.currentCircuit = newCircuitBreaker(p.Name() + "/weather")
	p.forecastCircuit = newCircuitBreaker(p.Name() + "/forecast")
	return p
}

// Name identifies the provider in logs and breaker names.
func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owmWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmMain struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

type currentPayload struct {
	envelope
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main    owmMain      `json:"main"`
	Weather []owmWeather `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastPayload struct {
	envelope
	List []struct {
		DtTxt   string       `json:"dt_txt"`
		Main    owmMain      `json:"main"`
		Weather []owmWeather `json:"weather"`
	} `json:"list"`
}

// FetchConditions retrieves current conditions. Success is a numeric cod of 200.
func (p *OpenWeatherProvider) FetchConditions(ctx context.Context, location string, unit weather.Unit) (weather.WeatherSnapshot, error) {
	body, err := fetchBody(ctx, p.httpCfg, p.currentCircuit, p.requestBuilder("weather", location, unit))
	if err != nil {
		return weather.WeatherSnapshot{}, weather.TransportError(fmt.Errorf("openweather current: %w", err))
	}

	var payload currentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.WeatherSnapshot{}, weather.TransportError(fmt.Errorf("openweather current: decode: %w", err))
	}

	if !codEquals(payload.Cod, float64(200)) {
		logging.WithPrefix(p.Name()).Debug("current conditions rejected", "location", location, "cod", string(payload.Cod))
		return weather.WeatherSnapshot{}, weather.ProviderError(messageText(payload.Message), weather.MsgConditionsNotFound)
	}

	snap := weather.WeatherSnapshot{
		DisplayName: displayName(payload.Name, payload.Sys.Country),
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}
	if len(payload.Weather) > 0 {
		snap.ConditionMain = payload.Weather[0].Main
		snap.ConditionDescription = payload.Weather[0].Description
		snap.IconID = payload.Weather[0].Icon
	}
	return snap, nil
}

// FetchForecastRaw retrieves the 5-day / 3-hour forecast. Success is the
// string cod "200".
func (p *OpenWeatherProvider) FetchForecastRaw(ctx context.Context, location string, unit weather.Unit) ([]weather.RawForecastEntry, error) {
	body, err := fetchBody(ctx, p.httpCfg, p.forecastCircuit, p.requestBuilder("forecast", location, unit))
	if err != nil {
		return nil, weather.TransportError(fmt.Errorf("openweather forecast: %w", err))
	}

	var payload forecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, weather.TransportError(fmt.Errorf("openweather forecast: decode: %w", err))
	}

	if !codEquals(payload.Cod, "200") {
		logging.WithPrefix(p.Name()).Debug("forecast rejected", "location", location, "cod", string(payload.Cod))
		return nil, weather.ProviderError(messageText(payload.Message), weather.MsgForecastNotFound)
	}

	entries := make([]weather.RawForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		e := weather.RawForecastEntry{
			DtTxt:       item.DtTxt,
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
		}
		if len(item.Weather) > 0 {
			e.ConditionMain = item.Weather[0].Main
			e.ConditionDescription = item.Weather[0].Description
			e.IconID = item.Weather[0].Icon
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (p *OpenWeatherProvider) requestBuilder(endpoint, location string, unit weather.Unit) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", location)
		values.Set("appid", p.apiKey)
		values.Set("units", string(unit))

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}
}

func displayName(name, country string) string {
	if country == "" {
		return name
	}
	return name + ", " + country
}
