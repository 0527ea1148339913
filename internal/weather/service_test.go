package weather

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/i474232898/weather-widget/internal/logging"
)

func init() {
	logging.Discard()
}

type fakeClient struct {
	calls       atomic.Int32
	snapshot    WeatherSnapshot
	forecast    []RawForecastEntry
	conditionsE error
	forecastE   error
}

func (f *fakeClient) FetchConditions(ctx context.Context, location string, unit Unit) (WeatherSnapshot, error) {
	f.calls.Add(1)
	return f.snapshot, f.conditionsE
}

func (f *fakeClient) FetchForecastRaw(ctx context.Context, location string, unit Unit) ([]RawForecastEntry, error) {
	f.calls.Add(1)
	return f.forecast, f.forecastE
}

func okClient() *fakeClient {
	return &fakeClient{
		snapshot: WeatherSnapshot{DisplayName: "Paris, FR", Temperature: 21.4, ConditionMain: "Clear"},
		forecast: []RawForecastEntry{
			raw("2024-01-01 09:00:00", 1),
			raw("2024-01-01 12:00:00", 2),
			raw("2024-01-02 12:00:00", 3),
		},
	}
}

func TestLookupSuccess(t *testing.T) {
	client := okClient()
	svc := NewService(client)

	got, err := svc.Lookup(context.Background(), Query{LocationText: "  Paris ", Unit: UnitMetric})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Snapshot.DisplayName != "Paris, FR" {
		t.Errorf("expected snapshot for Paris, got %+v", got.Snapshot)
	}
	if len(got.Forecast) != 2 {
		t.Errorf("expected 2 daily entries, got %d", len(got.Forecast))
	}
	if n := client.calls.Load(); n != 2 {
		t.Errorf("expected 2 provider calls, got %d", n)
	}
}

func TestLookupBlankLocationSkipsNetwork(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		client := okClient()
		_, err := NewService(client).Lookup(context.Background(), Query{LocationText: text, Unit: UnitMetric})

		if KindOf(err) != KindValidation {
			t.Errorf("%q: expected validation error, got %v", text, err)
		}
		if UserMessage(err) != MsgEmptyLocation {
			t.Errorf("%q: expected %q, got %q", text, MsgEmptyLocation, UserMessage(err))
		}
		if n := client.calls.Load(); n != 0 {
			t.Errorf("%q: expected no provider calls, got %d", text, n)
		}
	}
}

func TestLookupAllOrNothing(t *testing.T) {
	tests := []struct {
		name        string
		conditionsE error
		forecastE   error
		wantMsg     string
		wantKind    Kind
	}{
		{
			name:        "conditions fail",
			conditionsE: ProviderError("city not found", MsgConditionsNotFound),
			wantMsg:     "city not found",
			wantKind:    KindProvider,
		},
		{
			name:      "forecast fails",
			forecastE: ProviderError("", MsgForecastNotFound),
			wantMsg:   MsgForecastNotFound,
			wantKind:  KindProvider,
		},
		{
			name:        "both provider failures report conditions first",
			conditionsE: ProviderError("first", MsgConditionsNotFound),
			forecastE:   ProviderError("second", MsgForecastNotFound),
			wantMsg:     "first",
			wantKind:    KindProvider,
		},
		{
			name:        "transport failure wins over provider failure",
			conditionsE: ProviderError("city not found", MsgConditionsNotFound),
			forecastE:   TransportError(errors.New("connection refused")),
			wantMsg:     MsgTransport,
			wantKind:    KindTransport,
		},
		{
			name:        "unclassified error is treated as transport",
			conditionsE: errors.New("dial tcp: i/o timeout"),
			wantMsg:     MsgTransport,
			wantKind:    KindTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := okClient()
			client.conditionsE = tt.conditionsE
			client.forecastE = tt.forecastE

			got, err := NewService(client).Lookup(context.Background(), Query{LocationText: "Paris", Unit: UnitMetric})
			if err == nil {
				t.Fatal("expected error")
			}
			if got.Snapshot != (WeatherSnapshot{}) || got.Forecast != nil {
				t.Errorf("expected no data on failure, got %+v", got)
			}
			if msg := UserMessage(err); msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
			}
			if k := KindOf(err); k != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, k)
			}
			if n := client.calls.Load(); n != 2 {
				t.Errorf("expected both calls to run, got %d", n)
			}
		})
	}
}

func TestTransportErrorHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:443: connect: connection refused")
	err := TransportError(cause)

	if UserMessage(err) != MsgTransport {
		t.Errorf("expected fixed transport message, got %q", UserMessage(err))
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to stay reachable through errors.Is")
	}
}
