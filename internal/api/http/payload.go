package httpapi

import (
	"github.com/i474232898/weather-widget/internal/search"
	"github.com/i474232898/weather-widget/internal/view"
	"github.com/i474232898/weather-widget/internal/weather"
)

const iconSize = "2x"

type snapshotPayload struct {
	weather.WeatherSnapshot
	IconURL string `json:"iconUrl"`
}

type forecastPayload struct {
	weather.ForecastEntry
	IconURL string `json:"iconUrl"`
}

// statePayload is search.State with icon image URLs resolved.
type statePayload struct {
	Loading     bool              `json:"loading"`
	Error       string            `json:"error,omitempty"`
	Snapshot    *snapshotPayload  `json:"snapshot"`
	Forecast    []forecastPayload `json:"forecast"`
	HasSearched bool              `json:"hasSearched"`
}

type viewPayload struct {
	State       statePayload `json:"state"`
	PendingText string       `json:"pendingText"`
	Unit        weather.Unit `json:"unit"`
}

func newStatePayload(st search.State) statePayload {
	out := statePayload{
		Loading:     st.Loading,
		Error:       st.Error,
		Forecast:    make([]forecastPayload, 0, len(st.Forecast)),
		HasSearched: st.HasSearched,
	}
	if st.Snapshot != nil {
		out.Snapshot = &snapshotPayload{
			WeatherSnapshot: *st.Snapshot,
			IconURL:         view.IconURL(st.Snapshot.IconID, iconSize),
		}
	}
	for _, e := range st.Forecast {
		out.Forecast = append(out.Forecast, forecastPayload{
			ForecastEntry: e,
			IconURL:       view.IconURL(e.IconID, iconSize),
		})
	}
	return out
}

func newViewPayload(v search.View) viewPayload {
	return viewPayload{
		State:       newStatePayload(v.State),
		PendingText: v.PendingText,
		Unit:        v.Unit,
	}
}
