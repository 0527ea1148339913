// Package search holds the widget's search state machine: a pure reducer over
// Session and a runtime that executes its effects.
package search

import (
	"slices"
	"strings"

	"github.com/i474232898/weather-widget/internal/weather"
)

// State is what the rendering layer displays.
//
// Loading implies Error == "" and Snapshot == nil. After a fetch settles,
// either Error is set, or Snapshot and Forecast are both populated.
type State struct {
	Loading     bool                     `json:"loading"`
	Error       string                   `json:"error,omitempty"`
	Snapshot    *weather.WeatherSnapshot `json:"snapshot"`
	Forecast    []weather.ForecastEntry  `json:"forecast"`
	HasSearched bool                     `json:"hasSearched"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	if s.Snapshot != nil {
		snap := *s.Snapshot
		out.Snapshot = &snap
	}
	out.Forecast = slices.Clone(s.Forecast)
	if out.Forecast == nil {
		out.Forecast = []weather.ForecastEntry{}
	}
	return out
}

// Session is the orchestrator's complete state: the displayed State plus the
// pending input, the unit preference and the two supersession counters.
type Session struct {
	State       State        `json:"state"`
	PendingText string       `json:"pendingText"`
	Unit        weather.Unit `json:"unit"`

	// DebounceSeq identifies the live debounce timer; older firings are ignored.
	DebounceSeq uint64 `json:"-"`
	// Generation identifies the latest dispatched fetch; older results are dropped.
	Generation uint64 `json:"-"`
}

// NewSession returns an idle session with the given unit preference.
func NewSession(unit weather.Unit) Session {
	if unit == "" {
		unit = weather.UnitMetric
	}
	return Session{State: emptyState(false), Unit: unit}
}

// Event is a trigger fed to Reduce.
type Event interface{ event() }

// TextChanged records a keystroke.
type TextChanged struct{ Text string }

// DebounceElapsed is delivered when the debounce timer numbered Seq fires.
type DebounceElapsed struct{ Seq uint64 }

// SearchRequested is an explicit search. A nil Text searches the pending text.
type SearchRequested struct{ Text *string }

// UnitChanged selects a new unit system.
type UnitChanged struct{ Unit weather.Unit }

// FetchSettled carries the outcome of the fetch numbered Generation.
type FetchSettled struct {
	Generation uint64
	Lookup     weather.Lookup
	Err        error
}

func (TextChanged) event()     {}
func (DebounceElapsed) event() {}
func (SearchRequested) event() {}
func (UnitChanged) event()     {}
func (FetchSettled) event()    {}

// Effect is work Reduce asks its runtime to perform. A nil Effect means none.
type Effect interface{ effect() }

// ArmDebounce starts the debounce timer, replacing any pending one.
type ArmDebounce struct{ Seq uint64 }

// StartFetch runs the paired lookup and reports back with FetchSettled.
type StartFetch struct {
	Generation uint64
	Query      weather.Query
}

func (ArmDebounce) effect() {}
func (StartFetch) effect()  {}

// Reduce applies ev to s and returns the next session and the effect to run.
func Reduce(s Session, ev Event) (Session, Effect) {
	switch ev := ev.(type) {
	case TextChanged:
		s.PendingText = ev.Text
		s.DebounceSeq++
		return s, ArmDebounce{Seq: s.DebounceSeq}

	case DebounceElapsed:
		if ev.Seq != s.DebounceSeq {
			return s, nil
		}
		// Soft clear. In-flight results are for text the user is editing away from.
		s.Generation++
		s.State = emptyState(false)
		return s, nil

	case SearchRequested:
		if ev.Text != nil {
			s.PendingText = *ev.Text
		}
		s.DebounceSeq++
		if strings.TrimSpace(s.PendingText) == "" {
			s.Generation++
			s.State = emptyState(false)
			s.State.Error = weather.MsgEmptyLocation
			return s, nil
		}
		return startFetch(s)

	case UnitChanged:
		if _, err := weather.ParseUnit(string(ev.Unit)); err != nil || ev.Unit == s.Unit {
			return s, nil
		}
		s.Unit = ev.Unit
		if s.State.HasSearched && strings.TrimSpace(s.PendingText) != "" {
			return startFetch(s)
		}
		return s, nil

	case FetchSettled:
		if ev.Generation != s.Generation {
			return s, nil
		}
		next := emptyState(true)
		if ev.Err != nil {
			next.Error = weather.UserMessage(ev.Err)
		} else {
			snap := ev.Lookup.Snapshot
			next.Snapshot = &snap
			if len(ev.Lookup.Forecast) > 0 {
				next.Forecast = slices.Clone(ev.Lookup.Forecast)
			}
		}
		s.State = next
		return s, nil
	}
	return s, nil
}

func startFetch(s Session) (Session, Effect) {
	s.Generation++
	s.State = emptyState(true)
	s.State.Loading = true
	return s, StartFetch{
		Generation: s.Generation,
		Query: weather.Query{
			LocationText: strings.TrimSpace(s.PendingText),
			Unit:         s.Unit,
		},
	}
}

func emptyState(hasSearched bool) State {
	return State{Forecast: []weather.ForecastEntry{}, HasSearched: hasSearched}
}
