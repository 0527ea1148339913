package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/weather"
)

func init() {
	logging.Discard()
}

type fakeFetcher struct {
	queries []weather.Query
	err     error
}

func (f *fakeFetcher) Lookup(ctx context.Context, q weather.Query) (weather.Lookup, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return weather.Lookup{}, f.err
	}
	return weather.Lookup{
		Snapshot: weather.WeatherSnapshot{
			DisplayName:          "Paris, FR",
			Temperature:          21.4,
			Humidity:             56,
			WindSpeed:            4.1,
			ConditionMain:        "Clear",
			ConditionDescription: "clear sky",
		},
	}, nil
}

func typeText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, r := range text {
		var next tea.Model
		next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m, cmd
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// settle feeds a lookup result back into the model the way the runtime would.
func settle(t *testing.T, m Model, f *fakeFetcher) Model {
	t.Helper()
	gen := m.session.Generation
	q := weather.Query{LocationText: strings.TrimSpace(m.session.PendingText), Unit: m.session.Unit}
	lookup, err := f.Lookup(context.Background(), q)
	next, _ := m.Update(lookupDoneMsg{generation: gen, lookup: lookup, err: err})
	return next.(Model)
}

func TestTypingArmsDebounce(t *testing.T) {
	m := New(&fakeFetcher{}, weather.UnitMetric, 0)

	m, cmd := typeText(t, m, "Par")
	if m.session.PendingText != "Par" {
		t.Errorf("expected pending text Par, got %q", m.session.PendingText)
	}
	if cmd == nil {
		t.Fatal("expected a debounce command")
	}
	if m.session.DebounceSeq != 3 {
		t.Errorf("expected debounce seq 3, got %d", m.session.DebounceSeq)
	}
}

func TestEnterSearchesAndRenders(t *testing.T) {
	f := &fakeFetcher{}
	m := New(f, weather.UnitMetric, 0)

	m, _ = typeText(t, m, "Paris")
	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a lookup command")
	}
	if !m.session.State.Loading {
		t.Fatal("expected loading after enter")
	}

	// Keystrokes are ignored while loading.
	m, _ = typeText(t, m, "x")
	if m.session.PendingText != "Paris" {
		t.Errorf("input should be disabled while loading, got %q", m.session.PendingText)
	}

	m = settle(t, m, f)
	if m.session.State.Loading || m.session.State.Snapshot == nil {
		t.Fatalf("expected committed result, got %+v", m.session.State)
	}

	out := m.View()
	for _, want := range []string{"Paris, FR", "21°C", "Clear Sky", "56%", "4 m/s"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterWithBlankInputShowsValidationError(t *testing.T) {
	f := &fakeFetcher{}
	m := New(f, weather.UnitMetric, 0)

	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("expected no command for blank search")
	}
	if m.session.State.Error != weather.MsgEmptyLocation {
		t.Errorf("expected validation error, got %q", m.session.State.Error)
	}
	if !strings.Contains(m.View(), weather.MsgEmptyLocation) {
		t.Error("error banner not rendered")
	}
	if len(f.queries) != 0 {
		t.Errorf("expected no lookups, got %d", len(f.queries))
	}
}

func TestTabTogglesUnitAndRefetches(t *testing.T) {
	f := &fakeFetcher{}
	m := New(f, weather.UnitMetric, 0)

	m, cmd := press(m, tea.KeyTab)
	if m.session.Unit != weather.UnitImperial {
		t.Errorf("expected imperial, got %s", m.session.Unit)
	}
	if cmd != nil {
		t.Error("unit change before a search must not fetch")
	}

	m, _ = typeText(t, m, "Paris")
	m, _ = press(m, tea.KeyEnter)
	m = settle(t, m, f)

	m, cmd = press(m, tea.KeyTab)
	if cmd == nil || !m.session.State.Loading {
		t.Fatal("expected refetch after unit change")
	}
	m = settle(t, m, f)
	if !strings.Contains(m.View(), "21°C") {
		t.Error("expected metric rendering after toggling back")
	}
}

func TestStaleDebounceTickIgnored(t *testing.T) {
	f := &fakeFetcher{}
	m := New(f, weather.UnitMetric, 0)

	m, _ = typeText(t, m, "Paris")
	m, _ = press(m, tea.KeyEnter)
	m = settle(t, m, f)

	next, _ := m.Update(debounceMsg{seq: 1})
	m = next.(Model)
	if m.session.State.Snapshot == nil {
		t.Error("stale debounce tick cleared results")
	}
}

func TestProviderErrorRendered(t *testing.T) {
	f := &fakeFetcher{err: weather.ProviderError("city not found", weather.MsgConditionsNotFound)}
	m := New(f, weather.UnitMetric, 0)

	m, _ = typeText(t, m, "Atlantis")
	m, _ = press(m, tea.KeyEnter)
	m = settle(t, m, f)

	out := m.View()
	if !strings.Contains(out, "city not found") {
		t.Error("expected provider message in view")
	}
	if m.session.State.Snapshot != nil {
		t.Error("expected no snapshot on failure")
	}
}
