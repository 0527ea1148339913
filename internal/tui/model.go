// Package tui is the terminal front end of the widget.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/search"
	"github.com/i474232898/weather-widget/internal/view"
	"github.com/i474232898/weather-widget/internal/weather"
)

// debounceMsg is delivered when the debounce tick numbered seq fires.
type debounceMsg struct{ seq uint64 }

// lookupDoneMsg carries a settled fetch back into the event loop.
type lookupDoneMsg struct {
	generation uint64
	lookup     weather.Lookup
	err        error
}

// Model is the root Bubble Tea model.
type Model struct {
	session  search.Session
	fetcher  search.Fetcher
	debounce time.Duration

	input   textinput.Model
	spinner spinner.Model
	width   int
}

// New creates the widget model.
func New(fetcher search.Fetcher, unit weather.Unit, debounce time.Duration) Model {
	if debounce <= 0 {
		debounce = search.DefaultDebounce
	}

	ti := textinput.New()
	ti.Placeholder = "Enter city"
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		session:  search.NewSession(unit),
		fetcher:  fetcher,
		debounce: debounce,
		input:    ti,
		spinner:  sp,
		width:    80,
	}
}

// Session returns the current session. Used by tests and callers embedding
// the model.
func (m Model) Session() search.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, min(40, msg.Width-8))
		return m, nil

	case debounceMsg:
		return m.dispatch(search.DebounceElapsed{Seq: msg.seq})

	case lookupDoneMsg:
		if msg.generation != m.session.Generation {
			logging.Debug("discarding stale lookup", "generation", msg.generation, "latest", m.session.Generation)
		}
		return m.dispatch(search.FetchSettled{Generation: msg.generation, Lookup: msg.lookup, Err: msg.err})

	case spinner.TickMsg:
		if !m.session.State.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	}

	// Input and unit controls are disabled while a fetch is in flight.
	if m.session.State.Loading {
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m.dispatch(search.SearchRequested{})
	case "tab":
		next := weather.UnitImperial
		if m.session.Unit == weather.UnitImperial {
			next = weather.UnitMetric
		}
		return m.dispatch(search.UnitChanged{Unit: next})
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	next, dcmd := m.dispatch(search.TextChanged{Text: m.input.Value()})
	return next, tea.Batch(cmd, dcmd)
}

// dispatch runs the reducer and turns its effect into a command.
func (m Model) dispatch(ev search.Event) (Model, tea.Cmd) {
	next, eff := search.Reduce(m.session, ev)
	m.session = next

	switch eff := eff.(type) {
	case search.ArmDebounce:
		seq := eff.Seq
		return m, tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceMsg{seq: seq}
		})
	case search.StartFetch:
		return m, tea.Batch(m.spinner.Tick, m.lookupCmd(eff))
	}
	return m, nil
}

func (m Model) lookupCmd(f search.StartFetch) tea.Cmd {
	fetcher := m.fetcher
	return func() tea.Msg {
		lookup, err := fetcher.Lookup(context.Background(), f.Query)
		return lookupDoneMsg{generation: f.Generation, lookup: lookup, err: err}
	}
}

func (m Model) View() string {
	st := m.session.State
	var b strings.Builder

	b.WriteString(titleStyle.Render("Weather"))
	b.WriteString("\n")

	field := promptStyle.Render("> ") + m.input.View()
	if st.Loading {
		field = promptStyle.Render("> ") + m.spinner.View() + " " + dimStyle.Render(m.input.Value())
	}
	b.WriteString(inputBoxStyle.Render(field))
	b.WriteString("\n")
	b.WriteString(m.unitToggle())
	b.WriteString("\n")

	if st.Error != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(st.Error))
		b.WriteString("\n")
	}

	if st.Snapshot != nil && !st.Loading {
		b.WriteString("\n")
		b.WriteString(m.currentView(*st.Snapshot))
		b.WriteString("\n")
	}

	if len(st.Forecast) > 0 && !st.Loading {
		b.WriteString("\n")
		b.WriteString(m.forecastView(st.Forecast))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: search • tab: °C/°F • esc: quit"))

	condition := weather.ConditionUnknown
	if st.Snapshot != nil {
		condition = st.Snapshot.Condition()
	}
	return frameStyle(condition).Render(b.String())
}

func (m Model) unitToggle() string {
	c, f := unitInactiveStyle, unitInactiveStyle
	if m.session.Unit == weather.UnitImperial {
		f = unitActiveStyle
	} else {
		c = unitActiveStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, c.Render("°C"), " ", f.Render("°F"))
}

func (m Model) currentView(s weather.WeatherSnapshot) string {
	unit := m.session.Unit
	lines := []string{
		cityStyle.Render(s.DisplayName),
		tempStyle.Render(view.Temperature(s.Temperature, unit)),
		view.Capitalize(s.ConditionDescription),
		dimStyle.Render("Humidity: " + view.Humidity(s.Humidity) + "   Wind: " + view.WindSpeed(s.WindSpeed, unit)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) forecastView(days []weather.ForecastEntry) string {
	cards := make([]string, 0, len(days))
	for _, d := range days {
		cards = append(cards, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			dimStyle.Render(view.DayLabel(d.Timestamp)),
			tempStyle.Render(view.Temperature(d.Temperature, m.session.Unit)),
			view.Capitalize(d.ConditionDescription),
		)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// Run starts the program and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
