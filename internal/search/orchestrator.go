package search

import (
	"context"
	"sync"
	"time"

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/weather"
)

// DefaultDebounce is the quiet period after a keystroke before stale results
// are cleared.
const DefaultDebounce = 300 * time.Millisecond

// Fetcher performs the paired lookup. *weather.Service satisfies it.
type Fetcher interface {
	Lookup(ctx context.Context, q weather.Query) (weather.Lookup, error)
}

// Options configures an Orchestrator.
type Options struct {
	Debounce time.Duration
	Unit     weather.Unit
	Clock    Clock
}

// View is a read-only copy of the session for the rendering layer.
type View struct {
	State       State        `json:"state"`
	PendingText string       `json:"pendingText"`
	Unit        weather.Unit `json:"unit"`
}

// Orchestrator runs the reducer for one widget. Triggers are serialized under
// a mutex; network calls run outside it and are never cancelled once started.
type Orchestrator struct {
	fetcher  Fetcher
	clock    Clock
	debounce time.Duration

	mu      sync.Mutex
	session Session
	timer   Timer
}

// New creates an Orchestrator.
func New(fetcher Fetcher, opts Options) *Orchestrator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	return &Orchestrator{
		fetcher:  fetcher,
		clock:    opts.Clock,
		debounce: opts.Debounce,
		session:  NewSession(opts.Unit),
	}
}

// View returns a copy of the current session.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.viewLocked()
}

// TextChanged records a keystroke and re-arms the soft-clear debounce.
func (o *Orchestrator) TextChanged(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.applyLocked(TextChanged{Text: text})
}

// Search runs an explicit search and returns the session once the fetch has
// settled. A nil text searches the pending text.
func (o *Orchestrator) Search(ctx context.Context, text *string) View {
	o.mu.Lock()
	o.stopTimerLocked()
	fetch := o.applyLocked(SearchRequested{Text: text})
	o.mu.Unlock()

	return o.run(ctx, fetch)
}

// ChangeUnit stores the unit preference and refetches when a search is shown.
func (o *Orchestrator) ChangeUnit(ctx context.Context, unit weather.Unit) View {
	o.mu.Lock()
	fetch := o.applyLocked(UnitChanged{Unit: unit})
	o.mu.Unlock()

	return o.run(ctx, fetch)
}

// Close stops any pending debounce timer.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopTimerLocked()
}

// applyLocked reduces ev and executes timer effects. A fetch effect is
// returned for the caller to run after releasing the lock.
func (o *Orchestrator) applyLocked(ev Event) *StartFetch {
	next, eff := Reduce(o.session, ev)
	o.session = next

	switch eff := eff.(type) {
	case ArmDebounce:
		o.stopTimerLocked()
		seq := eff.Seq
		o.timer = o.clock.AfterFunc(o.debounce, func() { o.debounceElapsed(seq) })
	case StartFetch:
		return &eff
	}
	return nil
}

func (o *Orchestrator) debounceElapsed(seq uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.session.DebounceSeq {
		return
	}
	logging.Debug("debounce elapsed; clearing results", "text", o.session.PendingText)
	o.applyLocked(DebounceElapsed{Seq: seq})
	o.timer = nil
}

func (o *Orchestrator) run(ctx context.Context, fetch *StartFetch) View {
	if fetch == nil {
		return o.View()
	}

	lookup, err := o.fetcher.Lookup(context.WithoutCancel(ctx), fetch.Query)

	o.mu.Lock()
	defer o.mu.Unlock()
	if fetch.Generation != o.session.Generation {
		logging.Debug("discarding stale lookup", "generation", fetch.Generation, "latest", o.session.Generation)
	}
	o.applyLocked(FetchSettled{Generation: fetch.Generation, Lookup: lookup, Err: err})
	return o.viewLocked()
}

func (o *Orchestrator) stopTimerLocked() {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func (o *Orchestrator) viewLocked() View {
	return View{
		State:       o.session.State.Clone(),
		PendingText: o.session.PendingText,
		Unit:        o.session.Unit,
	}
}
