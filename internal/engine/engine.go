// Package engine advances a game by one turn: economy, diplomacy,
// government mechanics and war, followed by an optional random event.
package engine

import (
	"log/slog"
	"time"

	"github.com/playperu/polis/internal/events"
	"github.com/playperu/polis/internal/polis"
)

type Engine struct {
	catalog    *events.Catalog
	rng        polis.Rand
	log        *slog.Logger
	now        func() time.Time
	eventLimit int
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithEventLimit caps the event log after every turn. Zero keeps everything.
func WithEventLimit(n int) Option { return func(e *Engine) { e.eventLimit = n } }

func New(catalog *events.Catalog, rng polis.Rand, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		rng:     rng,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ProcessTurn returns the snapshot that follows g. The input is not modified.
func (e *Engine) ProcessTurn(g *polis.GameState) *polis.GameState {
	next := g.Clone()
	next.Turn++
	next.Year--
	next.UpdatedAt = e.now()

	e.updateResources(next)
	e.updateRelationships(next)
	e.processGovernment(next)
	e.processWars(next)

	res := next.PlayerCityState.Resources
	e.log.Debug("turn processed",
		"game_id", next.ID,
		"turn", next.Turn,
		"year", next.Year,
		"gold", res.Gold,
		"food", res.Food,
		"population", res.Population,
		"military", res.Military,
		"happiness", res.Happiness,
		"mood", res.Factors.Total(),
		"new_events", len(next.Events)-len(g.Events),
	)
	return next
}

// EndTurn processes the turn, draws a random event and trims the log.
func (e *Engine) EndTurn(g *polis.GameState) *polis.GameState {
	next := e.ProcessTurn(g)
	if ev := e.catalog.Generate(next, e.rng); ev != nil {
		next.Prepend(*ev)
		e.log.Debug("random event", "game_id", next.ID, "title", ev.Title, "choices", len(ev.Choices))
	}
	next.TrimEvents(e.eventLimit)
	return next
}

// Catalog exposes the event templates the engine draws from.
func (e *Engine) Catalog() *events.Catalog { return e.catalog }

// chance reports whether a draw falls under p.
func (e *Engine) chance(p float64) bool {
	return e.rng.Float64() < p
}
