// Package polistest provides deterministic fixtures for game tests.
package polistest

import (
	"time"

	"github.com/playperu/polis/internal/polis"
)

// Rand replays scripted values. Float64 and IntN read from separate queues;
// once a queue runs dry Float64 returns Default and IntN returns 0.
type Rand struct {
	Floats  []float64
	Ints    []int
	Default float64
}

// Never returns a source under which no probabilistic branch fires.
func Never() *Rand { return &Rand{Default: 0.999} }

// Always returns a source under which every probabilistic branch fires.
func Always() *Rand { return &Rand{Default: 0} }

func (r *Rand) Float64() float64 {
	if len(r.Floats) == 0 {
		return r.Default
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

func (r *Rand) IntN(n int) int {
	if len(r.Ints) == 0 {
		return 0
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	return v % n
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Game builds a fixed snapshot: the player rules Athens as a Democracy with
// the starting ledger, the other three cities are Oligarchies, every
// relationship is Neutral and the event log is empty.
func Game() *polis.GameState {
	g := &polis.GameState{
		ID:     "game-1",
		UserID: 1,
		Turn:   1,
		Year:   polis.StartingYear,
		PlayerCityState: polis.CityState{
			ID:            "city-athens",
			Name:          polis.Athens,
			Government:    polis.Democracy,
			Resources:     polis.StartingResources,
			Location:      polis.Location{X: 400, Y: 300},
			IsPlayerOwned: true,
		},
		Relationships: []polis.Relationship{},
		Policies:      []polis.Policy{},
		Events:        []polis.Event{},
		CreatedAt:     epoch,
		UpdatedAt:     epoch,
	}
	for _, name := range []polis.CityName{polis.Sparta, polis.Thebes, polis.Corinth} {
		g.OtherCityStates = append(g.OtherCityStates, polis.CityState{
			ID:         "city-" + string(name),
			Name:       name,
			Government: polis.Oligarchy,
			Resources: polis.Resources{
				Gold:       800,
				Food:       800,
				Population: 4000,
				Military:   400,
				Happiness:  60,
			},
		})
		g.Relationships = append(g.Relationships, polis.Relationship{
			CityState: name,
			Status:    polis.Neutral,
			Treaties:  []string{},
		})
	}
	return g
}
