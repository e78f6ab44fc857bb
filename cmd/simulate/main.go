// Command simulate plays a game headless for a number of turns and prints
// its history. Open events are resolved with their first choice.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/playperu/polis/internal/engine"
	"github.com/playperu/polis/internal/events"
	"github.com/playperu/polis/internal/polis"
)

type options struct {
	turns      int
	seed       uint64
	city       polis.CityName
	government polis.Government
	asJSON     bool
	verbose    bool
}

func main() {
	var (
		opts      options
		city, gov string
	)
	flag.IntVar(&opts.turns, "turns", 20, "number of turns to play")
	flag.Uint64Var(&opts.seed, "seed", 1, "random seed (0 picks one from the clock)")
	flag.StringVar(&city, "city", string(polis.Athens), "player city-state")
	flag.StringVar(&gov, "government", string(polis.Democracy), "starting government")
	flag.BoolVar(&opts.asJSON, "json", false, "print the final game state as JSON instead of the history")
	flag.BoolVar(&opts.verbose, "v", false, "log each turn to stderr")
	flag.Parse()
	opts.city, opts.government = polis.CityName(city), polis.Government(gov)

	if err := run(context.Background(), opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(_ context.Context, opts options, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	g, err := simulate(opts, logger)
	if err != nil {
		return err
	}
	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}
	_, err = io.WriteString(stdout, polis.FormatHistory(g))
	return err
}

func simulate(opts options, logger *slog.Logger) (*polis.GameState, error) {
	if opts.turns < 0 {
		return nil, fmt.Errorf("turns must not be negative, got %d", opts.turns)
	}
	catalog, err := events.Builtin()
	if err != nil {
		return nil, fmt.Errorf("loading event catalog: %w", err)
	}

	rng := polis.NewRand(opts.seed)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g, err := polis.NewGame(opts.city, opts.government, 0, rng, start)
	if err != nil {
		return nil, err
	}

	// The clock advances a day per turn so runs with one seed are identical.
	turn := 0
	eng := engine.New(catalog, rng,
		engine.WithLogger(logger),
		engine.WithClock(func() time.Time { return start.AddDate(0, 0, turn) }),
	)

	for turn = 1; turn <= opts.turns; turn++ {
		for _, ev := range g.Events {
			if ev.Open() {
				g = polis.ApplyChoice(g, ev.ID, 0)
			}
		}
		g = eng.EndTurn(g)

		res := g.PlayerCityState.Resources
		logger.Info("turn",
			"turn", g.Turn,
			"year", g.Year,
			"gold", res.Gold,
			"food", res.Food,
			"population", res.Population,
			"military", res.Military,
			"happiness", res.Happiness,
		)
	}
	return g, nil
}
