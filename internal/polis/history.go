package polis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// FormatHistory renders the event log as a plain-text chronicle, grouped by
// year with the latest entries first.
func FormatHistory(g *GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "HISTORY OF %s\n\n", strings.ToUpper(string(g.PlayerCityState.Name)))

	byYear := make(map[int][]Event)
	for _, e := range g.Events {
		byYear[e.Year] = append(byYear[e.Year], e)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)
	slices.Reverse(years)

	for _, y := range years {
		fmt.Fprintf(&b, "--- %d BCE ---\n\n", y)
		events := byYear[y]
		slices.SortStableFunc(events, func(a, b Event) int { return cmp.Compare(b.Turn, a.Turn) })
		for _, e := range events {
			fmt.Fprintf(&b, "[Turn %d] %s\n%s\n\n", e.Turn, e.Title, e.Description)
		}
	}
	return b.String()
}
