package engine

import "github.com/playperu/polis/internal/polis"

const (
	electionInterval = 5
	corruptionChance = 0.1
)

// rebellionChance grows as a tyranny's citizens grow unhappy.
func rebellionChance(happiness int) float64 {
	return 0.05 + 0.01*float64(100-happiness)/10
}

// processGovernment raises the recurring event of the player's government.
// Aristocracy, Timocracy and ConstitutionalMonarchy only shape income.
func (e *Engine) processGovernment(g *polis.GameState) {
	switch g.PlayerCityState.Government {
	case polis.Democracy:
		if g.Turn%electionInterval != 0 {
			return
		}
		ev := g.NewEvent(polis.EventPolitical, polis.SeverityNeutral, "Democratic Elections",
			"It is time for elections in your democracy. The citizens are voting on new policies.")
		ev.Choices = []polis.Choice{
			{Text: "Support economic policies", Effects: polis.Effects{polis.Gold: 100, polis.Happiness: 5}},
			{Text: "Support military policies", Effects: polis.Effects{polis.Military: 50, polis.Happiness: -5}},
			{Text: "Support cultural policies", Effects: polis.Effects{polis.Happiness: 15, polis.Gold: -50}},
		}
		g.Prepend(ev)

	case polis.Oligarchy:
		if !e.chance(corruptionChance) {
			return
		}
		ev := g.NewEvent(polis.EventPolitical, polis.SeverityWarning, "Corruption Scandal",
			"A corruption scandal has been uncovered among the ruling elite.")
		ev.Choices = []polis.Choice{
			{Text: "Cover it up", Effects: polis.Effects{polis.Gold: -100, polis.Happiness: -10}},
			{Text: "Prosecute the corrupt officials", Effects: polis.Effects{polis.Gold: -50, polis.Happiness: 5}},
		}
		g.Prepend(ev)

	case polis.Tyranny:
		if !e.chance(rebellionChance(g.PlayerCityState.Resources.Happiness)) {
			return
		}
		ev := g.NewEvent(polis.EventPolitical, polis.SeverityDanger, "Rebellion Attempt",
			"A group of citizens has attempted to overthrow your tyrannical rule.")
		ev.Choices = []polis.Choice{
			{Text: "Crush the rebellion with force", Effects: polis.Effects{polis.Military: -50, polis.Happiness: -15}},
			{Text: "Appease the people with concessions", Effects: polis.Effects{polis.Gold: -200, polis.Happiness: 10}},
		}
		g.Prepend(ev)
	}
}
