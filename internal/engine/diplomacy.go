package engine

import (
	"fmt"

	"github.com/playperu/polis/internal/polis"
)

const (
	peaceOfferChance    = 0.1
	improveChance       = 0.1
	allianceOfferChance = 0.2
	battleChance        = 0.3

	// warFloor is the military strength below which a side cannot keep fighting.
	warFloor = 100
)

func (e *Engine) updateRelationships(g *polis.GameState) {
	for i := range g.Relationships {
		r := &g.Relationships[i]

		if r.Status == polis.War && e.chance(peaceOfferChance) {
			ev := g.NewEvent(polis.EventMilitary, polis.SeverityNeutral, "Peace Offer",
				fmt.Sprintf("%s has offered a peace treaty.", r.CityState))
			ev.Choices = []polis.Choice{
				{
					Text:    "Accept Peace",
					Effects: polis.Effects{polis.Happiness: 5},
					Stance:  &polis.Stance{CityState: r.CityState, Status: polis.Neutral},
				},
				{Text: "Reject Offer", Effects: polis.Effects{polis.Military: 50}},
			}
			g.Prepend(ev)
		}

		if !r.HasTreaty(polis.TradeTreaty) || r.Status == polis.Allied || r.Status == polis.War {
			continue
		}
		if !e.chance(improveChance) {
			continue
		}
		switch r.Status {
		case polis.Neutral:
			r.Status = polis.Friendly
			g.Prepend(g.NewEvent(polis.EventPolitical, polis.SeverityPositive, "Improved Relations",
				fmt.Sprintf("Relations with %s have improved to Friendly.", r.CityState)))
		case polis.Friendly:
			if !e.chance(allianceOfferChance) {
				continue
			}
			ev := g.NewEvent(polis.EventPolitical, polis.SeverityPositive, "Alliance Offer",
				fmt.Sprintf("%s has offered an alliance.", r.CityState))
			ev.Choices = []polis.Choice{
				{
					Text:    "Accept Alliance",
					Effects: polis.Effects{polis.Happiness: 10},
					Stance:  &polis.Stance{CityState: r.CityState, Status: polis.Allied},
				},
				{Text: "Decline Politely", Effects: polis.Effects{}},
			}
			g.Prepend(ev)
		}
	}
}

func (e *Engine) processWars(g *polis.GameState) {
	for i := range g.Relationships {
		r := &g.Relationships[i]
		if r.Status != polis.War {
			continue
		}
		enemy := g.City(r.CityState)
		if enemy == nil || !e.chance(battleChance) {
			continue
		}
		e.battle(g, r, enemy)
	}
}

// battle resolves one engagement between the player and enemy.
func (e *Engine) battle(g *polis.GameState, r *polis.Relationship, enemy *polis.CityState) {
	player := g.Player()
	foe := &enemy.Resources

	playerStrength, enemyStrength := player.Military, foe.Military
	playerEffective := float64(playerStrength) * (0.8 + e.rng.Float64()*0.4)
	enemyEffective := float64(enemyStrength) * (0.8 + e.rng.Float64()*0.4)

	if playerEffective > enemyEffective {
		enemyLosses := beatenLosses(enemyStrength, playerEffective, enemyEffective)
		playerLosses := playerStrength * 5 / 100
		player.Military -= playerLosses
		foe.Military -= enemyLosses

		captured := foe.Gold / 10
		player.Gold += captured
		foe.Gold -= captured

		g.Prepend(g.NewEvent(polis.EventMilitary, polis.SeverityPositive, "Victory in Battle",
			fmt.Sprintf("Your forces have defeated %s in battle. You lost %d troops but the enemy lost %d. You captured %d gold.",
				enemy.Name, playerLosses, enemyLosses, captured)))
	} else {
		playerLosses := beatenLosses(playerStrength, enemyEffective, playerEffective)
		enemyLosses := enemyStrength * 5 / 100
		player.Military -= playerLosses
		foe.Military -= enemyLosses

		lost := player.Gold * 5 / 100
		player.Gold -= lost

		g.Prepend(g.NewEvent(polis.EventMilitary, polis.SeverityDanger, "Defeat in Battle",
			fmt.Sprintf("Your forces have been defeated by %s in battle. You lost %d troops while the enemy lost %d. You lost %d gold.",
				enemy.Name, playerLosses, enemyLosses, lost)))
	}

	if player.Military < warFloor || foe.Military < warFloor {
		r.Status = polis.Hostile
		g.Prepend(g.NewEvent(polis.EventMilitary, polis.SeverityPositive, "War Ended",
			fmt.Sprintf("The war with %s has ended due to one side's inability to continue fighting.", enemy.Name)))
	}
	foe.ClampAI()
}

// beatenLosses is floor(strength * (0.1 + 0.1*ratio)), never more than strength.
func beatenLosses(strength int, winnerEffective, loserEffective float64) int {
	if strength <= 0 || loserEffective <= 0 {
		return max(strength, 0)
	}
	ratio := winnerEffective / loserEffective
	return min(strength, floor(float64(strength)*(0.1+ratio*0.1)))
}
