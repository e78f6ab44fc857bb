package engine

import (
	"math"

	"github.com/playperu/polis/internal/polis"
)

// modifiers are per-resource multipliers in percent, plus a flat happiness delta.
type modifiers struct {
	gold, food, population, military int
	happiness                        int
}

func baseModifiers() modifiers {
	return modifiers{gold: 100, food: 100, population: 100, military: 100}
}

func (m *modifiers) addCategory(c polis.PolicyCategory) {
	switch c {
	case polis.CategoryEconomic:
		m.gold += 10
		m.food += 5
	case polis.CategoryMilitary:
		m.military += 10
		m.happiness -= 5
	case polis.CategoryCultural:
		m.happiness += 10
		m.gold -= 5
	case polis.CategoryDiplomatic:
	}
}

func (m *modifiers) addGovernment(g polis.Government) {
	switch g {
	case polis.Democracy:
		m.gold -= 10
		m.military -= 10
		m.happiness += 10
	case polis.Oligarchy:
		m.gold += 20
		m.happiness -= 5
	case polis.Tyranny:
		m.military += 20
		m.happiness -= 10
	case polis.Aristocracy:
		m.gold += 15
		m.military += 10
		m.happiness -= 8
	case polis.Timocracy:
		m.gold += 10
		m.military += 25
		m.happiness -= 5
	case polis.ConstitutionalMonarchy:
		m.gold += 5
		m.military += 5
		m.happiness += 5
	}
}

// scale returns floor(base * pct / 100).
func scale(base, pct int) int {
	v := base * pct
	q := v / 100
	if v%100 != 0 && v < 0 {
		q--
	}
	return q
}

func stabilityBase(g polis.Government) int {
	switch g {
	case polis.Democracy:
		return 10
	case polis.ConstitutionalMonarchy:
		return 5
	case polis.Tyranny:
		return -10
	}
	return 0
}

func (e *Engine) updateResources(g *polis.GameState) {
	city := &g.PlayerCityState
	res := &city.Resources

	baseGold := res.Population / 100
	baseFood := res.Population / 50
	baseGrowth := res.Food / 100
	baseRecruits := res.Population / 200

	m := baseModifiers()
	for _, p := range g.Policies {
		if !p.Active {
			continue
		}
		res.Apply(p.Effects)
		m.addCategory(p.Category)
	}
	m.addGovernment(city.Government)

	trade := 0
	for _, r := range g.Relationships {
		if r.HasTreaty(polis.TradeTreaty) {
			trade += polis.TradeBonus
		}
	}

	goldIncome := scale(baseGold, m.gold) + trade
	res.Factors = happinessFactors(g, goldIncome)

	res.Gold += goldIncome
	res.Food += scale(baseFood, m.food)
	res.Population += scale(baseGrowth, m.population)
	res.Military += scale(baseRecruits, m.military)
	res.Happiness += m.happiness

	res.Food -= res.Population / 20
	res.Gold -= res.Military / 10
	res.Clamp()

	if res.Food == 0 {
		g.Prepend(g.NewEvent(polis.EventEconomic, polis.SeverityDanger, "Food Shortage",
			"Your city is experiencing a food shortage. Population growth has stopped, and happiness is decreasing."))
		res.Happiness -= 15
		res.Population -= res.Population * 5 / 100
		res.Clamp()
	}

	if res.Happiness < 20 && e.chance(0.2+0.01*float64(20-res.Happiness)) {
		g.Prepend(g.NewEvent(polis.EventPolitical, polis.SeverityWarning, "Civil Unrest",
			"Your citizens are unhappy and have taken to the streets. Production has decreased."))
		res.Gold -= res.Gold / 10
		res.Food -= res.Food / 10
		res.Clamp()
	}

	e.updateAI(g)
}

// happinessFactors computes the diagnostic mood breakdown from the ledger
// as it stands after flat policy effects.
func happinessFactors(g *polis.GameState, goldIncome int) *polis.HappinessFactors {
	res := g.PlayerCityState.Resources
	pop := float64(res.Population)

	f := &polis.HappinessFactors{}
	if pop > 0 {
		taxRate := float64(goldIncome) / (pop / 100)
		f.TaxationLevel = polis.Clamp(10-floor(taxRate/2), -20, 10)

		perCapita := float64(res.Food) / (pop / 1000)
		f.FoodSecurity = polis.Clamp(floor(perCapita)-10, -20, 20)

		ratio := float64(res.Military) / (pop / 100)
		f.MilitaryPresence = polis.Clamp(5-floor(ratio), -10, 10)
	}

	f.CulturalInvestment = min(20, 5*g.CountActive(polis.CategoryCultural))
	f.WarWeariness = max(-30, -10*g.CountStatus(polis.War))
	f.PoliticalStability = polis.Clamp(stabilityBase(g.PlayerCityState.Government), -15, 15)

	recent := 0
	for _, ev := range g.Events[:min(5, len(g.Events))] {
		switch ev.Severity {
		case polis.SeverityPositive:
			recent += 3
		case polis.SeverityDanger:
			recent -= 5
		case polis.SeverityWarning:
			recent -= 2
		}
	}
	f.RecentEvents = polis.Clamp(recent, -20, 20)
	return f
}

func floor(v float64) int { return int(math.Floor(v)) }

// updateAI grows every rival with the flat base rates, then lets hostile
// rivals that far outnumber the player declare war.
func (e *Engine) updateAI(g *polis.GameState) {
	for i := range g.OtherCityStates {
		city := &g.OtherCityStates[i]
		res := &city.Resources
		res.Gold += res.Population / 100
		res.Food += res.Population / 50
		res.Population += res.Food / 100
		res.Military += res.Population / 200
		res.ClampAI()

		r := g.Relationship(city.Name)
		if r == nil || r.Status != polis.Hostile {
			continue
		}
		if 2*res.Military > 3*g.PlayerCityState.Resources.Military && e.chance(0.2) {
			r.Status = polis.War
			g.Prepend(g.NewEvent(polis.EventMilitary, polis.SeverityDanger, "War Declared",
				string(city.Name)+" has declared war on your city-state."))
		}
	}
}
