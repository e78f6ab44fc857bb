package polis

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Player actions never mutate their input. A rejected action returns the
// input snapshot together with the reason; an action that references an
// unknown policy or city-state returns the input snapshot and a nil error.

func BuildStructure(g *GameState, name string) (*GameState, error) {
	s, ok := StructureByName(name)
	if !ok {
		return g, fmt.Errorf("%w: %q", ErrUnknownStructure, name)
	}
	if err := g.PlayerCityState.Resources.Shortfall(s.Cost); err != nil {
		return g, err
	}

	next := g.Clone()
	next.Player().Spend(s.Cost)
	next.Policies = append(next.Policies, Policy{
		ID:          uuid.NewString(),
		Name:        s.Name,
		Description: s.Description,
		Effects:     s.Effects.Clone(),
		Category:    s.Category,
		Active:      true,
	})
	next.Prepend(next.NewEvent(EventEconomic, SeverityPositive,
		"Structure Built", fmt.Sprintf("You have built a new %s.", s.Name)))
	return next, nil
}

func TrainUnits(g *GameState, name string) (*GameState, error) {
	u, ok := UnitByName(name)
	if !ok {
		return g, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	if err := g.PlayerCityState.Resources.Shortfall(Effects{Gold: u.Cost}); err != nil {
		return g, err
	}

	next := g.Clone()
	res := next.Player()
	res.Gold -= u.Cost
	res.Military += u.Strength
	next.Prepend(next.NewEvent(EventMilitary, SeverityPositive,
		"Military Training", fmt.Sprintf("You have trained %d new military units.", u.Strength)))
	return next, nil
}

func HoldFestival(g *GameState) (*GameState, error) {
	if err := g.PlayerCityState.Resources.Shortfall(Effects{Gold: FestivalCost}); err != nil {
		return g, err
	}

	next := g.Clone()
	res := next.Player()
	res.Gold -= FestivalCost
	res.Happiness = Clamp(res.Happiness+FestivalHappiness, 0, MaxHappiness)
	next.Prepend(next.NewEvent(EventCultural, SeverityPositive,
		"Festival Held", fmt.Sprintf("You held a grand festival, boosting citizen happiness by %d.", FestivalHappiness)))
	return next, nil
}

// SetTaxRate replaces the current taxation policy with one for rate.
func SetTaxRate(g *GameState, rate int) (*GameState, error) {
	p, err := TaxPolicy(rate, g.PlayerCityState.Resources.Population)
	if err != nil {
		return g, err
	}

	next := g
	for _, old := range g.Policies {
		if old.Category == CategoryEconomic && strings.Contains(old.Name, "Taxation") {
			next = RemovePolicy(next, old.ID)
			break
		}
	}
	return AddPolicy(next, p), nil
}

// AddPolicy enacts p, assigning an id when it has none.
func AddPolicy(g *GameState, p Policy) *GameState {
	next := g.Clone()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Effects = p.Effects.Clone()
	next.Policies = append(next.Policies, p)
	next.Prepend(next.NewEvent(EventPolitical, SeverityNeutral,
		"New Policy Enacted", fmt.Sprintf("You have enacted the %s policy: %s", p.Name, p.Description)))
	return next
}

func RemovePolicy(g *GameState, id string) *GameState {
	i := g.Policy(id)
	if i < 0 {
		return g
	}

	next := g.Clone()
	p := next.Policies[i]
	next.Policies = append(next.Policies[:i], next.Policies[i+1:]...)
	next.Prepend(next.NewEvent(EventPolitical, SeverityNeutral,
		"Policy Repealed", fmt.Sprintf("You have repealed the %s policy.", p.Name)))
	return next
}

func ChangeGovernment(g *GameState, gov Government) (*GameState, error) {
	if !gov.Valid() {
		return g, fmt.Errorf("%w: %q", ErrUnknownGovernment, gov)
	}
	if g.PlayerCityState.Government == gov {
		return g, nil
	}

	next := g.Clone()
	next.PlayerCityState.Government = gov
	next.Prepend(next.NewEvent(EventPolitical, SeverityNeutral,
		"Government Changed", fmt.Sprintf("Your city-state has transitioned to a %s.", gov)))
	return next, nil
}

func DeclareWar(g *GameState, city CityName) *GameState {
	r := g.Relationship(city)
	if r == nil || r.Status == War {
		return g
	}

	next := g.Clone()
	next.Relationship(city).Status = War
	next.Prepend(next.NewEvent(EventMilitary, SeverityDanger,
		"War Declared", fmt.Sprintf("You have declared war on %s.", city)))
	return next
}

func MakePeace(g *GameState, city CityName) *GameState {
	if g.Relationship(city) == nil {
		return g
	}

	next := g.Clone()
	next.Relationship(city).Status = Neutral
	next.Prepend(next.NewEvent(EventMilitary, SeverityPositive,
		"Peace Established", fmt.Sprintf("You have made peace with %s.", city)))
	return next
}

// EstablishTrade signs a Trade treaty. A Neutral partner becomes Friendly.
func EstablishTrade(g *GameState, city CityName) (*GameState, error) {
	r := g.Relationship(city)
	switch {
	case r == nil:
		return g, nil
	case r.Status == War:
		return g, fmt.Errorf("%w: %s", ErrAtWar, city)
	case r.HasTreaty(TradeTreaty):
		return g, fmt.Errorf("%w: trade with %s", ErrTreatyExists, city)
	}

	next := g.Clone()
	nr := next.Relationship(city)
	nr.Treaties = append(nr.Treaties, TradeTreaty)
	if nr.Status == Neutral {
		nr.Status = Friendly
	}
	next.Prepend(next.NewEvent(EventEconomic, SeverityPositive,
		"Trade Route Established",
		fmt.Sprintf("You have established a trade route with %s, increasing income by %d gold per turn.", city, TradeBonus)))
	return next, nil
}

// ApplyChoice resolves an open event. The choice's deltas are added to the
// player ledger and re-clamped, its stance (if any) is applied, and the event
// is closed. Unknown events, closed events and bad indexes are no-ops.
func ApplyChoice(g *GameState, eventID string, index int) *GameState {
	i := g.Event(eventID)
	if i < 0 || index < 0 || index >= len(g.Events[i].Choices) {
		return g
	}

	next := g.Clone()
	ev := &next.Events[i]
	choice := ev.Choices[index]

	res := next.Player()
	res.Apply(choice.Effects)
	res.Clamp()

	if s := choice.Stance; s != nil {
		if r := next.Relationship(s.CityState); r != nil {
			r.Status = s.Status
		}
	}

	ev.Description += fmt.Sprintf(" You chose to %s.", choice.Text)
	ev.Choices = nil
	return next
}
