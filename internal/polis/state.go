package polis

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// TradeTreaty is the only treaty name the engine understands.
const TradeTreaty = "Trade"

type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type CityState struct {
	ID            string     `json:"id"`
	Name          CityName   `json:"name"`
	Government    Government `json:"government"`
	Resources     Resources  `json:"resources"`
	Location      Location   `json:"location"`
	IsPlayerOwned bool       `json:"isPlayerOwned"`
}

type Policy struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Effects     Effects        `json:"effects"`
	Category    PolicyCategory `json:"category"`
	Active      bool           `json:"active"`
}

type Relationship struct {
	CityState CityName           `json:"cityState"`
	Status    RelationshipStatus `json:"status"`
	Treaties  []string           `json:"treaties"`
}

func (r Relationship) HasTreaty(name string) bool {
	return slices.Contains(r.Treaties, name)
}

// Stance is a relationship transition carried by an event choice.
type Stance struct {
	CityState CityName           `json:"cityState"`
	Status    RelationshipStatus `json:"status"`
}

type Choice struct {
	Text    string  `json:"text"`
	Effects Effects `json:"effects"`
	Stance  *Stance `json:"stance,omitempty"`
}

type Event struct {
	ID          string    `json:"id"`
	Turn        int       `json:"turn"`
	Year        int       `json:"year"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
	Severity    Severity  `json:"severity"`
	Effects     Effects   `json:"effects,omitempty"`
	Choices     []Choice  `json:"choices,omitempty"`
}

// Open reports whether the event still awaits a player choice.
func (e Event) Open() bool { return len(e.Choices) > 0 }

type GameState struct {
	ID              string         `json:"id"`
	UserID          int64          `json:"userId"`
	Turn            int            `json:"turn"`
	Year            int            `json:"year"`
	PlayerCityState CityState      `json:"playerCityState"`
	OtherCityStates []CityState    `json:"otherCityStates"`
	Relationships   []Relationship `json:"relationships"`
	Policies        []Policy       `json:"policies"`
	Events          []Event        `json:"events"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// NewEvent builds an event stamped with the current turn and year.
func (g *GameState) NewEvent(typ EventType, sev Severity, title, description string) Event {
	return Event{
		ID:          uuid.NewString(),
		Turn:        g.Turn,
		Year:        g.Year,
		Title:       title,
		Description: description,
		Type:        typ,
		Severity:    sev,
	}
}

// Prepend records e as the most recent entry of the event log.
func (g *GameState) Prepend(e Event) {
	g.Events = slices.Insert(g.Events, 0, e)
}

// TrimEvents drops the oldest events beyond limit. A limit <= 0 keeps everything.
func (g *GameState) TrimEvents(limit int) {
	if limit > 0 && len(g.Events) > limit {
		g.Events = g.Events[:limit]
	}
}

// Event returns the index of the event with the given id, or -1.
func (g *GameState) Event(id string) int {
	return slices.IndexFunc(g.Events, func(e Event) bool { return e.ID == id })
}

// Relationship returns the relationship with the named city-state, or nil.
func (g *GameState) Relationship(name CityName) *Relationship {
	for i := range g.Relationships {
		if g.Relationships[i].CityState == name {
			return &g.Relationships[i]
		}
	}
	return nil
}

// City returns the AI city-state with the given name, or nil.
func (g *GameState) City(name CityName) *CityState {
	for i := range g.OtherCityStates {
		if g.OtherCityStates[i].Name == name {
			return &g.OtherCityStates[i]
		}
	}
	return nil
}

// Policy returns the index of the policy with the given id, or -1.
func (g *GameState) Policy(id string) int {
	return slices.IndexFunc(g.Policies, func(p Policy) bool { return p.ID == id })
}

// CountActive counts active policies of the given category.
func (g *GameState) CountActive(c PolicyCategory) int {
	n := 0
	for _, p := range g.Policies {
		if p.Active && p.Category == c {
			n++
		}
	}
	return n
}

// CountStatus counts relationships in the given status.
func (g *GameState) CountStatus(s RelationshipStatus) int {
	n := 0
	for _, r := range g.Relationships {
		if r.Status == s {
			n++
		}
	}
	return n
}

// Player returns the player's resource ledger.
func (g *GameState) Player() *Resources {
	return &g.PlayerCityState.Resources
}

// Clone returns a deep copy so the receiver can serve as an immutable snapshot.
func (g *GameState) Clone() *GameState {
	out := *g
	out.PlayerCityState = g.PlayerCityState.clone()

	out.OtherCityStates = slices.Clone(g.OtherCityStates)
	for i := range out.OtherCityStates {
		out.OtherCityStates[i] = out.OtherCityStates[i].clone()
	}

	out.Relationships = slices.Clone(g.Relationships)
	for i := range out.Relationships {
		out.Relationships[i].Treaties = slices.Clone(out.Relationships[i].Treaties)
	}

	out.Policies = slices.Clone(g.Policies)
	for i := range out.Policies {
		out.Policies[i].Effects = out.Policies[i].Effects.Clone()
	}

	out.Events = slices.Clone(g.Events)
	for i := range out.Events {
		out.Events[i] = out.Events[i].clone()
	}
	return &out
}

func (c CityState) clone() CityState {
	c.Resources = c.Resources.clone()
	return c
}

func (e Event) clone() Event {
	e.Effects = e.Effects.Clone()
	e.Choices = slices.Clone(e.Choices)
	for i := range e.Choices {
		ch := &e.Choices[i]
		ch.Effects = ch.Effects.Clone()
		if ch.Stance != nil {
			s := *ch.Stance
			ch.Stance = &s
		}
	}
	return e
}
