// Package events draws random narrative events from a YAML catalog.
package events

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/playperu/polis/internal/polis"
)

// Chance is the probability that a turn produces a random event at all.
const Chance = 0.5

//go:embed templates.yaml
var templatesYAML []byte

// Condition restricts when a template may be drawn. Unset fields always hold.
type Condition struct {
	HappinessBelow *int `yaml:"happiness_below" json:"happinessBelow,omitempty"`
}

func (c *Condition) Holds(g *polis.GameState) bool {
	if c == nil {
		return true
	}
	if c.HappinessBelow != nil && g.PlayerCityState.Resources.Happiness >= *c.HappinessBelow {
		return false
	}
	return true
}

type Choice struct {
	Text    string        `yaml:"text" json:"text"`
	Effects polis.Effects `yaml:"effects" json:"effects"`
}

type Template struct {
	Title       string          `yaml:"title" json:"title"`
	Description string          `yaml:"description" json:"description"`
	Type        polis.EventType `yaml:"type" json:"type"`
	Severity    polis.Severity  `yaml:"severity" json:"severity"`
	Effects     polis.Effects   `yaml:"effects" json:"effects,omitempty"`
	Choices     []Choice        `yaml:"choices" json:"choices,omitempty"`
	When        *Condition      `yaml:"when" json:"when,omitempty"`
}

type Catalog struct {
	templates []Template
}

// Parse decodes and validates a YAML list of templates.
func Parse(data []byte) (*Catalog, error) {
	var templates []Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("decoding event templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("event catalog is empty")
	}
	for i, t := range templates {
		if t.Title == "" {
			return nil, fmt.Errorf("template %d: missing title", i)
		}
		if !t.Type.Valid() || !t.Severity.Valid() {
			return nil, fmt.Errorf("template %q: bad type or severity", t.Title)
		}
		for j, c := range t.Choices {
			if c.Text == "" {
				return nil, fmt.Errorf("template %q: choice %d has no text", t.Title, j)
			}
		}
	}
	return &Catalog{templates: templates}, nil
}

var builtin = sync.OnceValues(func() (*Catalog, error) { return Parse(templatesYAML) })

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) { return builtin() }

func (c *Catalog) Templates() []Template { return c.templates }

// Eligible lists the templates whose condition holds for g.
func (c *Catalog) Eligible(g *polis.GameState) []Template {
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		if t.When.Holds(g) {
			out = append(out, t)
		}
	}
	return out
}

// Generate maybe draws an event for g. When the drawn template has no
// choices its effects are applied to g's player ledger, which is then
// clamped. The event is returned, not logged; callers prepend it.
func (c *Catalog) Generate(g *polis.GameState, rng polis.Rand) *polis.Event {
	if rng.Float64() > Chance {
		return nil
	}
	eligible := c.Eligible(g)
	if len(eligible) == 0 {
		return nil
	}
	t := eligible[rng.IntN(len(eligible))]

	ev := g.NewEvent(t.Type, t.Severity, t.Title, t.Description)
	ev.Effects = t.Effects.Clone()
	if len(t.Choices) == 0 {
		res := g.Player()
		res.Apply(t.Effects)
		res.Clamp()
		return &ev
	}

	ev.Choices = make([]polis.Choice, len(t.Choices))
	for i, ch := range t.Choices {
		ev.Choices[i] = polis.Choice{Text: ch.Text, Effects: ch.Effects.Clone()}
	}
	return &ev
}
