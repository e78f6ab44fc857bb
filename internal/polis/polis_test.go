package polis_test

import (
	"encoding/json"
	"testing"

	"github.com/playperu/polis/internal/polis"
)

func TestUnmarshalRejectsUnknownEnum(t *testing.T) {
	tests := []struct {
		name string
		body string
		dst  any
	}{
		{"government", `"Monarchy"`, new(polis.Government)},
		{"status", `"Vassal"`, new(polis.RelationshipStatus)},
		{"category", `"Religious"`, new(polis.PolicyCategory)},
		{"city", `"Argos"`, new(polis.CityName)},
		{"effects key", `{"marble": 5}`, new(polis.Effects)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := json.Unmarshal([]byte(tt.body), tt.dst); err == nil {
				t.Errorf("expected error decoding %s", tt.body)
			}
		})
	}
}

func TestUnmarshalGameStateRoundTrip(t *testing.T) {
	body := `{"turn":4,"year":447,"playerCityState":{"name":"Corinth","government":"ConstitutionalMonarchy",
		"resources":{"gold":10,"food":20,"population":3000,"military":40,"happiness":50}},
		"policies":[{"id":"p1","name":"Farm","effects":{"food":30},"category":"Economic","active":true}]}`

	var g polis.GameState
	if err := json.Unmarshal([]byte(body), &g); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if g.PlayerCityState.Government != polis.ConstitutionalMonarchy {
		t.Errorf("unexpected government %q", g.PlayerCityState.Government)
	}
	if g.Policies[0].Effects[polis.Food] != 30 {
		t.Errorf("unexpected effects %v", g.Policies[0].Effects)
	}
}

func TestResourcesApplyAndClamp(t *testing.T) {
	r := polis.Resources{Gold: 50, Food: 10, Population: 1200, Military: 5, Happiness: 95}
	r.Apply(polis.Effects{polis.Gold: -80, polis.Population: -500, polis.Happiness: 20})
	r.Clamp()

	want := polis.Resources{Gold: 0, Food: 10, Population: polis.MinPopulation, Military: 5, Happiness: 100}
	if r != want {
		t.Errorf("expected %+v, got %+v", want, r)
	}

	r.ClampAI()
	if r.Military != polis.MinAIMilitary {
		t.Errorf("expected AI military floor %d, got %d", polis.MinAIMilitary, r.Military)
	}
}
