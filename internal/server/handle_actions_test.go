package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/playperu/polis/internal/polis"
)

func gameAt(t *testing.T, h http.Handler, id string) *polis.GameState {
	t.Helper()
	return decodeBody[GameStateRecord](t, do(t, h, http.MethodGet, "/api/games/"+id, nil)).GameState
}

func TestActions(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   any
		status int
		check  func(t *testing.T, g *polis.GameState)
	}{
		{
			name: "festival", path: "/festival", status: http.StatusOK,
			check: func(t *testing.T, g *polis.GameState) {
				if r := g.PlayerCityState.Resources; r.Gold != 800 || r.Happiness != 85 {
					t.Errorf("expected 800 gold 85 happiness, got %+v", r)
				}
			},
		},
		{
			name: "build", path: "/build", body: BuildRequest{Structure: "Temple"}, status: http.StatusOK,
			check: func(t *testing.T, g *polis.GameState) {
				if g.PlayerCityState.Resources.Gold != 750 || len(g.Policies) != 1 || g.Policies[0].Name != "Temple" {
					t.Errorf("expected Temple for 250 gold, got gold %d policies %+v", g.PlayerCityState.Resources.Gold, g.Policies)
				}
			},
		},
		{
			name: "unknown structure", path: "/build", body: BuildRequest{Structure: "Colosseum"}, status: http.StatusBadRequest,
		},
		{
			name: "train", path: "/train", body: TrainRequest{Unit: "Infantry"}, status: http.StatusOK,
			check: func(t *testing.T, g *polis.GameState) {
				if r := g.PlayerCityState.Resources; r.Gold != 800 || r.Military != 600 {
					t.Errorf("expected 800 gold 600 military, got %+v", r)
				}
			},
		},
		{
			name: "unknown unit", path: "/train", body: TrainRequest{Unit: "Elephants"}, status: http.StatusBadRequest,
		},
		{
			name: "tax", path: "/tax", body: TaxRequest{Rate: 20}, status: http.StatusOK,
			check: func(t *testing.T, g *polis.GameState) {
				if len(g.Policies) != 1 || g.Policies[0].Name != "Heavy Taxation" || g.Policies[0].Effects[polis.Gold] != 100 {
					t.Errorf("unexpected tax policy %+v", g.Policies)
				}
			},
		},
		{
			name: "tax out of range", path: "/tax", body: TaxRequest{Rate: 31}, status: http.StatusBadRequest,
		},
		{
			name: "government", path: "/government", body: GovernmentRequest{Government: polis.Tyranny}, status: http.StatusOK,
			check: func(t *testing.T, g *polis.GameState) {
				if g.PlayerCityState.Government != polis.Tyranny {
					t.Errorf("expected Tyranny, got %s", g.PlayerCityState.Government)
				}
			},
		},
		{
			name: "policy", path: "/policies", status: http.StatusOK,
			body: PolicyRequest{Name: "Public Works", Category: polis.CategoryEconomic, Effects: polis.Effects{polis.Gold: 5}},
			check: func(t *testing.T, g *polis.GameState) {
				if len(g.Policies) != 1 || g.Policies[0].ID == "" || !g.Policies[0].Active {
					t.Errorf("unexpected policies %+v", g.Policies)
				}
			},
		},
		{
			name: "policy without name", path: "/policies", body: PolicyRequest{Category: polis.CategoryEconomic},
			status: http.StatusBadRequest,
		},
		{
			name: "war", path: "/war", body: CityRequest{CityState: polis.Sparta}, status: http.StatusOK,
			check: func(t *testing.T, g *polis.GameState) {
				if g.Relationship(polis.Sparta).Status != polis.War {
					t.Errorf("expected war with Sparta, got %s", g.Relationship(polis.Sparta).Status)
				}
			},
		},
		{
			name: "trade", path: "/trade", body: CityRequest{CityState: polis.Thebes}, status: http.StatusOK,
			check: func(t *testing.T, g *polis.GameState) {
				r := g.Relationship(polis.Thebes)
				if r.Status != polis.Friendly || !r.HasTreaty(polis.TradeTreaty) {
					t.Errorf("expected friendly trade partner, got %+v", r)
				}
			},
		},
		{
			name: "trade with own city is a no-op", path: "/trade", body: CityRequest{CityState: polis.Athens}, status: http.StatusOK,
			check: func(t *testing.T, g *polis.GameState) {
				if len(g.Events) != 1 {
					t.Errorf("expected no new events, got %d", len(g.Events))
				}
			},
		},
		{
			name: "bad city", path: "/peace", body: map[string]string{"cityState": "Troy"}, status: http.StatusBadRequest,
		},
		{
			name: "unknown event choice", path: "/events/nope/choice", body: ChoiceRequest{Index: 0}, status: http.StatusOK,
		},
		{
			name: "end turn", path: "/turn", status: http.StatusOK,
			check: func(t *testing.T, g *polis.GameState) {
				if g.Turn != 2 || g.Year != polis.StartingYear-1 {
					t.Errorf("expected turn 2 year 449, got %d %d", g.Turn, g.Year)
				}
				if g.PlayerCityState.Resources.Gold != 993 {
					t.Errorf("expected 993 gold after upkeep, got %d", g.PlayerCityState.Resources.Gold)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testRouter(t)
			id := newGame(t, h)

			w := do(t, h, http.MethodPost, "/api/games/"+id+tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if tt.status != http.StatusOK {
				if g := gameAt(t, h, id); len(g.Events) != 1 {
					t.Errorf("rejected action changed the stored game: %d events", len(g.Events))
				}
				return
			}

			returned := decodeBody[polis.GameState](t, w)
			stored := gameAt(t, h, id)
			if stored.Turn != returned.Turn || len(stored.Events) != len(returned.Events) {
				t.Errorf("stored game differs from response")
			}
			if tt.check != nil {
				tt.check(t, stored)
			}
		})
	}
}

func TestInsufficientGold(t *testing.T) {
	h := testRouter(t)
	id := newGame(t, h)

	for range 2 {
		if w := do(t, h, http.MethodPost, "/api/games/"+id+"/build", BuildRequest{Structure: "Barracks"}); w.Code != http.StatusOK {
			t.Fatalf("build: expected 200, got %d", w.Code)
		}
	}
	w := do(t, h, http.MethodPost, "/api/games/"+id+"/build", BuildRequest{Structure: "Barracks"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if msg := decodeBody[ErrorResponse](t, w).Error; msg != "not enough gold: have 300, need 350" {
		t.Errorf("unexpected error %q", msg)
	}
}

func TestTradeRejections(t *testing.T) {
	h := testRouter(t)
	id := newGame(t, h)
	path := "/api/games/" + id

	do(t, h, http.MethodPost, path+"/trade", CityRequest{CityState: polis.Corinth})
	w := do(t, h, http.MethodPost, path+"/trade", CityRequest{CityState: polis.Corinth})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate treaty: expected 409, got %d", w.Code)
	}

	do(t, h, http.MethodPost, path+"/war", CityRequest{CityState: polis.Sparta})
	w = do(t, h, http.MethodPost, path+"/trade", CityRequest{CityState: polis.Sparta})
	if w.Code != http.StatusConflict || !strings.Contains(decodeBody[ErrorResponse](t, w).Error, "war") {
		t.Errorf("trade at war: expected 409, got %d", w.Code)
	}

	w = do(t, h, http.MethodPost, path+"/peace", CityRequest{CityState: polis.Sparta})
	if g := decodeBody[polis.GameState](t, w); g.Relationship(polis.Sparta).Status != polis.Neutral {
		t.Errorf("expected peace to restore Neutral")
	}
}

func TestRemovePolicy(t *testing.T) {
	h := testRouter(t)
	id := newGame(t, h)
	path := "/api/games/" + id

	g := decodeBody[polis.GameState](t, do(t, h, http.MethodPost, path+"/tax", TaxRequest{Rate: 10}))
	policyID := g.Policies[0].ID

	g = decodeBody[polis.GameState](t, do(t, h, http.MethodDelete, path+"/policies/"+policyID, nil))
	if len(g.Policies) != 0 || g.Events[0].Title != "Policy Repealed" {
		t.Errorf("expected repeal, got policies %+v first event %q", g.Policies, g.Events[0].Title)
	}

	before := len(g.Events)
	g = decodeBody[polis.GameState](t, do(t, h, http.MethodDelete, path+"/policies/"+policyID, nil))
	if len(g.Events) != before {
		t.Errorf("repealing an unknown policy logged an event")
	}
}

func TestActionUnknownGame(t *testing.T) {
	w := do(t, testRouter(t), http.MethodPost, "/api/games/missing/festival", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestActionBadBody(t *testing.T) {
	h := testRouter(t)
	id := newGame(t, h)
	w := do(t, h, http.MethodPost, "/api/games/"+id+"/tax", "twenty")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
