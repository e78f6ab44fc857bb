package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/playperu/polis/internal/polis"
)

func TestCreateAndGetGame(t *testing.T) {
	h := testRouter(t)
	id := newGame(t, h)

	w := do(t, h, http.MethodGet, "/api/games/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	rec := decodeBody[GameStateRecord](t, w)
	g := rec.GameState
	if rec.UserID != 1 || g.Turn != 1 || g.Year != polis.StartingYear {
		t.Errorf("unexpected record %+v", rec)
	}
	if g.PlayerCityState.Name != polis.Athens || g.PlayerCityState.Resources.Gold != 1000 {
		t.Errorf("unexpected player city %+v", g.PlayerCityState)
	}
	if len(g.OtherCityStates) != 3 || len(g.Relationships) != 3 {
		t.Errorf("expected 3 rivals, got %d cities %d relationships", len(g.OtherCityStates), len(g.Relationships))
	}
	if len(g.Events) != 1 || g.Events[0].Title != "City State Founded" {
		t.Errorf("expected founding event, got %+v", g.Events)
	}
}

func TestCreateGameRejects(t *testing.T) {
	h := testRouter(t)
	tests := []struct {
		name string
		body any
	}{
		{"unknown city", map[string]any{"cityState": "Troy", "government": "Democracy"}},
		{"unknown government", map[string]any{"cityState": "Athens", "government": "Empire"}},
		{"missing fields", map[string]any{"userId": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/games", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestListGames(t *testing.T) {
	h := testRouter(t)
	newGame(t, h)
	newGame(t, h)
	do(t, h, http.MethodPost, "/api/games", CreateGameRequest{UserID: 2, CityState: polis.Sparta, Government: polis.Oligarchy})

	all := decodeBody[[]GameSummary](t, do(t, h, http.MethodGet, "/api/games", nil))
	if len(all) != 3 {
		t.Errorf("expected 3 games, got %d", len(all))
	}
	mine := decodeBody[[]GameSummary](t, do(t, h, http.MethodGet, "/api/games?userId=2", nil))
	if len(mine) != 1 || mine[0].City != polis.Sparta || mine[0].Turn != 1 {
		t.Errorf("unexpected filtered list %+v", mine)
	}
	if w := do(t, h, http.MethodGet, "/api/games?userId=x", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad userId, got %d", w.Code)
	}
}

func TestDeleteGame(t *testing.T) {
	h := testRouter(t)
	id := newGame(t, h)

	if w := do(t, h, http.MethodDelete, "/api/games/"+id, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/api/games/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
	if w := do(t, h, http.MethodDelete, "/api/games/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestHistoryExport(t *testing.T) {
	h := testRouter(t)
	id := newGame(t, h)
	do(t, h, http.MethodPost, "/api/games/"+id+"/festival", nil)

	w := do(t, h, http.MethodGet, "/api/games/"+id+"/history", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Errorf("content-type = %q, want text/plain", got)
	}
	body := w.Body.String()
	for _, want := range []string{"HISTORY OF ATHENS", "--- 450 BCE ---", "[Turn 1] Festival Held", "[Turn 1] City State Founded"} {
		if !strings.Contains(body, want) {
			t.Errorf("history missing %q:\n%s", want, body)
		}
	}
}

func TestEventsExport(t *testing.T) {
	h := testRouter(t)
	id := newGame(t, h)

	evs := decodeBody[[]polis.Event](t, do(t, h, http.MethodGet, "/api/games/"+id+"/events", nil))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	open := decodeBody[[]polis.Event](t, do(t, h, http.MethodGet, "/api/games/"+id+"/events?open=true", nil))
	if len(open) != 0 {
		t.Errorf("expected no open events, got %d", len(open))
	}
}

func TestCatalog(t *testing.T) {
	resp := decodeBody[CatalogResponse](t, do(t, testRouter(t), http.MethodGet, "/api/catalog", nil))
	if len(resp.Structures) != len(polis.Structures) || len(resp.Units) != 3 || len(resp.Events) != 16 {
		t.Errorf("unexpected catalog sizes %d %d %d", len(resp.Structures), len(resp.Units), len(resp.Events))
	}
	if resp.Taxes.Min != 1 || resp.Taxes.Max != 30 || len(resp.Governments) != 6 {
		t.Errorf("unexpected catalog %+v %v", resp.Taxes, resp.Governments)
	}
}
