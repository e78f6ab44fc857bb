package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/polis/internal/events"
	"github.com/playperu/polis/internal/polis"
)

type CreateGameRequest struct {
	UserID     int64            `json:"userId"`
	CityState  polis.CityName   `json:"cityState"`
	Government polis.Government `json:"government"`
}

// CatalogResponse lists what a player can build, train and encounter.
type CatalogResponse struct {
	Structures  []polis.Structure  `json:"structures"`
	Units       []polis.Unit       `json:"units"`
	Events      []events.Template  `json:"events"`
	Taxes       TaxRange           `json:"taxes"`
	Festival    polis.Effects      `json:"festival"`
	Governments []polis.Government `json:"governments"`
}

type TaxRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func handleCatalog(catalog *events.Catalog) http.HandlerFunc {
	resp := CatalogResponse{
		Structures:  polis.Structures,
		Units:       polis.Units,
		Events:      catalog.Templates(),
		Taxes:       TaxRange{Min: polis.MinTaxRate, Max: polis.MaxTaxRate},
		Festival:    polis.Effects{polis.Gold: -polis.FestivalCost, polis.Happiness: polis.FestivalHappiness},
		Governments: polis.Governments,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleCreateGame(games *GameStore, rng polis.Rand, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.CityState == "" || req.Government == "" {
			writeError(w, http.StatusBadRequest, "cityState and government are required")
			return
		}

		g, err := polis.NewGame(req.CityState, req.Government, req.UserID, rng, now())
		if err != nil {
			writeErr(w, err)
			return
		}
		rec, err := games.Create(r.Context(), g)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func handleListGames(games *GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var userID int64
		if v := r.URL.Query().Get("userId"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "userId must be an integer")
				return
			}
			userID = id
		}
		list, err := games.List(r.Context(), userID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleGetGame(games *GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := games.Get(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleDeleteGame(games *GameStore, locks *gameLocks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "gameID")
		unlock := locks.lock(id)
		defer unlock()

		if err := games.Delete(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleHistory renders the event log as a plain-text chronicle.
func handleHistory(games *GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := games.Get(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition",
			`attachment; filename="`+string(rec.GameState.PlayerCityState.Name)+`-history.txt"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(polis.FormatHistory(rec.GameState)))
	}
}

func handleGameEvents(games *GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := games.Get(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		evs := rec.GameState.Events
		if r.URL.Query().Get("open") == "true" {
			evs = openEvents(evs)
		}
		if evs == nil {
			evs = []polis.Event{}
		}
		writeJSON(w, http.StatusOK, evs)
	}
}

func openEvents(evs []polis.Event) []polis.Event {
	var out []polis.Event
	for _, e := range evs {
		if e.Open() {
			out = append(out, e)
		}
	}
	return out
}

// action produces the next snapshot of g from the request.
type action func(r *http.Request, g *polis.GameState) (*polis.GameState, error)

// handleAction loads the game, applies act and stores the result while
// holding the game's lock.
func handleAction(games *GameStore, locks *gameLocks, act action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "gameID")
		unlock := locks.lock(id)
		defer unlock()

		rec, err := games.Get(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		next, err := act(r, rec.GameState)
		if err != nil {
			writeErr(w, err)
			return
		}
		// Rejected and no-op actions hand back the same snapshot.
		if next != rec.GameState {
			if err := games.Update(r.Context(), next); err != nil {
				writeErr(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, next)
	}
}
