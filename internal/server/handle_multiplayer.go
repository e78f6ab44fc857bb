package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/polis/internal/multiplayer"
	"github.com/playperu/polis/internal/polis"
)

type CreateSessionRequest struct {
	GameStateID string         `json:"gameStateId"`
	UserID      int64          `json:"userId"`
	Username    string         `json:"username"`
	CityState   polis.CityName `json:"cityState"`
}

type JoinSessionRequest struct {
	UserID    int64          `json:"userId"`
	Username  string         `json:"username"`
	CityState polis.CityName `json:"cityState"`
}

// PlayerRequest identifies the acting player.
type PlayerRequest struct {
	UserID int64 `json:"userId"`
}

// TurnResponse answers turn queries for one player.
type TurnResponse struct {
	IsPlayerTurn     bool `json:"isPlayerTurn"`
	ActionsRemaining int  `json:"actionsRemaining"`
}

func handleCreateSession(sessions *multiplayer.Manager, games *GameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.GameStateID == "" || req.Username == "" || req.CityState == "" {
			writeError(w, http.StatusBadRequest, "gameStateId, username and cityState are required")
			return
		}
		if _, err := games.Get(r.Context(), req.GameStateID); err != nil {
			writeErr(w, err)
			return
		}

		s, err := sessions.Create(r.Context(), req.GameStateID, req.UserID, req.Username, req.CityState)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)
	}
}

func handleGetSession(sessions *multiplayer.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func handleJoinSession(sessions *multiplayer.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinSessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.CityState == "" {
			writeError(w, http.StatusBadRequest, "username and cityState are required")
			return
		}

		s, err := sessions.Join(r.Context(), chi.URLParam(r, "sessionID"), req.UserID, req.Username, req.CityState)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func handleEndSessionTurn(sessions *multiplayer.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessions.EndTurn(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// handlePlayerOp runs a Manager operation on behalf of the player named in the body.
func handlePlayerOp(fn playerOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		s, err := fn(r, chi.URLParam(r, "sessionID"), req.UserID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

type playerOp func(r *http.Request, sessionID string, userID int64) (*multiplayer.Session, error)

func useAction(m *multiplayer.Manager) playerOp {
	return func(r *http.Request, id string, userID int64) (*multiplayer.Session, error) {
		return m.UseAction(r.Context(), id, userID)
	}
}

func disconnect(m *multiplayer.Manager) playerOp {
	return func(r *http.Request, id string, userID int64) (*multiplayer.Session, error) {
		return m.Disconnect(r.Context(), id, userID)
	}
}

// handleSessionTurn reports whether ?userId= holds the turn.
func handleSessionTurn(sessions *multiplayer.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if _, err := sessions.Get(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "userId query parameter required")
			return
		}
		writeJSON(w, http.StatusOK, TurnResponse{
			IsPlayerTurn:     sessions.IsPlayerTurn(r.Context(), id, userID),
			ActionsRemaining: sessions.ActionsRemaining(r.Context(), id, userID),
		})
	}
}
