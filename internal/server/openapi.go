package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/polis/internal/multiplayer"
	"github.com/playperu/polis/internal/polis"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each dependency to its status.
type HealthResponse map[string]struct {
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
}

type response struct {
	status      int
	body        any
	contentType string
}

type operation struct {
	method, path string
	summary      string
	description  string
	request      any
	responses    []response
}

func ok(body any) response      { return response{status: http.StatusOK, body: body} }
func created(body any) response { return response{status: http.StatusCreated, body: body} }

func fails(statuses ...int) []response {
	out := make([]response, len(statuses))
	for i, s := range statuses {
		out[i] = response{status: s, body: ErrorResponse{}}
	}
	return out
}

// gameAction documents a POST that returns the next game snapshot.
func gameAction(path, summary, description string, request any, statuses ...int) operation {
	return operation{
		method:      http.MethodPost,
		path:        "/api/games/{gameID}" + path,
		summary:     summary,
		description: description,
		request:     request,
		responses:   append([]response{ok(polis.GameState{})}, fails(append([]int{http.StatusNotFound}, statuses...)...)...),
	}
}

func sessionOp(method, path, summary, description string, request any, statuses ...int) operation {
	return operation{
		method:      method,
		path:        "/api/multiplayer/{sessionID}" + path,
		summary:     summary,
		description: description,
		request:     request,
		responses:   append([]response{ok(multiplayer.Session{})}, fails(append([]int{http.StatusNotFound}, statuses...)...)...),
	}
}

func operations() []operation {
	return []operation{
		{
			method: http.MethodGet, path: "/healthz",
			summary:     "Health check",
			description: "Returns the health status of backend dependencies.",
			responses: []response{
				ok(HealthResponse{}),
				{status: http.StatusServiceUnavailable, body: HealthResponse{}},
			},
		},
		{
			method: http.MethodGet, path: "/api/catalog",
			summary:     "Game catalog",
			description: "Structures, units, event templates, tax range and governments.",
			responses:   []response{ok(CatalogResponse{})},
		},
		{
			method: http.MethodPost, path: "/api/users",
			summary:     "Register",
			description: "Creates an account. The password is stored as a bcrypt hash.",
			request:     CredentialsRequest{},
			responses:   append([]response{created(User{})}, fails(http.StatusBadRequest, http.StatusConflict)...),
		},
		{
			method: http.MethodPost, path: "/api/users/login",
			summary:     "Log in",
			description: "Verifies credentials and returns the account.",
			request:     CredentialsRequest{},
			responses:   append([]response{ok(User{})}, fails(http.StatusBadRequest, http.StatusUnauthorized)...),
		},
		{
			method: http.MethodGet, path: "/api/users/{userID}",
			summary:   "Get user",
			responses: append([]response{ok(User{})}, fails(http.StatusNotFound)...),
		},
		{
			method: http.MethodGet, path: "/api/games",
			summary:     "List games",
			description: "Lists stored games, optionally filtered with ?userId=.",
			responses:   []response{ok([]GameSummary{})},
		},
		{
			method: http.MethodPost, path: "/api/games",
			summary:     "New game",
			description: "Founds a new city-state and stores the opening snapshot.",
			request:     CreateGameRequest{},
			responses:   append([]response{created(GameStateRecord{})}, fails(http.StatusBadRequest)...),
		},
		{
			method: http.MethodGet, path: "/api/games/{gameID}",
			summary:   "Get game",
			responses: append([]response{ok(GameStateRecord{})}, fails(http.StatusNotFound)...),
		},
		{
			method: http.MethodDelete, path: "/api/games/{gameID}",
			summary:   "Delete game",
			responses: append([]response{{status: http.StatusNoContent}}, fails(http.StatusNotFound)...),
		},
		{
			method: http.MethodGet, path: "/api/games/{gameID}/history",
			summary:     "Export history",
			description: "The event log as a plain-text chronicle grouped by year.",
			responses: append([]response{{status: http.StatusOK, contentType: "text/plain"}},
				fails(http.StatusNotFound)...),
		},
		{
			method: http.MethodGet, path: "/api/games/{gameID}/events",
			summary:     "List events",
			description: "The event log, newest first. ?open=true keeps events awaiting a choice.",
			responses:   append([]response{ok([]polis.Event{})}, fails(http.StatusNotFound)...),
		},
		gameAction("/turn", "End turn", "Advances the game one turn and may draw a random event.", nil),
		gameAction("/build", "Build structure", "Spends the structure's cost and enacts it as a policy.",
			BuildRequest{}, http.StatusBadRequest, http.StatusConflict),
		gameAction("/train", "Train units", "Spends gold for military strength.",
			TrainRequest{}, http.StatusBadRequest, http.StatusConflict),
		gameAction("/festival", "Hold festival", "Spends gold for happiness.", nil, http.StatusConflict),
		gameAction("/tax", "Set tax rate", "Replaces the taxation policy.", TaxRequest{}, http.StatusBadRequest),
		gameAction("/government", "Change government", "", GovernmentRequest{}, http.StatusBadRequest),
		gameAction("/policies", "Enact policy", "", PolicyRequest{}, http.StatusBadRequest),
		{
			method: http.MethodDelete, path: "/api/games/{gameID}/policies/{policyID}",
			summary:     "Repeal policy",
			description: "Unknown policy ids leave the game unchanged.",
			responses:   append([]response{ok(polis.GameState{})}, fails(http.StatusNotFound)...),
		},
		gameAction("/war", "Declare war", "", CityRequest{}, http.StatusBadRequest),
		gameAction("/peace", "Make peace", "", CityRequest{}, http.StatusBadRequest),
		gameAction("/trade", "Establish trade", "Signs a trade treaty with a city-state not at war.",
			CityRequest{}, http.StatusBadRequest, http.StatusConflict),
		gameAction("/events/{eventID}/choice", "Resolve event", "Applies one of an open event's choices.",
			ChoiceRequest{}, http.StatusBadRequest),
		{
			method: http.MethodPost, path: "/api/multiplayer",
			summary:     "Create session",
			description: "Opens a multiplayer session over a stored game with the caller as host.",
			request:     CreateSessionRequest{},
			responses:   append([]response{created(multiplayer.Session{})}, fails(http.StatusBadRequest, http.StatusNotFound)...),
		},
		sessionOp(http.MethodGet, "", "Get session", "", nil),
		{
			method: http.MethodGet, path: "/api/multiplayer/{sessionID}/turn",
			summary:     "Turn status",
			description: "Whether ?userId= holds the turn and how many actions remain.",
			responses:   append([]response{ok(TurnResponse{})}, fails(http.StatusBadRequest, http.StatusNotFound)...),
		},
		sessionOp(http.MethodPost, "/join", "Join session", "Adds a player or reconnects a returning one.",
			JoinSessionRequest{}, http.StatusBadRequest),
		sessionOp(http.MethodPost, "/end-turn", "End turn", "Passes the turn to the next connected player.", nil),
		sessionOp(http.MethodPost, "/actions", "Use action", "Spends one of the current player's actions.",
			PlayerRequest{}, http.StatusConflict),
		sessionOp(http.MethodPost, "/disconnect", "Disconnect", "Marks a player offline, passing the turn if held.",
			PlayerRequest{}),
		{
			method: http.MethodGet, path: "/api/multiplayer/{sessionID}/events",
			summary:     "SSE session stream",
			description: "Server-Sent Events carrying a session snapshot on every change.",
			responses: []response{{status: http.StatusOK, contentType: "text/event-stream"},
				{status: http.StatusNotFound, body: ErrorResponse{}}},
		},
		{
			method: http.MethodGet, path: "/api/multiplayer/{sessionID}/ws",
			summary:     "WebSocket session feed",
			description: "Upgrades to a WebSocket that pushes session snapshots.",
			responses:   []response{{status: http.StatusSwitchingProtocols, contentType: "text/plain"}},
		},
	}
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Polis API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Polis city-state strategy game.")

	for _, op := range operations() {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		if op.description != "" {
			oc.SetDescription(op.description)
		}
		if op.request != nil {
			oc.AddReqStructure(op.request)
		}
		for _, resp := range op.responses {
			opts := []openapi.ContentOption{openapi.WithHTTPStatus(resp.status)}
			if resp.contentType != "" {
				opts = append(opts, openapi.WithContentType(resp.contentType))
			}
			oc.AddRespStructure(resp.body, opts...)
		}
		_ = r.AddOperation(oc)
	}
	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
