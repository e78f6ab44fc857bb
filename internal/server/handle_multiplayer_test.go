package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"github.com/playperu/polis/internal/multiplayer"
	"github.com/playperu/polis/internal/polis"
)

// newSession hosts a session for player 1 over a fresh game.
func newSession(t *testing.T, h http.Handler) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/multiplayer", CreateSessionRequest{
		GameStateID: newGame(t, h),
		UserID:      1,
		Username:    "pericles",
		CityState:   polis.Athens,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decodeBody[multiplayer.Session](t, w).ID
}

func TestSessionLifecycle(t *testing.T) {
	h := testRouter(t)
	id := newSession(t, h)
	path := "/api/multiplayer/" + id

	w := do(t, h, http.MethodPost, path+"/join", JoinSessionRequest{UserID: 2, Username: "leonidas", CityState: polis.Sparta})
	if w.Code != http.StatusOK {
		t.Fatalf("join: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if s := decodeBody[multiplayer.Session](t, w); len(s.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(s.Players))
	}

	if w := do(t, h, http.MethodPost, path+"/actions", PlayerRequest{UserID: 2}); w.Code != http.StatusConflict {
		t.Errorf("out of turn action: expected 409, got %d", w.Code)
	}
	for range multiplayer.DefaultMaxActions {
		if w := do(t, h, http.MethodPost, path+"/actions", PlayerRequest{UserID: 1}); w.Code != http.StatusOK {
			t.Fatalf("action: expected 200, got %d", w.Code)
		}
	}
	if w := do(t, h, http.MethodPost, path+"/actions", PlayerRequest{UserID: 1}); w.Code != http.StatusConflict {
		t.Errorf("exhausted actions: expected 409, got %d", w.Code)
	}

	turn := decodeBody[TurnResponse](t, do(t, h, http.MethodGet, path+"/turn?userId=1", nil))
	if !turn.IsPlayerTurn || turn.ActionsRemaining != 0 {
		t.Errorf("unexpected turn status %+v", turn)
	}

	s := decodeBody[multiplayer.Session](t, do(t, h, http.MethodPost, path+"/end-turn", nil))
	if cur, _ := s.Current(); cur.ID != 2 || s.TurnNumber != 2 {
		t.Errorf("expected player 2 on turn 2, got %d on %d", cur.ID, s.TurnNumber)
	}

	s = decodeBody[multiplayer.Session](t, do(t, h, http.MethodPost, path+"/disconnect", PlayerRequest{UserID: 2}))
	if cur, _ := s.Current(); cur.ID != 1 || s.Players[0].ActionsRemaining != multiplayer.DefaultMaxActions {
		t.Errorf("expected the turn back with player 1, got %+v", s.Players)
	}

	if w := do(t, h, http.MethodGet, path, nil); w.Code != http.StatusOK {
		t.Errorf("get: expected 200, got %d", w.Code)
	}
}

func TestSessionErrors(t *testing.T) {
	h := testRouter(t)
	id := newSession(t, h)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown game", http.MethodPost, "/api/multiplayer",
			CreateSessionRequest{GameStateID: "missing", UserID: 1, Username: "a", CityState: polis.Athens}, http.StatusNotFound},
		{"missing username", http.MethodPost, "/api/multiplayer",
			CreateSessionRequest{GameStateID: "x", CityState: polis.Athens}, http.StatusBadRequest},
		{"unknown session", http.MethodGet, "/api/multiplayer/missing", nil, http.StatusNotFound},
		{"join unknown session", http.MethodPost, "/api/multiplayer/missing/join",
			JoinSessionRequest{UserID: 2, Username: "b", CityState: polis.Sparta}, http.StatusNotFound},
		{"stranger disconnects", http.MethodPost, "/api/multiplayer/" + id + "/disconnect",
			PlayerRequest{UserID: 42}, http.StatusNotFound},
		{"turn without user", http.MethodGet, "/api/multiplayer/" + id + "/turn", nil, http.StatusBadRequest},
		{"events of unknown session", http.MethodGet, "/api/multiplayer/missing/events", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, h, tt.method, tt.path, tt.body); w.Code != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func readSessionEvent(t *testing.T, data []byte) *multiplayer.Session {
	t.Helper()
	var ev SessionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("decoding event %s: %v", data, err)
	}
	if ev.Type != "session" || ev.Session == nil {
		t.Fatalf("unexpected event %s", data)
	}
	return ev.Session
}

func TestSessionSocket(t *testing.T) {
	h := testRouter(t)
	id := newSession(t, h)

	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + srv.URL[len("http"):] + "/api/multiplayer/" + id + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if s := readSessionEvent(t, data); len(s.Players) != 1 {
		t.Errorf("expected 1 player in the first snapshot, got %d", len(s.Players))
	}

	do(t, h, http.MethodPost, "/api/multiplayer/"+id+"/join", JoinSessionRequest{UserID: 2, Username: "leonidas", CityState: polis.Sparta})

	_, data, err = conn.Read(ctx)
	if err != nil {
		t.Fatalf("read update: %v", err)
	}
	if s := readSessionEvent(t, data); len(s.Players) != 2 {
		t.Errorf("expected 2 players after join, got %d", len(s.Players))
	}

	conn.Close(websocket.StatusNormalClosure, "done")
}

func TestSessionEventStream(t *testing.T) {
	h := testRouter(t)
	id := newSession(t, h)

	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/multiplayer/"+id+"/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("content-type = %q", got)
	}

	lines := bufio.NewScanner(resp.Body)
	next := func() *multiplayer.Session {
		t.Helper()
		for lines.Scan() {
			if data, ok := strings.CutPrefix(lines.Text(), "data: "); ok {
				return readSessionEvent(t, []byte(data))
			}
		}
		t.Fatalf("stream ended: %v", lines.Err())
		return nil
	}

	if s := next(); s.TurnNumber != 1 {
		t.Errorf("expected turn 1 snapshot, got %d", s.TurnNumber)
	}
	do(t, h, http.MethodPost, "/api/multiplayer/"+id+"/end-turn", nil)
	if s := next(); s.TurnNumber != 2 {
		t.Errorf("expected turn 2 after end-turn, got %d", s.TurnNumber)
	}
}
