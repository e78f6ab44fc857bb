package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/polis/internal/database"
	"github.com/playperu/polis/internal/engine"
	"github.com/playperu/polis/internal/events"
	"github.com/playperu/polis/internal/handler/health"
	"github.com/playperu/polis/internal/migrations"
	"github.com/playperu/polis/internal/multiplayer"
	"github.com/playperu/polis/internal/polis"
	"github.com/playperu/polis/internal/polis/polistest"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupStores opens a migrated in-memory database.
func setupStores(t *testing.T) (*GameStore, *UserStore) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	games := NewGameStore(db)
	users := NewUserStore(db)
	users.cost = bcrypt.MinCost
	return games, users
}

// testDeps wires the full router over in-memory stores. The engine never
// rolls a probabilistic branch, so turns are deterministic.
func testDeps(t *testing.T) Deps {
	t.Helper()
	games, users := setupStores(t)

	catalog, err := events.Builtin()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	broker := NewBroker()
	sessions := multiplayer.NewManager(multiplayer.NewMemoryRepository(),
		multiplayer.WithLogger(discardLogger()),
		multiplayer.WithNotify(broker.Publish),
	)
	return Deps{
		Games:    games,
		Users:    users,
		Engine:   engine.New(catalog, polistest.Never(), engine.WithLogger(discardLogger())),
		Sessions: sessions,
		Broker:   broker,
		RNG:      polis.Locked(polis.NewRand(7)),
		Now:      func() time.Time { return testNow },
		Checks:   map[string]health.Checker{"sqlite": health.CheckerFunc(func(context.Context) error { return nil })},
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(discardLogger(), testDeps(t))
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding %s: %v", w.Body.String(), err)
	}
	return v
}

// newGame creates an Athenian democracy for user 1 and returns its id.
func newGame(t *testing.T, h http.Handler) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/games", CreateGameRequest{
		UserID:     1,
		CityState:  polis.Athens,
		Government: polis.Democracy,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decodeBody[GameStateRecord](t, w).ID
}

func TestHealthz(t *testing.T) {
	w := do(t, testRouter(t), http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	d := testDeps(t)
	d.SPADir = t.TempDir()
	h := NewRouter(discardLogger(), d)

	w := do(t, h, http.MethodGet, "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("content-type = %q, want JSON", got)
	}
}
