package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/polis/internal/handler/health"
	"github.com/playperu/polis/internal/polis"
)

func addRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	locks := newGameLocks()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Polis API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, d.Checks).Routes())

	r.Get("/api/catalog", handleCatalog(d.Engine.Catalog()))

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", handleRegister(d.Users))
		r.Post("/login", handleLogin(d.Users))
		r.Get("/{userID}", handleGetUser(d.Users))
	})

	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", handleListGames(d.Games))
		r.Post("/", handleCreateGame(d.Games, d.RNG, d.Now))

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", handleGetGame(d.Games))
			r.Delete("/", handleDeleteGame(d.Games, locks))
			r.Get("/history", handleHistory(d.Games))
			r.Get("/events", handleGameEvents(d.Games))

			r.Post("/turn", handleAction(d.Games, locks, endTurn(d.Engine)))
			r.Post("/build", handleAction(d.Games, locks, buildStructure))
			r.Post("/train", handleAction(d.Games, locks, trainUnits))
			r.Post("/festival", handleAction(d.Games, locks, holdFestival))
			r.Post("/tax", handleAction(d.Games, locks, setTaxRate))
			r.Post("/government", handleAction(d.Games, locks, changeGovernment))
			r.Post("/policies", handleAction(d.Games, locks, addPolicy))
			r.Delete("/policies/{policyID}", handleAction(d.Games, locks, removePolicy))
			r.Post("/war", handleAction(d.Games, locks, diplomacy(polis.DeclareWar)))
			r.Post("/peace", handleAction(d.Games, locks, diplomacy(polis.MakePeace)))
			r.Post("/trade", handleAction(d.Games, locks, establishTrade))
			r.Post("/events/{eventID}/choice", handleAction(d.Games, locks, applyChoice))
		})
	})

	r.Route("/api/multiplayer", func(r chi.Router) {
		r.Post("/", handleCreateSession(d.Sessions, d.Games))
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", handleGetSession(d.Sessions))
			r.Get("/turn", handleSessionTurn(d.Sessions))
			r.Post("/join", handleJoinSession(d.Sessions))
			r.Post("/end-turn", handleEndSessionTurn(d.Sessions))
			r.Post("/actions", handlePlayerOp(useAction(d.Sessions)))
			r.Post("/disconnect", handlePlayerOp(disconnect(d.Sessions)))
			r.Get("/events", handleSessionEvents(d.Sessions, d.Broker))
			r.Get("/ws", handleSessionSocket(logger, d.Sessions, d.Broker))
		})
	})

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}
