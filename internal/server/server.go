package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/playperu/polis/internal/engine"
	"github.com/playperu/polis/internal/handler/health"
	"github.com/playperu/polis/internal/multiplayer"
	"github.com/playperu/polis/internal/polis"
)

// Deps are the collaborators the HTTP layer routes to.
type Deps struct {
	Games    *GameStore
	Users    *UserStore
	Engine   *engine.Engine
	Sessions *multiplayer.Manager
	Broker   *Broker
	// RNG seeds new games. It must be safe for concurrent use.
	RNG    polis.Rand
	Now    func() time.Time
	Checks map[string]health.Checker
	SPADir string
}

type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

func New(addr string, logger *slog.Logger, d Deps) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(logger, d),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter builds the full HTTP handler with its middleware stack.
func NewRouter(logger *slog.Logger, d Deps) http.Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Broker == nil {
		d.Broker = NewBroker()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))

	addRoutes(r, logger, d)
	return r
}

func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	s.logger.Info("http server listening", "addr", ln.Addr().String())

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
