package multiplayer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/polis/internal/polis"
)

const (
	DefaultMaxActions    = 3
	DefaultTurnTimeLimit = 120 * time.Second
	DefaultTTL           = 24 * time.Hour
)

// Manager applies turn-sequencing operations to sessions held in a Repository.
// Every operation is a read-modify-write under one lock.
type Manager struct {
	mu sync.Mutex

	repo       Repository
	log        *slog.Logger
	now        func() time.Time
	maxActions int
	turnLimit  time.Duration
	ttl        time.Duration
	notify     func(*Session)
}

type Option func(*Manager)

func WithLogger(l *slog.Logger) Option { return func(m *Manager) { m.log = l } }

func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

func WithMaxActions(n int) Option { return func(m *Manager) { m.maxActions = n } }

func WithTurnTimeLimit(d time.Duration) Option { return func(m *Manager) { m.turnLimit = d } }

// WithTTL sets how long an untouched session survives the sweep.
func WithTTL(d time.Duration) Option { return func(m *Manager) { m.ttl = d } }

// WithNotify registers a callback that receives every changed session.
func WithNotify(fn func(*Session)) Option { return func(m *Manager) { m.notify = fn } }

func NewManager(repo Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:       repo,
		log:        slog.Default(),
		now:        time.Now,
		maxActions: DefaultMaxActions,
		turnLimit:  DefaultTurnTimeLimit,
		ttl:        DefaultTTL,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) MaxActions() int { return m.maxActions }

// Create opens a session with the host as its only player, holding the turn.
func (m *Manager) Create(ctx context.Context, gameStateID string, hostID int64, username string, city polis.CityName) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := &Session{
		ID:          uuid.NewString(),
		GameStateID: gameStateID,
		Players: []Player{{
			ID:               hostID,
			Username:         username,
			CityState:        city,
			IsCurrentTurn:    true,
			ActionsRemaining: m.maxActions,
			IsConnected:      true,
			LastActive:       now,
		}},
		TurnNumber:           1,
		TurnTimeLimit:        int(m.turnLimit / time.Second),
		CurrentTurnStartedAt: now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	m.log.Info("session created", "session_id", s.ID, "game_id", gameStateID, "host", hostID)
	return s, nil
}

// Join adds a player, or reconnects one already in the session.
func (m *Manager) Join(ctx context.Context, id string, userID int64, username string, city polis.CityName) (*Session, error) {
	return m.update(ctx, id, func(s *Session, now time.Time) error {
		if i := s.player(userID); i >= 0 {
			s.Players[i].IsConnected = true
			s.Players[i].LastActive = now
			return nil
		}
		s.Players = append(s.Players, Player{
			ID:               userID,
			Username:         username,
			CityState:        city,
			ActionsRemaining: m.maxActions,
			IsConnected:      true,
			LastActive:       now,
		})
		return nil
	})
}

// EndTurn passes the turn to the next connected player after the current
// one, wrapping around. When nobody is connected the current player keeps it.
func (m *Manager) EndTurn(ctx context.Context, id string) (*Session, error) {
	return m.update(ctx, id, m.endTurn)
}

func (m *Manager) endTurn(s *Session, now time.Time) error {
	cur := s.current()
	if cur < 0 {
		return ErrNoCurrentPlayer
	}
	s.Players[cur].IsCurrentTurn = false
	s.Players[cur].ActionsRemaining = m.maxActions

	n := len(s.Players)
	for step := 1; step <= n; step++ {
		next := (cur + step) % n
		if s.Players[next].IsConnected {
			s.Players[next].IsCurrentTurn = true
			s.TurnNumber++
			s.CurrentTurnStartedAt = now
			return nil
		}
	}
	s.Players[cur].IsCurrentTurn = true
	return nil
}

// UseAction spends one of the current player's actions.
func (m *Manager) UseAction(ctx context.Context, id string, userID int64) (*Session, error) {
	return m.update(ctx, id, func(s *Session, now time.Time) error {
		i := s.player(userID)
		switch {
		case i < 0:
			return ErrPlayerNotFound
		case !s.Players[i].IsCurrentTurn:
			return ErrNotYourTurn
		case s.Players[i].ActionsRemaining <= 0:
			return ErrNoActionsLeft
		}
		s.Players[i].ActionsRemaining--
		s.Players[i].LastActive = now
		return nil
	})
}

// Disconnect marks a player offline, ending their turn if they held it.
func (m *Manager) Disconnect(ctx context.Context, id string, userID int64) (*Session, error) {
	return m.update(ctx, id, func(s *Session, now time.Time) error {
		i := s.player(userID)
		if i < 0 {
			return ErrPlayerNotFound
		}
		s.Players[i].IsConnected = false
		if s.Players[i].IsCurrentTurn {
			return m.endTurn(s, now)
		}
		return nil
	})
}

func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.repo.Get(ctx, id)
}

func (m *Manager) IsPlayerTurn(ctx context.Context, id string, userID int64) bool {
	s, err := m.repo.Get(ctx, id)
	if err != nil {
		return false
	}
	i := s.player(userID)
	return i >= 0 && s.Players[i].IsCurrentTurn
}

func (m *Manager) ActionsRemaining(ctx context.Context, id string, userID int64) int {
	s, err := m.repo.Get(ctx, id)
	if err != nil {
		return 0
	}
	if i := s.player(userID); i >= 0 {
		return s.Players[i].ActionsRemaining
	}
	return 0
}

// Cleanup deletes sessions untouched for longer than the TTL.
func (m *Manager) Cleanup(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.repo.DeleteStale(ctx, m.now().Add(-m.ttl))
	if err != nil {
		return 0, fmt.Errorf("sweeping sessions: %w", err)
	}
	if n > 0 {
		m.log.Info("stale sessions removed", "count", n)
	}
	return n, nil
}

// Run sweeps stale sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := m.Cleanup(ctx); err != nil {
				m.log.Error("session sweep failed", "error", err)
			}
		}
	}
}

func (m *Manager) update(ctx context.Context, id string, fn func(*Session, time.Time) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := m.now()
	if err := fn(s, now); err != nil {
		return nil, err
	}
	s.UpdatedAt = now
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) save(ctx context.Context, s *Session) error {
	if err := m.repo.Put(ctx, s); err != nil {
		return fmt.Errorf("saving session %s: %w", s.ID, err)
	}
	if m.notify != nil {
		m.notify(s.Clone())
	}
	return nil
}
