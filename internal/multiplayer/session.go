// Package multiplayer sequences turns between players sharing one game.
// It only tracks whose turn it is and how many actions remain; it does not
// enforce game rules or the turn time limit.
package multiplayer

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/playperu/polis/internal/polis"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrPlayerNotFound  = errors.New("player not in session")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrNoActionsLeft   = errors.New("no actions left this turn")
	ErrNoCurrentPlayer = errors.New("no player holds the turn")
)

type Player struct {
	ID               int64          `json:"id"`
	Username         string         `json:"username"`
	CityState        polis.CityName `json:"cityState"`
	IsCurrentTurn    bool           `json:"isCurrentTurn"`
	ActionsRemaining int            `json:"actionsRemaining"`
	IsConnected      bool           `json:"isConnected"`
	LastActive       time.Time      `json:"lastActive"`
}

type Session struct {
	ID                   string    `json:"id"`
	GameStateID          string    `json:"gameStateId"`
	Players              []Player  `json:"players"`
	TurnNumber           int       `json:"turnNumber"`
	TurnTimeLimit        int       `json:"turnTimeLimit"` // seconds
	CurrentTurnStartedAt time.Time `json:"currentTurnStartedAt"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (s *Session) Clone() *Session {
	out := *s
	out.Players = slices.Clone(s.Players)
	return &out
}

func (s *Session) player(id int64) int {
	return slices.IndexFunc(s.Players, func(p Player) bool { return p.ID == id })
}

func (s *Session) current() int {
	return slices.IndexFunc(s.Players, func(p Player) bool { return p.IsCurrentTurn })
}

// Current returns the player holding the turn, if any.
func (s *Session) Current() (Player, bool) {
	if i := s.current(); i >= 0 {
		return s.Players[i], true
	}
	return Player{}, false
}

// Repository stores session snapshots. Implementations must copy on the way
// in and out so callers never share memory with the store.
type Repository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	// DeleteStale removes sessions last updated before cutoff.
	DeleteStale(ctx context.Context, cutoff time.Time) (int, error)
}
