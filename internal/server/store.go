package server

import (
	"errors"
	"time"

	"github.com/playperu/polis/internal/polis"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// GameStateRecord is a stored game. The engine treats GameState as an opaque
// snapshot; the record adds ownership and storage timestamps.
type GameStateRecord struct {
	ID        string           `json:"id"`
	UserID    int64            `json:"userId"`
	GameState *polis.GameState `json:"gameState"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// GameSummary is the list view of a stored game.
type GameSummary struct {
	ID        string         `json:"id"`
	UserID    int64          `json:"userId"`
	City      polis.CityName `json:"cityState"`
	Turn      int            `json:"turn"`
	Year      int            `json:"year"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
