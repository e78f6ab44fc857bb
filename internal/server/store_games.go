package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/polis/internal/polis"
)

// GameStore keeps game snapshots as JSONB documents in the game_states table.
type GameStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewGameStore(db *sql.DB) *GameStore {
	return &GameStore{db: db, now: time.Now}
}

func (s *GameStore) Create(ctx context.Context, g *polis.GameState) (*GameStateRecord, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encoding game %s: %w", g.ID, err)
	}
	now := s.now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO game_states (id, user_id, data, created_at, updated_at)
		 VALUES (?, ?, jsonb(?), ?, ?)`,
		g.ID, g.UserID, string(data), formatTime(now), formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting game %s: %w", g.ID, err)
	}
	return &GameStateRecord{ID: g.ID, UserID: g.UserID, GameState: g, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *GameStore) Get(ctx context.Context, id string) (*GameStateRecord, error) {
	var (
		rec                  GameStateRecord
		data                 string
		createdAt, updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, json(data), created_at, updated_at FROM game_states WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.UserID, &data, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &rec.GameState); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", id, err)
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns the games owned by userID, or every game when userID is zero,
// most recently updated first.
func (s *GameStore) List(ctx context.Context, userID int64) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id,
		        json_extract(data, '$.playerCityState.name'),
		        json_extract(data, '$.turn'),
		        json_extract(data, '$.year'),
		        updated_at
		 FROM game_states
		 WHERE ? = 0 OR user_id = ?
		 ORDER BY updated_at DESC, id`,
		userID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []GameSummary{}
	for rows.Next() {
		var (
			g         GameSummary
			updatedAt string
		)
		if err := rows.Scan(&g.ID, &g.UserID, &g.City, &g.Turn, &g.Year, &updatedAt); err != nil {
			return nil, err
		}
		if g.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Update replaces the stored snapshot for g.ID.
func (s *GameStore) Update(ctx context.Context, g *polis.GameState) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.ID, err)
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE game_states SET data = jsonb(?), updated_at = ? WHERE id = ?`,
		string(data), formatTime(s.now().UTC()), g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating game %s: %w", g.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GameStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM game_states WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// timeLayout keeps a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
