package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserStore persists accounts. Passwords are stored as bcrypt hashes only.
type UserStore struct {
	db   *sql.DB
	now  func() time.Time
	cost int
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db, now: time.Now, cost: bcrypt.DefaultCost}
}

func (s *UserStore) Create(ctx context.Context, username, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	u := &User{Username: username, PasswordHash: string(hash), CreatedAt: s.now().UTC()}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, created_at)
		 VALUES (?, ?, ?)
		 RETURNING id`,
		u.Username, u.PasswordHash, formatTime(u.CreatedAt),
	).Scan(&u.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("inserting user %q: %w", username, err)
	}
	return u, nil
}

func (s *UserStore) Get(ctx context.Context, id int64) (*User, error) {
	return s.scan(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.scan(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username))
}

// Authenticate returns the user when password matches the stored hash.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserStore) scan(row *sql.Row) (*User, error) {
	var (
		u         User
		createdAt string
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &u, nil
}
