package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/capitolyouth/admin/internal/roster"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FindUserByEmail looks up a user by email, case-insensitively.
// Returns (nil, nil) when no user exists.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*roster.User, error) {
	const q = `
		SELECT id, email, password_hash
		FROM users
		WHERE lower(email) = $1`

	var u roster.User
	err := s.db.QueryRow(ctx, q, strings.ToLower(email)).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user with a hashed password.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (*roster.User, error) {
	const q = `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, email, password_hash`

	var u roster.User
	err := s.db.QueryRow(ctx, q, uuid.New(), strings.ToLower(email), passwordHash).
		Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}
