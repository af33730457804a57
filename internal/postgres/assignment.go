package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/capitolyouth/admin/internal/roster"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FindAssignment looks up a user's role assignment on a program.
// Returns (nil, nil) when no assignment exists.
func (s *Store) FindAssignment(ctx context.Context, userID, programID uuid.UUID) (*roster.ProgramAssignment, error) {
	const q = `
		SELECT id, user_id, program_id, role
		FROM program_assignments
		WHERE user_id = $1 AND program_id = $2`

	var a roster.ProgramAssignment
	err := s.db.QueryRow(ctx, q, userID, programID).Scan(&a.ID, &a.UserID, &a.ProgramID, &a.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return &a, nil
}

// CreateAssignment inserts a program role assignment for a user.
func (s *Store) CreateAssignment(ctx context.Context, userID, programID uuid.UUID, role string) error {
	const q = `
		INSERT INTO program_assignments (id, user_id, program_id, role, created_at)
		VALUES ($1, $2, $3, $4, now())`

	if _, err := s.db.Exec(ctx, q, uuid.New(), userID, programID, role); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}
