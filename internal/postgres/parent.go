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

const parentColumns = `id, user_id, program_year_id, email, first_name, last_name, phone`

// FindParent looks up a parent by program year and email.
// Returns (nil, nil) when no record exists.
func (s *Store) FindParent(ctx context.Context, programYearID uuid.UUID, email string) (*roster.Parent, error) {
	q := `
		SELECT ` + parentColumns + `
		FROM parents
		WHERE program_year_id = $1 AND lower(email) = $2`

	var p roster.Parent
	err := s.db.QueryRow(ctx, q, programYearID, strings.ToLower(email)).Scan(
		&p.ID, &p.UserID, &p.ProgramYearID, &p.Email, &p.FirstName, &p.LastName, &p.Phone,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find parent: %w", err)
	}
	return &p, nil
}

// CreateParent inserts a new parent record.
func (s *Store) CreateParent(ctx context.Context, params roster.CreateParentParams) (*roster.Parent, error) {
	q := `
		INSERT INTO parents (id, user_id, program_year_id, email, first_name, last_name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING ` + parentColumns

	var p roster.Parent
	err := s.db.QueryRow(ctx, q,
		uuid.New(), params.UserID, params.ProgramYearID, strings.ToLower(params.Email),
		params.FirstName, params.LastName, params.Phone,
	).Scan(
		&p.ID, &p.UserID, &p.ProgramYearID, &p.Email, &p.FirstName, &p.LastName, &p.Phone,
	)
	if err != nil {
		return nil, fmt.Errorf("create parent: %w", err)
	}
	return &p, nil
}

// FindOrCreateLink creates the (delegate, parent) link unless it already
// exists. ON CONFLICT DO NOTHING makes the call idempotent under retries.
func (s *Store) FindOrCreateLink(ctx context.Context, delegateID, parentID, programYearID uuid.UUID) error {
	const q = `
		INSERT INTO delegate_parents (id, delegate_id, parent_id, program_year_id, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (delegate_id, parent_id) DO NOTHING`

	if _, err := s.db.Exec(ctx, q, uuid.New(), delegateID, parentID, programYearID); err != nil {
		return fmt.Errorf("create delegate-parent link: %w", err)
	}
	return nil
}
