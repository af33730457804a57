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

// FindProgramYear loads one program year with its owning program's name.
// Returns (nil, nil) when the id does not resolve.
func (s *Store) FindProgramYear(ctx context.Context, programYearID uuid.UUID) (*roster.ProgramYear, error) {
	const q = `
		SELECT py.id, py.program_id, p.name, py.year
		FROM program_years py
		JOIN programs p ON p.id = py.program_id
		WHERE py.id = $1`

	var y roster.ProgramYear
	err := s.db.QueryRow(ctx, q, programYearID).Scan(&y.ID, &y.ProgramID, &y.ProgramName, &y.Year)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find program year: %w", err)
	}
	return &y, nil
}

// ListActiveGroupings returns the grouping activation rows for a program
// year in activation order, with the assignment-level flag taken from the
// grouping's type. Duplicate activation rows are returned as stored; the
// caller deduplicates.
func (s *Store) ListActiveGroupings(ctx context.Context, programYearID uuid.UUID) ([]roster.GroupingActivation, error) {
	const q = `
		SELECT g.id, g.name, gt.is_required
		FROM program_year_groupings pyg
		JOIN groupings g ON g.id = pyg.grouping_id
		JOIN grouping_types gt ON gt.id = g.grouping_type_id
		WHERE pyg.program_year_id = $1 AND pyg.active
		ORDER BY pyg.created_at, pyg.id`

	rows, err := s.db.Query(ctx, q, programYearID)
	if err != nil {
		return nil, fmt.Errorf("list active groupings: %w", err)
	}
	defer rows.Close()

	var activations []roster.GroupingActivation
	for rows.Next() {
		var a roster.GroupingActivation
		if err := rows.Scan(&a.GroupingID, &a.Name, &a.IsAssignmentLevel); err != nil {
			return nil, fmt.Errorf("scan grouping activation: %w", err)
		}
		activations = append(activations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active groupings rows: %w", err)
	}
	return activations, nil
}

// ListActiveParties returns the party activation rows for a program year in
// activation order. Duplicate rows are returned as stored; the caller
// deduplicates.
func (s *Store) ListActiveParties(ctx context.Context, programYearID uuid.UUID) ([]roster.PartyActivation, error) {
	const q = `
		SELECT p.id, pyp.id, p.name, p.color
		FROM program_year_parties pyp
		JOIN parties p ON p.id = pyp.party_id
		WHERE pyp.program_year_id = $1 AND pyp.active
		ORDER BY pyp.created_at, pyp.id`

	rows, err := s.db.Query(ctx, q, programYearID)
	if err != nil {
		return nil, fmt.Errorf("list active parties: %w", err)
	}
	defer rows.Close()

	var activations []roster.PartyActivation
	for rows.Next() {
		var a roster.PartyActivation
		if err := rows.Scan(&a.PartyID, &a.YearPartyID, &a.Name, &a.Color); err != nil {
			return nil, fmt.Errorf("scan party activation: %w", err)
		}
		activations = append(activations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active parties rows: %w", err)
	}
	return activations, nil
}

// FilterKnownEmails returns the subset of the given emails that already
// exist in the user table. One batched query regardless of input size.
func (s *Store) FilterKnownEmails(ctx context.Context, emails []string) (map[string]struct{}, error) {
	known := make(map[string]struct{})
	if len(emails) == 0 {
		return known, nil
	}

	lowered := make([]string, len(emails))
	for i, e := range emails {
		lowered[i] = strings.ToLower(e)
	}

	const q = `SELECT lower(email) FROM users WHERE lower(email) = ANY($1)`

	rows, err := s.db.Query(ctx, q, lowered)
	if err != nil {
		return nil, fmt.Errorf("filter known emails: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		known[e] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("filter known emails rows: %w", err)
	}
	return known, nil
}
