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

const delegateColumns = `id, user_id, program_year_id, email, first_name, last_name, phone, grouping_id, party_id, status`

// FindDelegate looks up a delegate by program year and email.
// Returns (nil, nil) when no delegate exists.
func (s *Store) FindDelegate(ctx context.Context, programYearID uuid.UUID, email string) (*roster.Delegate, error) {
	q := `
		SELECT ` + delegateColumns + `
		FROM delegates
		WHERE program_year_id = $1 AND lower(email) = $2`

	var d roster.Delegate
	err := s.db.QueryRow(ctx, q, programYearID, strings.ToLower(email)).Scan(
		&d.ID, &d.UserID, &d.ProgramYearID, &d.Email, &d.FirstName, &d.LastName,
		&d.Phone, &d.GroupingID, &d.PartyID, &d.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find delegate: %w", err)
	}
	return &d, nil
}

// CreateDelegate inserts a new delegate. Grouping and party start unset.
func (s *Store) CreateDelegate(ctx context.Context, p roster.CreateDelegateParams) (*roster.Delegate, error) {
	q := `
		INSERT INTO delegates (id, user_id, program_year_id, email, first_name, last_name, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING ` + delegateColumns

	var d roster.Delegate
	err := s.db.QueryRow(ctx, q,
		uuid.New(), p.UserID, p.ProgramYearID, strings.ToLower(p.Email),
		p.FirstName, p.LastName, p.Phone, p.Status,
	).Scan(
		&d.ID, &d.UserID, &d.ProgramYearID, &d.Email, &d.FirstName, &d.LastName,
		&d.Phone, &d.GroupingID, &d.PartyID, &d.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("create delegate: %w", err)
	}
	return &d, nil
}

// ListDelegates returns every delegate for the program year.
func (s *Store) ListDelegates(ctx context.Context, programYearID uuid.UUID) ([]roster.Delegate, error) {
	q := `
		SELECT ` + delegateColumns + `
		FROM delegates
		WHERE program_year_id = $1
		ORDER BY created_at`

	rows, err := s.db.Query(ctx, q, programYearID)
	if err != nil {
		return nil, fmt.Errorf("list delegates: %w", err)
	}
	defer rows.Close()

	var delegates []roster.Delegate
	for rows.Next() {
		var d roster.Delegate
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ProgramYearID, &d.Email, &d.FirstName, &d.LastName,
			&d.Phone, &d.GroupingID, &d.PartyID, &d.Status,
		); err != nil {
			return nil, fmt.Errorf("scan delegate: %w", err)
		}
		delegates = append(delegates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list delegates rows: %w", err)
	}
	return delegates, nil
}

// UpdateDelegatePlacement sets grouping, party, and status in one write.
func (s *Store) UpdateDelegatePlacement(ctx context.Context, delegateID, groupingID, partyID uuid.UUID, status string) error {
	const q = `
		UPDATE delegates
		SET grouping_id = $2, party_id = $3, status = $4, updated_at = now()
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, q, delegateID, groupingID, partyID, status)
	if err != nil {
		return fmt.Errorf("update delegate placement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update delegate placement: delegate %s not found", delegateID)
	}
	return nil
}

const staffColumns = `id, user_id, program_year_id, email, first_name, last_name, phone, role, grouping_id`

// FindStaff looks up a staff member by program year and email.
// Returns (nil, nil) when no record exists.
func (s *Store) FindStaff(ctx context.Context, programYearID uuid.UUID, email string) (*roster.Staff, error) {
	q := `
		SELECT ` + staffColumns + `
		FROM staff
		WHERE program_year_id = $1 AND lower(email) = $2`

	var st roster.Staff
	err := s.db.QueryRow(ctx, q, programYearID, strings.ToLower(email)).Scan(
		&st.ID, &st.UserID, &st.ProgramYearID, &st.Email, &st.FirstName, &st.LastName,
		&st.Phone, &st.Role, &st.GroupingID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find staff: %w", err)
	}
	return &st, nil
}

// CreateStaff inserts a new staff member.
func (s *Store) CreateStaff(ctx context.Context, p roster.CreateStaffParams) (*roster.Staff, error) {
	q := `
		INSERT INTO staff (id, user_id, program_year_id, email, first_name, last_name, phone, role, grouping_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		RETURNING ` + staffColumns

	var st roster.Staff
	err := s.db.QueryRow(ctx, q,
		uuid.New(), p.UserID, p.ProgramYearID, strings.ToLower(p.Email),
		p.FirstName, p.LastName, p.Phone, p.Role, p.GroupingID,
	).Scan(
		&st.ID, &st.UserID, &st.ProgramYearID, &st.Email, &st.FirstName, &st.LastName,
		&st.Phone, &st.Role, &st.GroupingID,
	)
	if err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}
	return &st, nil
}
