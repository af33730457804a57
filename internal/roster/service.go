package roster

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/capitolyouth/admin/internal/access"
	"github.com/google/uuid"
)

// Service wires the onboarding pipeline to its collaborators.
type Service struct {
	users        IdentityStore
	participants ParticipantStore
	parents      ParentStore
	assignments  AssignmentStore
	refs         ReferenceStore
	passwords    PasswordHasher
	mailer       Mailer

	// shuffle randomizes the unassigned delegate order before balancing.
	// Overridable so tests can fix the permutation.
	shuffle func(n int, swap func(i, j int))
}

// Deps bundles the collaborators for NewService.
type Deps struct {
	Users        IdentityStore
	Participants ParticipantStore
	Parents      ParentStore
	Assignments  AssignmentStore
	Refs         ReferenceStore
	Passwords    PasswordHasher
	Mailer       Mailer
}

// NewService creates a Service instance.
func NewService(d Deps) *Service {
	return &Service{
		users:        d.Users,
		participants: d.Participants,
		parents:      d.Parents,
		assignments:  d.Assignments,
		refs:         d.Refs,
		passwords:    d.Passwords,
		mailer:       d.Mailer,
		shuffle:      rand.Shuffle,
	}
}

// authorizeYear resolves the program year and verifies the caller holds the
// admin role on the owning program. Every pipeline operation starts here so
// authorization failures abort before any row is touched.
func (s *Service) authorizeYear(ctx context.Context, caller access.Caller, programYearID uuid.UUID) (*ProgramYear, error) {
	year, err := s.refs.FindProgramYear(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("find program year: %w", err)
	}
	if year == nil {
		return nil, NotFound("program year %s not found", programYearID)
	}

	assignment, err := s.assignments.FindAssignment(ctx, caller.UserID, year.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("find caller assignment: %w", err)
	}
	if assignment == nil || assignment.Role != RoleAdmin {
		return nil, Forbidden("caller is not an admin of this program")
	}

	return year, nil
}

// parseSubmittedCsv applies the shared input preconditions: non-empty text,
// a supported kind, and at least one data row after parsing.
func parseSubmittedCsv(kind ParticipantKind, csvText string) (CsvTable, error) {
	if !kind.Valid() {
		return CsvTable{}, BadRequest("kind must be %q or %q", KindDelegate, KindStaff)
	}
	if strings.TrimSpace(csvText) == "" {
		return CsvTable{}, BadRequest("csv text is required")
	}

	table := ParseCsvTable(csvText)
	if len(table.Rows) == 0 {
		return CsvTable{}, BadRequest("csv contains no data rows")
	}
	return table, nil
}

// validateRow dispatches to the kind-specific validator.
func validateRow(kind ParticipantKind, row ImportRow, refs *ReferenceMaps) RowCheck {
	if kind == KindStaff {
		return ValidateStaffRow(row, refs)
	}
	return ValidateDelegateRow(row)
}

// ListGroupings returns the active assignment-level groupings for a year.
func (s *Service) ListGroupings(ctx context.Context, caller access.Caller, programYearID uuid.UUID) ([]GroupingActivation, error) {
	if _, err := s.authorizeYear(ctx, caller, programYearID); err != nil {
		return nil, err
	}
	refs, err := s.loadReferences(ctx, programYearID, nil)
	if err != nil {
		return nil, err
	}
	return refs.Groupings, nil
}

// ListParties returns the active parties for a year.
func (s *Service) ListParties(ctx context.Context, caller access.Caller, programYearID uuid.UUID) ([]PartyActivation, error) {
	if _, err := s.authorizeYear(ctx, caller, programYearID); err != nil {
		return nil, err
	}
	refs, err := s.loadReferences(ctx, programYearID, nil)
	if err != nil {
		return nil, err
	}
	return refs.Parties, nil
}
