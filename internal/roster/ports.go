package roster

// ports.go declares the collaborator interfaces the pipeline depends on.
// Postgres implementations live in internal/postgres; tests supply
// in-memory fakes. Finders return (nil, nil) when no record matches so
// that absence is not an error path.

import (
	"context"

	"github.com/google/uuid"
)

// IdentityStore persists user identities.
type IdentityStore interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)
}

// CreateDelegateParams carries the fields for a new delegate record.
// Grouping and party are always unset at creation; the assignment engine
// populates them later.
type CreateDelegateParams struct {
	UserID        uuid.UUID
	ProgramYearID uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	Status        string
}

// CreateStaffParams carries the fields for a new staff record.
type CreateStaffParams struct {
	UserID        uuid.UUID
	ProgramYearID uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	Role          string
	GroupingID    *uuid.UUID
}

// ParticipantStore persists delegates and staff.
type ParticipantStore interface {
	FindDelegate(ctx context.Context, programYearID uuid.UUID, email string) (*Delegate, error)
	CreateDelegate(ctx context.Context, p CreateDelegateParams) (*Delegate, error)
	// ListDelegates returns every delegate for the program year regardless
	// of status; the assignment engine filters withdrawn ones itself.
	ListDelegates(ctx context.Context, programYearID uuid.UUID) ([]Delegate, error)
	// UpdateDelegatePlacement sets grouping, party, and status in one write.
	UpdateDelegatePlacement(ctx context.Context, delegateID, groupingID, partyID uuid.UUID, status string) error
	FindStaff(ctx context.Context, programYearID uuid.UUID, email string) (*Staff, error)
	CreateStaff(ctx context.Context, p CreateStaffParams) (*Staff, error)
}

// CreateParentParams carries the fields for a new parent record.
type CreateParentParams struct {
	UserID        uuid.UUID
	ProgramYearID uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	Phone         string
}

// ParentStore persists parents and delegate-parent links.
type ParentStore interface {
	FindParent(ctx context.Context, programYearID uuid.UUID, email string) (*Parent, error)
	CreateParent(ctx context.Context, p CreateParentParams) (*Parent, error)
	// FindOrCreateLink is idempotent: a (delegate, parent) link is created
	// at most once.
	FindOrCreateLink(ctx context.Context, delegateID, parentID, programYearID uuid.UUID) error
}

// AssignmentStore persists program-level role assignments.
type AssignmentStore interface {
	FindAssignment(ctx context.Context, userID, programID uuid.UUID) (*ProgramAssignment, error)
	CreateAssignment(ctx context.Context, userID, programID uuid.UUID, role string) error
}

// ReferenceStore loads program-year-scoped lookup data.
type ReferenceStore interface {
	FindProgramYear(ctx context.Context, programYearID uuid.UUID) (*ProgramYear, error)
	ListActiveGroupings(ctx context.Context, programYearID uuid.UUID) ([]GroupingActivation, error)
	ListActiveParties(ctx context.Context, programYearID uuid.UUID) ([]PartyActivation, error)
	// FilterKnownEmails returns the subset of the given emails that already
	// exist in the user table. Comparison is case-insensitive.
	FilterKnownEmails(ctx context.Context, emails []string) (map[string]struct{}, error)
}

// PasswordHasher generates and hashes temporary credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	GenerateTempPassword() (string, error)
}

// WelcomeEmail carries everything the mailer needs for one welcome message.
type WelcomeEmail struct {
	ProgramID    uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	ProgramName  string
	Year         int
	Kind         ParticipantKind
	RoleLabel    string
	TempPassword string
}

// Mailer sends welcome emails. A false return or an error both mean the
// message was not delivered; neither affects the owning row's outcome.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, msg WelcomeEmail) (bool, error)
}
