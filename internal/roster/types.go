// Package roster provides the business logic for bulk participant onboarding:
// CSV ingestion and validation, dry-run preview, idempotent import, and
// balanced random assignment of delegates across groupings and parties.
// This package has no transport dependencies and talks to storage through
// the narrow interfaces in ports.go.
package roster

import "github.com/google/uuid"

// ParticipantKind selects which record shape a CSV import targets.
type ParticipantKind string

const (
	KindDelegate ParticipantKind = "delegate"
	KindStaff    ParticipantKind = "staff"
)

// Valid reports whether the kind is one of the two supported values.
func (k ParticipantKind) Valid() bool {
	return k == KindDelegate || k == KindStaff
}

// Delegate lifecycle statuses.
const (
	StatusPendingAssignment = "pending_assignment"
	StatusActive            = "active"
	StatusWithdrawn         = "withdrawn"
)

// Program assignment roles.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleDelegate = "delegate"
)

// ImportRow is one data row of a parsed CSV table. Number is 1-based with
// the header row counted as row 1, so the first data row is row 2.
type ImportRow struct {
	Number int
	Values map[string]string
}

// Get returns the trimmed value of the named column, or "" when absent.
func (r ImportRow) Get(col string) string {
	return r.Values[col]
}

// Issue is a single validation finding tied to a row and field.
type Issue struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RowCheck is the result of validating one row. Warnings do not make the
// row invalid; errors do.
type RowCheck struct {
	Valid    bool
	Errors   []Issue
	Warnings []Issue
}

// User is an identity record. Participants and parents all map to users.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

// Delegate is a program-year participant eligible for grouping/party
// assignment. GroupingID and PartyID are nil until the assignment engine
// places the delegate.
type Delegate struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ProgramYearID uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	GroupingID    *uuid.UUID
	PartyID       *uuid.UUID
	Status        string
}

// Assigned reports whether the delegate has both a grouping and a party.
// A delegate with only one of the two set still counts as unassigned.
func (d Delegate) Assigned() bool {
	return d.GroupingID != nil && d.PartyID != nil
}

// Staff is a program-year staff member.
type Staff struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ProgramYearID uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	Role          string
	GroupingID    *uuid.UUID
}

// Parent is a guardian record, created at most once per (program year, email).
type Parent struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ProgramYearID uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	Phone         string
}

// ProgramYear is one annual instance of a program.
type ProgramYear struct {
	ID          uuid.UUID
	ProgramID   uuid.UUID
	ProgramName string
	Year        int
}

// ProgramAssignment ties a user to a program with a role.
type ProgramAssignment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProgramID uuid.UUID
	Role      string
}

// GroupingActivation is an active program-year grouping row. Only rows
// whose grouping type is the designated assignment level participate in
// delegate balancing.
type GroupingActivation struct {
	GroupingID        uuid.UUID
	Name              string
	IsAssignmentLevel bool
}

// PartyActivation is an active program-year party row.
type PartyActivation struct {
	PartyID     uuid.UUID
	YearPartyID uuid.UUID
	Name        string
	Color       string
}

// ImportFailure records one row that could not be imported.
type ImportFailure struct {
	Row   int    `json:"row"`
	Email string `json:"email"`
	Error string `json:"error"`
}

// ImportOutcome aggregates counters across one import batch. There is no
// batch-level rollback; the counters reflect exactly what was committed.
type ImportOutcome struct {
	Success        int             `json:"success"`
	Failed         int             `json:"failed"`
	Skipped        int             `json:"skipped"`
	UsersCreated   int             `json:"usersCreated"`
	ParentsCreated int             `json:"parentsCreated"`
	EmailsSent     int             `json:"emailsSent"`
	EmailsFailed   int             `json:"emailsFailed"`
	Failures       []ImportFailure `json:"failures"`
}

// PreviewRow annotates one CSV row for operator review.
type PreviewRow struct {
	Row       int    `json:"row"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Status    string `json:"status"` // "new" or "existing"
	Valid     bool   `json:"valid"`
}

// PreviewResult is the read-only analysis of a CSV import.
type PreviewResult struct {
	TotalRows     int          `json:"totalRows"`
	ValidRows     int          `json:"validRows"`
	NewUsers      int          `json:"newUsers"`
	ExistingUsers int          `json:"existingUsers"`
	NewParents    int          `json:"newParents"`
	Errors        []Issue      `json:"errors"`
	Warnings      []Issue      `json:"warnings"`
	Preview       []PreviewRow `json:"preview"`
}

// Placement is one delegate's computed (grouping, party) assignment.
type Placement struct {
	DelegateID   uuid.UUID `json:"delegateId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	GroupingID   uuid.UUID `json:"groupingId"`
	GroupingName string    `json:"groupingName"`
	PartyID      uuid.UUID `json:"partyId"`
	PartyName    string    `json:"partyName"`
}

// GroupingLoad summarizes delegate load for one grouping after a run.
type GroupingLoad struct {
	GroupingID uuid.UUID `json:"groupingId"`
	Name       string    `json:"name"`
	Existing   int       `json:"existing"`
	Added      int       `json:"added"`
	Total      int       `json:"total"`
}

// PartyLoad summarizes delegate load for one party after a run.
type PartyLoad struct {
	PartyID  uuid.UUID `json:"partyId"`
	Name     string    `json:"name"`
	Existing int       `json:"existing"`
	Added    int       `json:"added"`
	Total    int       `json:"total"`
}

// AssignmentPreview is the simulate-mode result of the assignment engine.
// Assignments is capped at previewAssignmentCap entries; the load summaries
// always cover the full pool.
type AssignmentPreview struct {
	Unassigned  int            `json:"unassigned"`
	Assignments []Placement    `json:"assignments"`
	Groupings   []GroupingLoad `json:"groupings"`
	Parties     []PartyLoad    `json:"parties"`
}

// AssignmentResult is the commit-mode result of the assignment engine.
type AssignmentResult struct {
	Assigned  int             `json:"assigned"`
	Failed    int             `json:"failed"`
	Failures  []ImportFailure `json:"failures"`
	Groupings []GroupingLoad  `json:"groupings"`
	Parties   []PartyLoad     `json:"parties"`
}
