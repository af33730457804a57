package roster

// importer.go replays validation per row and performs the actual
// create-or-link writes. Rows are processed strictly in order, one at a
// time, because each row's idempotency checks must observe the effects of
// the rows before it (two rows citing the same new parent must resolve to
// one parent record). There is no batch transaction; a row that fails
// leaves earlier rows committed, and re-submitting the same CSV converges
// via the existence checks.

import (
	"context"
	"fmt"
	"strings"

	"github.com/capitolyouth/admin/internal/access"
	"github.com/capitolyouth/admin/internal/logging"
	"github.com/google/uuid"
)

// rowResult is what one row's processing produced.
type rowResult struct {
	skipped      bool
	tempPassword string // non-empty when a user was created for the participant
	roleLabel    string
}

// ExecuteImport runs a CSV import batch. Preconditions match PreviewImport;
// sendEmails additionally triggers a welcome email for every row whose
// participant user was created. Email failures never fail the row.
func (s *Service) ExecuteImport(ctx context.Context, caller access.Caller, programYearID uuid.UUID, kind ParticipantKind, csvText string, sendEmails bool) (*ImportOutcome, error) {
	year, err := s.authorizeYear(ctx, caller, programYearID)
	if err != nil {
		return nil, err
	}

	table, err := parseSubmittedCsv(kind, csvText)
	if err != nil {
		return nil, err
	}

	refs, err := s.loadReferences(ctx, programYearID, table.Rows)
	if err != nil {
		return nil, err
	}

	log := logging.WithFields(ctx,
		"program_year", programYearID.String(),
		"kind", string(kind),
		"rows", len(table.Rows),
	)
	log.Info("import started")

	outcome := &ImportOutcome{Failures: []ImportFailure{}}

	for _, row := range table.Rows {
		email := strings.ToLower(strings.TrimSpace(row.Get(ColEmail)))

		check := validateRow(kind, row, refs)
		if !check.Valid {
			outcome.Failed++
			outcome.Failures = append(outcome.Failures, ImportFailure{
				Row:   row.Number,
				Email: email,
				Error: joinIssues(check.Errors),
			})
			continue
		}

		var res rowResult
		if kind == KindStaff {
			res, err = s.importStaffRow(ctx, year, row, email, refs, outcome)
		} else {
			res, err = s.importDelegateRow(ctx, year, row, email, outcome)
		}
		if err != nil {
			outcome.Failed++
			outcome.Failures = append(outcome.Failures, ImportFailure{
				Row:   row.Number,
				Email: email,
				Error: err.Error(),
			})
			log.Warn("row failed", "row", row.Number, "email", email, "error", err)
			continue
		}

		if res.skipped {
			outcome.Skipped++
			log.Debug("row skipped, record already exists", "row", row.Number, "email", email)
			continue
		}

		outcome.Success++
		log.Info("row imported", "row", row.Number, "email", email)

		if sendEmails && res.tempPassword != "" {
			sent, mailErr := s.mailer.SendWelcomeEmail(ctx, WelcomeEmail{
				ProgramID:    year.ProgramID,
				Email:        email,
				FirstName:    strings.TrimSpace(row.Get(ColFirstName)),
				LastName:     strings.TrimSpace(row.Get(ColLastName)),
				ProgramName:  year.ProgramName,
				Year:         year.Year,
				Kind:         kind,
				RoleLabel:    res.roleLabel,
				TempPassword: res.tempPassword,
			})
			if mailErr != nil || !sent {
				outcome.EmailsFailed++
				log.Warn("welcome email failed", "row", row.Number, "email", email, "error", mailErr)
			} else {
				outcome.EmailsSent++
			}
		}
	}

	log.Info("import finished",
		"success", outcome.Success,
		"failed", outcome.Failed,
		"skipped", outcome.Skipped,
		"users_created", outcome.UsersCreated,
		"parents_created", outcome.ParentsCreated,
	)
	return outcome, nil
}

// importDelegateRow creates or links everything one delegate row implies:
// user, delegate record, program assignment, and the optional parent block.
func (s *Service) importDelegateRow(ctx context.Context, year *ProgramYear, row ImportRow, email string, outcome *ImportOutcome) (rowResult, error) {
	user, tempPassword, err := s.ensureUser(ctx, email, outcome)
	if err != nil {
		return rowResult{}, err
	}

	existing, err := s.participants.FindDelegate(ctx, year.ID, email)
	if err != nil {
		return rowResult{}, fmt.Errorf("find delegate: %w", err)
	}
	if existing != nil {
		// Expected on re-submission, not an error.
		return rowResult{skipped: true}, nil
	}

	delegate, err := s.participants.CreateDelegate(ctx, CreateDelegateParams{
		UserID:        user.ID,
		ProgramYearID: year.ID,
		Email:         email,
		FirstName:     strings.TrimSpace(row.Get(ColFirstName)),
		LastName:      strings.TrimSpace(row.Get(ColLastName)),
		Phone:         strings.TrimSpace(row.Get(ColPhone)),
		Status:        StatusPendingAssignment,
	})
	if err != nil {
		return rowResult{}, fmt.Errorf("create delegate: %w", err)
	}

	if err := s.ensureAssignment(ctx, user.ID, year.ProgramID, RoleDelegate); err != nil {
		return rowResult{}, err
	}

	if parentEmail := strings.ToLower(strings.TrimSpace(row.Get(ColParentEmail))); parentEmail != "" {
		if err := s.ensureParentLink(ctx, year, row, delegate, parentEmail, outcome); err != nil {
			return rowResult{}, err
		}
	}

	return rowResult{tempPassword: tempPassword}, nil
}

// importStaffRow creates a staff record plus its user and program
// assignment. An unresolvable groupingName was already surfaced as a
// preview warning, so it resolves to no grouping here without comment.
func (s *Service) importStaffRow(ctx context.Context, year *ProgramYear, row ImportRow, email string, refs *ReferenceMaps, outcome *ImportOutcome) (rowResult, error) {
	user, tempPassword, err := s.ensureUser(ctx, email, outcome)
	if err != nil {
		return rowResult{}, err
	}

	existing, err := s.participants.FindStaff(ctx, year.ID, email)
	if err != nil {
		return rowResult{}, fmt.Errorf("find staff: %w", err)
	}
	if existing != nil {
		return rowResult{skipped: true}, nil
	}

	var groupingID *uuid.UUID
	if name := strings.TrimSpace(row.Get(ColGroupingName)); name != "" {
		if g, ok := refs.GroupingByName(name); ok {
			id := g.GroupingID
			groupingID = &id
		}
	}

	role := strings.ToLower(strings.TrimSpace(row.Get(ColRole)))
	if _, err := s.participants.CreateStaff(ctx, CreateStaffParams{
		UserID:        user.ID,
		ProgramYearID: year.ID,
		Email:         email,
		FirstName:     strings.TrimSpace(row.Get(ColFirstName)),
		LastName:      strings.TrimSpace(row.Get(ColLastName)),
		Phone:         strings.TrimSpace(row.Get(ColPhone)),
		Role:          role,
		GroupingID:    groupingID,
	}); err != nil {
		return rowResult{}, fmt.Errorf("create staff: %w", err)
	}

	assignmentRole := RoleStaff
	if role == StaffRoleDirector {
		assignmentRole = RoleAdmin
	}
	if err := s.ensureAssignment(ctx, user.ID, year.ProgramID, assignmentRole); err != nil {
		return rowResult{}, err
	}

	return rowResult{tempPassword: tempPassword, roleLabel: role}, nil
}

// ensureUser finds or creates the user for an email. When created, the user
// gets a hashed temporary password and the plaintext is returned so the
// caller can include it in a welcome email.
func (s *Service) ensureUser(ctx context.Context, email string, outcome *ImportOutcome) (*User, string, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if user != nil {
		return user, "", nil
	}

	tempPassword, err := s.passwords.GenerateTempPassword()
	if err != nil {
		return nil, "", fmt.Errorf("generate temp password: %w", err)
	}
	hash, err := s.passwords.Hash(tempPassword)
	if err != nil {
		return nil, "", fmt.Errorf("hash temp password: %w", err)
	}

	user, err = s.users.CreateUser(ctx, email, hash)
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	outcome.UsersCreated++
	return user, tempPassword, nil
}

// ensureAssignment creates the program assignment row if the user does not
// already have one for this program.
func (s *Service) ensureAssignment(ctx context.Context, userID, programID uuid.UUID, role string) error {
	existing, err := s.assignments.FindAssignment(ctx, userID, programID)
	if err != nil {
		return fmt.Errorf("find assignment: %w", err)
	}
	if existing != nil {
		return nil
	}
	if err := s.assignments.CreateAssignment(ctx, userID, programID, role); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// ensureParentLink creates-or-reuses the parent user and record, then links
// the delegate to it. Every create is preceded by an existence check so a
// second row citing the same parent reuses the first row's records.
func (s *Service) ensureParentLink(ctx context.Context, year *ProgramYear, row ImportRow, delegate *Delegate, parentEmail string, outcome *ImportOutcome) error {
	parent, err := s.parents.FindParent(ctx, year.ID, parentEmail)
	if err != nil {
		return fmt.Errorf("find parent: %w", err)
	}

	if parent == nil {
		parentUser, _, err := s.ensureUser(ctx, parentEmail, outcome)
		if err != nil {
			return err
		}

		parent, err = s.parents.CreateParent(ctx, CreateParentParams{
			UserID:        parentUser.ID,
			ProgramYearID: year.ID,
			Email:         parentEmail,
			FirstName:     strings.TrimSpace(row.Get(ColParentFirstName)),
			LastName:      strings.TrimSpace(row.Get(ColParentLastName)),
			Phone:         strings.TrimSpace(row.Get(ColParentPhone)),
		})
		if err != nil {
			return fmt.Errorf("create parent: %w", err)
		}
		outcome.ParentsCreated++
	}

	if err := s.parents.FindOrCreateLink(ctx, delegate.ID, parent.ID, year.ID); err != nil {
		return fmt.Errorf("link parent: %w", err)
	}
	return nil
}

// joinIssues flattens validation errors into one failure message.
func joinIssues(issues []Issue) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.Field + ": " + issue.Message
	}
	return strings.Join(parts, "; ")
}
