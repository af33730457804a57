package roster

// preview.go runs validation over every row without touching storage so an
// operator can review errors, warnings, and counts before committing.

import (
	"context"
	"strings"

	"github.com/capitolyouth/admin/internal/access"
	"github.com/google/uuid"
)

// previewRowCap is the hard limit on rows returned for UI display. Summary
// counters always cover the whole file.
const previewRowCap = 100

// PreviewImport performs a read-only dry run of a CSV import.
//
// Note on newParents: it counts valid delegate rows whose parentEmail is not
// yet a known user, per row occurrence. Two rows citing the same new parent
// email both count; the importer is where deduplication actually happens.
func (s *Service) PreviewImport(ctx context.Context, caller access.Caller, programYearID uuid.UUID, kind ParticipantKind, csvText string) (*PreviewResult, error) {
	if _, err := s.authorizeYear(ctx, caller, programYearID); err != nil {
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

	result := &PreviewResult{
		TotalRows: len(table.Rows),
		Errors:    []Issue{},
		Warnings:  []Issue{},
		Preview:   []PreviewRow{},
	}

	for _, row := range table.Rows {
		check := validateRow(kind, row, refs)
		result.Errors = append(result.Errors, check.Errors...)
		result.Warnings = append(result.Warnings, check.Warnings...)

		email := strings.ToLower(strings.TrimSpace(row.Get(ColEmail)))
		existing := refs.EmailKnown(email)

		if check.Valid {
			result.ValidRows++
			if existing {
				result.ExistingUsers++
			} else {
				result.NewUsers++
			}
			if kind == KindDelegate {
				if parentEmail := strings.TrimSpace(row.Get(ColParentEmail)); parentEmail != "" && !refs.EmailKnown(parentEmail) {
					result.NewParents++
				}
			}
		}

		if len(result.Preview) < previewRowCap {
			status := "new"
			if existing {
				status = "existing"
			}
			result.Preview = append(result.Preview, PreviewRow{
				Row:       row.Number,
				FirstName: strings.TrimSpace(row.Get(ColFirstName)),
				LastName:  strings.TrimSpace(row.Get(ColLastName)),
				Email:     email,
				Status:    status,
				Valid:     check.Valid,
			})
		}
	}

	return result, nil
}
