package roster

// validate.go holds the pure per-row validation rules for the two record
// kinds. Errors block a row from import; warnings are informational and the
// row stays valid. Callers must not rely on issue ordering.

import (
	"regexp"
	"strings"
)

// Column names recognized in import templates.
const (
	ColFirstName       = "firstName"
	ColLastName        = "lastName"
	ColEmail           = "email"
	ColPhone           = "phone"
	ColParentFirstName = "parentFirstName"
	ColParentLastName  = "parentLastName"
	ColParentEmail     = "parentEmail"
	ColParentPhone     = "parentPhone"
	ColRole            = "role"
	ColGroupingName    = "groupingName"
)

// StaffRoles is the fixed set of recognized staff role names.
// Matching is case-insensitive.
var StaffRoles = []string{"director", "coordinator", "counselor", "advisor", "volunteer"}

// StaffRoleDirector is the administrator role; staff imported with it get an
// admin program assignment instead of a staff one.
const StaffRoleDirector = "director"

// emailRe accepts a simple local@domain.tld shape. No RFC 5322 edge cases
// are attempted.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidateDelegateRow checks one delegate row. Parent fields are optional as
// a group, but a present parentEmail requires a valid shape plus parent
// first and last names; each of those failures is reported independently.
func ValidateDelegateRow(row ImportRow) RowCheck {
	check := RowCheck{Valid: true}

	requireName(&check, row, ColFirstName)
	requireName(&check, row, ColLastName)
	requireEmail(&check, row, ColEmail)

	if parentEmail := strings.TrimSpace(row.Get(ColParentEmail)); parentEmail != "" {
		if !ValidEmail(parentEmail) {
			addError(&check, row.Number, ColParentEmail, "invalid email format")
		}
		requireName(&check, row, ColParentFirstName)
		requireName(&check, row, ColParentLastName)
	}

	return check
}

// ValidateStaffRow checks one staff row. An unknown role is an error; an
// unresolvable groupingName is only a warning and the row stays importable.
func ValidateStaffRow(row ImportRow, refs *ReferenceMaps) RowCheck {
	check := RowCheck{Valid: true}

	requireName(&check, row, ColFirstName)
	requireName(&check, row, ColLastName)
	requireEmail(&check, row, ColEmail)

	role := strings.TrimSpace(row.Get(ColRole))
	if role == "" {
		addError(&check, row.Number, ColRole, "required field is empty")
	} else if !knownStaffRole(role) {
		addError(&check, row.Number, ColRole, "unknown role, must be one of: "+strings.Join(StaffRoles, ", "))
	}

	if name := strings.TrimSpace(row.Get(ColGroupingName)); name != "" && refs != nil {
		if _, ok := refs.GroupingByName(name); !ok {
			check.Warnings = append(check.Warnings, Issue{
				Row:     row.Number,
				Field:   ColGroupingName,
				Message: `no active grouping named "` + name + `" for this program year`,
			})
		}
	}

	return check
}

func knownStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func requireName(check *RowCheck, row ImportRow, field string) {
	if strings.TrimSpace(row.Get(field)) == "" {
		addError(check, row.Number, field, "required field is empty")
	}
}

func requireEmail(check *RowCheck, row ImportRow, field string) {
	v := strings.TrimSpace(row.Get(field))
	if v == "" {
		addError(check, row.Number, field, "required field is empty")
		return
	}
	if !ValidEmail(v) {
		addError(check, row.Number, field, "invalid email format")
	}
}

func addError(check *RowCheck, row int, field, message string) {
	check.Valid = false
	check.Errors = append(check.Errors, Issue{Row: row, Field: field, Message: message})
}
