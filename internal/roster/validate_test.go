package roster

import (
	"strings"
	"testing"
)

func delegateRow(overrides map[string]string) ImportRow {
	values := map[string]string{
		ColFirstName: "Jane",
		ColLastName:  "Doe",
		ColEmail:     "jane@example.org",
	}
	for k, v := range overrides {
		values[k] = v
	}
	return ImportRow{Number: 2, Values: values}
}

func staffRow(overrides map[string]string) ImportRow {
	values := map[string]string{
		ColFirstName: "Sam",
		ColLastName:  "Lee",
		ColEmail:     "sam@example.org",
		ColRole:      "counselor",
	}
	for k, v := range overrides {
		values[k] = v
	}
	return ImportRow{Number: 2, Values: values}
}

func TestValidateDelegateRow(t *testing.T) {
	tests := []struct {
		name       string
		row        ImportRow
		wantValid  bool
		wantErrors int
		wantFields []string
	}{
		{
			name:      "minimal valid row",
			row:       delegateRow(nil),
			wantValid: true,
		},
		{
			name:       "missing first name",
			row:        delegateRow(map[string]string{ColFirstName: ""}),
			wantValid:  false,
			wantErrors: 1,
			wantFields: []string{ColFirstName},
		},
		{
			name:       "malformed email",
			row:        delegateRow(map[string]string{ColEmail: "not-an-email"}),
			wantValid:  false,
			wantErrors: 1,
			wantFields: []string{ColEmail},
		},
		{
			name:       "email missing tld",
			row:        delegateRow(map[string]string{ColEmail: "jane@host"}),
			wantValid:  false,
			wantErrors: 1,
			wantFields: []string{ColEmail},
		},
		{
			name: "complete parent block valid",
			row: delegateRow(map[string]string{
				ColParentEmail:     "parent@example.org",
				ColParentFirstName: "Pat",
				ColParentLastName:  "Doe",
			}),
			wantValid: true,
		},
		{
			name:      "parent fields optional as a group",
			row:       delegateRow(map[string]string{ColParentEmail: ""}),
			wantValid: true,
		},
		{
			name: "bad parent email reports three independent errors",
			row: delegateRow(map[string]string{
				ColParentEmail: "nope",
			}),
			wantValid:  false,
			wantErrors: 3,
			wantFields: []string{ColParentEmail, ColParentFirstName, ColParentLastName},
		},
		{
			name: "parent email present but names missing",
			row: delegateRow(map[string]string{
				ColParentEmail: "parent@example.org",
			}),
			wantValid:  false,
			wantErrors: 2,
			wantFields: []string{ColParentFirstName, ColParentLastName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := ValidateDelegateRow(tt.row)

			if check.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (errors: %v)", check.Valid, tt.wantValid, check.Errors)
			}
			if tt.wantErrors > 0 && len(check.Errors) != tt.wantErrors {
				t.Errorf("got %d errors, want %d: %v", len(check.Errors), tt.wantErrors, check.Errors)
			}
			for _, field := range tt.wantFields {
				if !hasIssueField(check.Errors, field) {
					t.Errorf("missing error for field %q in %v", field, check.Errors)
				}
			}
			if len(check.Warnings) != 0 {
				t.Errorf("delegate rows never warn, got %v", check.Warnings)
			}
		})
	}
}

func TestValidateStaffRow(t *testing.T) {
	refs := &ReferenceMaps{
		groupingByName: map[string]GroupingActivation{
			"house": {Name: "House", IsAssignmentLevel: true},
		},
	}

	tests := []struct {
		name         string
		row          ImportRow
		wantValid    bool
		wantErrField string
		wantWarnings int
	}{
		{
			name:      "valid counselor",
			row:       staffRow(nil),
			wantValid: true,
		},
		{
			name:         "role required",
			row:          staffRow(map[string]string{ColRole: ""}),
			wantValid:    false,
			wantErrField: ColRole,
		},
		{
			name:         "unknown role rejected",
			row:          staffRow(map[string]string{ColRole: "janitor"}),
			wantValid:    false,
			wantErrField: ColRole,
		},
		{
			name:      "role match is case-insensitive",
			row:       staffRow(map[string]string{ColRole: "Director"}),
			wantValid: true,
		},
		{
			name:      "grouping name resolves case-insensitively",
			row:       staffRow(map[string]string{ColGroupingName: "HOUSE"}),
			wantValid: true,
		},
		{
			name:         "unknown grouping warns but row stays valid",
			row:          staffRow(map[string]string{ColGroupingName: "Senate"}),
			wantValid:    true,
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := ValidateStaffRow(tt.row, refs)

			if check.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (errors: %v)", check.Valid, tt.wantValid, check.Errors)
			}
			if tt.wantErrField != "" && !hasIssueField(check.Errors, tt.wantErrField) {
				t.Errorf("missing error for field %q in %v", tt.wantErrField, check.Errors)
			}
			if len(check.Warnings) != tt.wantWarnings {
				t.Errorf("got %d warnings, want %d: %v", len(check.Warnings), tt.wantWarnings, check.Warnings)
			}
		})
	}
}

func TestValidateStaffRowUnknownRoleMessageListsRoles(t *testing.T) {
	check := ValidateStaffRow(staffRow(map[string]string{ColRole: "janitor"}), nil)

	if check.Valid {
		t.Fatal("expected invalid row")
	}
	var msg string
	for _, e := range check.Errors {
		if e.Field == ColRole {
			msg = e.Message
		}
	}
	for _, role := range StaffRoles {
		if !strings.Contains(msg, role) {
			t.Errorf("role error %q does not list %q", msg, role)
		}
	}
}

func hasIssueField(issues []Issue, field string) bool {
	for _, i := range issues {
		if i.Field == field {
			return true
		}
	}
	return false
}
