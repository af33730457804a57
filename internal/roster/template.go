package roster

// template.go produces the downloadable CSV templates operators fill in.
// Comment and example lines start with '#' so the parser strips them on
// re-submission.

import "strings"

var delegateTemplateColumns = []string{
	ColFirstName, ColLastName, ColEmail, ColPhone,
	ColParentFirstName, ColParentLastName, ColParentEmail, ColParentPhone,
}

var staffTemplateColumns = []string{
	ColFirstName, ColLastName, ColEmail, ColPhone, ColRole, ColGroupingName,
}

// Template returns the CSV template for the given participant kind.
func Template(kind ParticipantKind) (string, error) {
	switch kind {
	case KindDelegate:
		var b strings.Builder
		b.WriteString("# Delegate import template\n")
		b.WriteString("# Parent columns are optional as a group; when parentEmail is set,\n")
		b.WriteString("# parentFirstName and parentLastName are required too.\n")
		b.WriteString("# Example (remove the leading #):\n")
		b.WriteString("# John,Doe,john@example.com,555-1234,Jane,Doe,jane@example.com,555-5678\n")
		b.WriteString(strings.Join(delegateTemplateColumns, ","))
		b.WriteString("\n")
		return b.String(), nil
	case KindStaff:
		var b strings.Builder
		b.WriteString("# Staff import template\n")
		b.WriteString("# role must be one of: " + strings.Join(StaffRoles, ", ") + "\n")
		b.WriteString("# groupingName is optional and matched against the year's active groupings.\n")
		b.WriteString("# Example (remove the leading #):\n")
		b.WriteString("# Mary,Major,mary@example.com,555-0000,counselor,Franklin County\n")
		b.WriteString(strings.Join(staffTemplateColumns, ","))
		b.WriteString("\n")
		return b.String(), nil
	default:
		return "", BadRequest("kind must be %q or %q", KindDelegate, KindStaff)
	}
}
