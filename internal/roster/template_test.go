package roster

import (
	"strings"
	"testing"
)

func TestTemplateRoundTripsThroughParser(t *testing.T) {
	tests := []struct {
		name        string
		kind        ParticipantKind
		wantHeaders []string
	}{
		{name: "delegate", kind: KindDelegate, wantHeaders: delegateTemplateColumns},
		{name: "staff", kind: KindStaff, wantHeaders: staffTemplateColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Template(tt.kind)
			if err != nil {
				t.Fatalf("Template: %v", err)
			}

			// The comment lines must disappear and leave exactly the header.
			table := ParseCsvTable(text)
			if len(table.Rows) != 0 {
				t.Errorf("template parsed into %d data rows, want 0", len(table.Rows))
			}
			if len(table.Headers) != len(tt.wantHeaders) {
				t.Fatalf("headers = %v, want %v", table.Headers, tt.wantHeaders)
			}
			for i, h := range tt.wantHeaders {
				if table.Headers[i] != h {
					t.Errorf("header[%d] = %q, want %q", i, table.Headers[i], h)
				}
			}
		})
	}
}

func TestTemplateStaffListsRoles(t *testing.T) {
	text, err := Template(KindStaff)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	for _, role := range StaffRoles {
		if !strings.Contains(text, role) {
			t.Errorf("staff template does not mention role %q", role)
		}
	}
}

func TestTemplateUnknownKind(t *testing.T) {
	_, err := Template("mentor")
	if KindOf(err) != KindBadRequest {
		t.Errorf("error kind = %v, want bad request (%v)", KindOf(err), err)
	}
}
