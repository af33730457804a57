package roster

import (
	"testing"
)

func TestParseCsvTable(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantHeaders []string
		wantRows    []map[string]string
	}{
		{
			name:        "simple two rows",
			input:       "a,b\n1,2\n3,4\n",
			wantHeaders: []string{"a", "b"},
			wantRows: []map[string]string{
				{"a": "1", "b": "2"},
				{"a": "3", "b": "4"},
			},
		},
		{
			name:        "comment and blank lines stripped before parsing",
			input:       "# template v2\n\na,b\n# another comment\n1,2\n",
			wantHeaders: []string{"a", "b"},
			wantRows: []map[string]string{
				{"a": "1", "b": "2"},
			},
		},
		{
			name:        "quoted field containing delimiter",
			input:       "firstName,lastName\n\"Smith, Jr.\",John\n",
			wantHeaders: []string{"firstName", "lastName"},
			wantRows: []map[string]string{
				{"firstName": "Smith, Jr.", "lastName": "John"},
			},
		},
		{
			name:        "field count mismatch drops the row",
			input:       "a,b\n1,2,3\n4,5\n",
			wantHeaders: []string{"a", "b"},
			wantRows: []map[string]string{
				{"a": "4", "b": "5"},
			},
		},
		{
			name:        "CRLF line endings",
			input:       "a,b\r\n1,2\r\n",
			wantHeaders: []string{"a", "b"},
			wantRows: []map[string]string{
				{"a": "1", "b": "2"},
			},
		},
		{
			name:        "whitespace trimmed per field",
			input:       "a, b\n 1 ,  2  \n",
			wantHeaders: []string{"a", "b"},
			wantRows: []map[string]string{
				{"a": "1", "b": "2"},
			},
		},
		{
			name:        "header only yields no rows",
			input:       "a,b\n",
			wantHeaders: []string{"a", "b"},
			wantRows:    []map[string]string{},
		},
		{
			name:     "empty input",
			input:    "",
			wantRows: []map[string]string{},
		},
		{
			name:     "only comments",
			input:    "# one\n# two\n",
			wantRows: []map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := ParseCsvTable(tt.input)

			if table.Rows == nil {
				t.Fatal("Rows must never be nil")
			}
			if len(table.Headers) != len(tt.wantHeaders) {
				t.Fatalf("headers = %v, want %v", table.Headers, tt.wantHeaders)
			}
			for i, h := range tt.wantHeaders {
				if table.Headers[i] != h {
					t.Errorf("header[%d] = %q, want %q", i, table.Headers[i], h)
				}
			}
			if len(table.Rows) != len(tt.wantRows) {
				t.Fatalf("got %d rows, want %d", len(table.Rows), len(tt.wantRows))
			}
			for i, want := range tt.wantRows {
				for k, v := range want {
					if got := table.Rows[i].Get(k); got != v {
						t.Errorf("row %d %q = %q, want %q", i, k, got, v)
					}
				}
			}
		})
	}
}

func TestParseCsvTableRowNumbers(t *testing.T) {
	// The header is row 1 of the surviving lines, so data numbering starts
	// at 2 and counts dropped rows too.
	table := ParseCsvTable("a,b\n1,2\nbad,row,extra\n3,4\n")

	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0].Number != 2 {
		t.Errorf("first row number = %d, want 2", table.Rows[0].Number)
	}
	if table.Rows[1].Number != 4 {
		t.Errorf("second row number = %d, want 4", table.Rows[1].Number)
	}
}

func TestSplitCsvLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "plain", input: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "quoted comma", input: `"a,b",c`, want: []string{"a,b", "c"}},
		{name: "unterminated quote swallows rest", input: `"a,b`, want: []string{"a,b"}},
		{name: "empty fields kept", input: "a,,c", want: []string{"a", "", "c"}},
		{name: "trailing empty field", input: "a,b,", want: []string{"a", "b", ""}},
		{name: "quotes stripped mid-field", input: `he said "hi",b`, want: []string{"he said hi", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitCsvLine(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
