package roster

// csv.go turns raw template text into a header row and data rows.
//
// The parser is deliberately not encoding/csv: the template format strips
// comment and blank lines before parsing, treats a double quote as a toggle
// with no escaped-quote support, and silently drops rows whose field count
// does not match the header. The drop is a documented quirk of the format,
// not a bug.

import "strings"

// CsvTable is the parsed form of a submitted CSV template.
type CsvTable struct {
	Headers []string
	Rows    []ImportRow
}

// ParseCsvTable parses raw CSV text. Lines that are blank after trimming or
// whose trimmed form starts with '#' are discarded before parsing. The first
// surviving line is the header. Rows is empty (never nil) when fewer than
// two surviving lines exist; callers must treat that as "no data".
func ParseCsvTable(text string) CsvTable {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, line)
	}

	table := CsvTable{Rows: []ImportRow{}}
	if len(lines) == 0 {
		return table
	}

	table.Headers = splitCsvLine(lines[0])
	if len(lines) < 2 {
		return table
	}

	for i, line := range lines[1:] {
		fields := splitCsvLine(line)
		// Rows with a mismatched field count are dropped, not errored.
		if len(fields) != len(table.Headers) {
			continue
		}

		values := make(map[string]string, len(table.Headers))
		for j, h := range table.Headers {
			values[h] = fields[j]
		}
		table.Rows = append(table.Rows, ImportRow{
			Number: i + 2, // header is row 1
			Values: values,
		})
	}

	return table
}

// splitCsvLine splits one line on commas, honoring double-quoted fields that
// may contain the delimiter. A quote toggles the in-quotes state and is
// stripped from the output; there is no escaped-quote support. Each field is
// trimmed of surrounding whitespace.
func splitCsvLine(line string) []string {
	line = strings.TrimRight(line, "\r")

	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))

	return fields
}
