// Package scanner provides quote-aware field boundary scanning for
// delimiter-separated lines (CSV, TSV, and friends).
package scanner

import "strings"

// DefaultDelimiter is the field delimiter used when none is configured.
const DefaultDelimiter = ','

// quoteChar is the field quoting character.
const quoteChar = '"'

// Field describes the location of one field within a scanned line.
// Start and End are byte offsets forming the half-open interval
// [Start, End). The interval excludes the enclosing quotes of a quoted
// field and the delimiter that terminates the field.
type Field struct {
	Start  int
	End    int
	Quoted bool
}

// Len returns the width of the field span in bytes.
func (f Field) Len() int {
	return f.End - f.Start
}

// Text returns the field content within line. For quoted fields,
// doubled quotes are decoded back to single quotes.
func (f Field) Text(line string) string {
	s := line[f.Start:f.End]
	if f.Quoted && strings.Contains(s, `""`) {
		s = strings.ReplaceAll(s, `""`, `"`)
	}
	return s
}
