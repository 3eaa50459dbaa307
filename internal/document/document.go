// Package document provides the line-addressable text sources the
// highlight driver annotates.
package document

import "errors"

// ErrLineOutOfRange is returned when a line index is outside the
// document.
var ErrLineOutOfRange = errors.New("line out of range")

// Document is a line-addressable text source with stable identity.
// Implementations must be safe for concurrent use.
type Document interface {
	// ID returns a stable identifier for the document, unique within
	// the process.
	ID() string

	// LineCount returns the number of lines in the document.
	LineCount() int

	// Line returns the text of a zero-based line without its
	// terminator.
	Line(i int) (string, error)
}
