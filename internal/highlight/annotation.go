// Package highlight keeps per-line column color annotations in sync
// with document content. The driver recomputes annotations for dirty
// regions; the index stores them for rendering.
package highlight

import (
	"github.com/google/uuid"

	"github.com/NivWeisman/rainbow-csv/internal/palette"
)

// Annotation is one colored field span on a line.
type Annotation struct {
	// ID identifies this annotation instance. Recomputing a line
	// produces fresh IDs even when the spans are unchanged.
	ID uuid.UUID

	// Line is the zero-based line the annotation belongs to.
	Line int

	// Start and End are the byte span within the line, half-open.
	Start int
	End   int

	// Column is the zero-based field index the span was derived from.
	Column int

	// Color is the palette color assigned to the column.
	Color palette.Color
}
