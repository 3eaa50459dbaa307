package highlight

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/NivWeisman/rainbow-csv/internal/document"
	"github.com/NivWeisman/rainbow-csv/internal/palette"
	"github.com/NivWeisman/rainbow-csv/internal/region"
	"github.com/NivWeisman/rainbow-csv/internal/scanner"
)

// Errors returned by driver operations.
var (
	ErrNotAttached     = errors.New("document not attached")
	ErrAlreadyAttached = errors.New("document already attached")
)

// Logger is the subset of logging the driver uses. The application
// logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Driver computes column color annotations for attached documents.
// The host reports dirty regions; the driver rescans those lines and
// replaces their annotations. Processing is synchronous and a failed
// line never aborts the rest of a region.
type Driver struct {
	mu     sync.Mutex
	cfg    palette.Config
	delim  rune
	logger Logger
	docs   map[string]*attachment
}

type attachment struct {
	doc   document.Document
	index *Index
}

// Option configures a Driver.
type Option func(*Driver)

// WithPalette sets the palette configuration.
func WithPalette(cfg palette.Config) Option {
	return func(d *Driver) {
		d.cfg = cfg
	}
}

// WithDelimiter sets the field delimiter.
func WithDelimiter(delim rune) Option {
	return func(d *Driver) {
		d.delim = delim
	}
}

// WithLogger sets the logger for per-line scan diagnostics.
func WithLogger(l Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDriver creates a driver with the default palette and comma
// delimiter.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		cfg:    palette.DefaultConfig(),
		delim:  scanner.DefaultDelimiter,
		logger: nopLogger{},
		docs:   make(map[string]*attachment),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Attach registers a document and creates its annotation index. The
// document is not highlighted until the host reports a region.
func (d *Driver) Attach(doc document.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := doc.ID()
	if _, ok := d.docs[id]; ok {
		return ErrAlreadyAttached
	}
	d.docs[id] = &attachment{
		doc:   doc,
		index: NewIndex(),
	}
	return nil
}

// Detach removes a document and its annotations. Returns false if the
// document was not attached.
func (d *Driver) Detach(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.docs[id]
	delete(d.docs, id)
	return ok
}

// Attached reports whether a document is registered.
func (d *Driver) Attached(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.docs[id]
	return ok
}

// IndexFor returns the annotation index for a document. The index is
// live: the driver keeps updating it as regions are processed.
func (d *Driver) IndexFor(id string) (*Index, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	att, ok := d.docs[id]
	if !ok {
		return nil, false
	}
	return att.index, true
}

// OnRegionDirty recomputes annotations for every line of r that is in
// range for the document. Each line is evicted before its replacement
// set is inserted, so stale annotations never survive, even when the
// line can no longer be read. Lines of the region past the document
// end have any leftover annotations evicted, which keeps the index
// clean after the document shrinks.
func (d *Driver) OnRegionDirty(id string, r region.Region) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	att, ok := d.docs[id]
	if !ok {
		return ErrNotAttached
	}

	count := att.doc.LineCount()
	if clamped, ok := r.Clamp(count); ok {
		for line := clamped.Start; line <= clamped.End; line++ {
			d.applyLine(att, line)
		}
	}

	if !r.IsEmpty() && r.End >= count {
		for _, line := range att.index.Lines() {
			if line >= count && r.ContainsLine(line) {
				att.index.Evict(line)
			}
		}
	}
	return nil
}

// HighlightAll recomputes annotations for the whole document. Index
// entries for lines past the document end are evicted.
func (d *Driver) HighlightAll(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	att, ok := d.docs[id]
	if !ok {
		return ErrNotAttached
	}
	count := att.doc.LineCount()
	for line := 0; line < count; line++ {
		d.applyLine(att, line)
	}
	for _, line := range att.index.Lines() {
		if line >= count {
			att.index.Evict(line)
		}
	}
	return nil
}

// Config returns the current palette configuration.
func (d *Driver) Config() palette.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// SetConfig replaces the palette configuration. Existing annotations
// keep their colors until Refresh or a dirty region recomputes them.
func (d *Driver) SetConfig(cfg palette.Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg = cfg
}

// Delimiter returns the current field delimiter.
func (d *Driver) Delimiter() rune {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delim
}

// SetDelimiter changes the field delimiter. Takes effect from the next
// recompute.
func (d *Driver) SetDelimiter(delim rune) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delim = delim
}

// Refresh recomputes every line currently held in each attached
// document's index, picking up palette and delimiter changes. Lines
// that fell out of range since they were highlighted are evicted.
func (d *Driver) Refresh() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, att := range d.docs {
		count := att.doc.LineCount()
		for _, line := range att.index.Lines() {
			if line >= count {
				att.index.Evict(line)
				continue
			}
			d.applyLine(att, line)
		}
	}
}

// applyLine replaces one line's annotations: evict, rescan, insert.
// Callers hold d.mu.
func (d *Driver) applyLine(att *attachment, line int) {
	att.index.Evict(line)

	text, err := att.doc.Line(line)
	if err != nil {
		d.logger.Debug("highlight: skipping line %d of %s: %v", line, att.doc.ID(), err)
		return
	}
	att.index.Insert(line, d.annotate(line, text))
}

// annotate builds the annotation set for one line's text. Callers hold
// d.mu.
func (d *Driver) annotate(line int, text string) []Annotation {
	fields := scanner.Scan(text, d.delim)
	if len(fields) == 0 {
		return nil
	}

	active := d.cfg.Active()
	anns := make([]Annotation, len(fields))
	for col, f := range fields {
		anns[col] = Annotation{
			ID:     uuid.New(),
			Line:   line,
			Start:  f.Start,
			End:    f.End,
			Column: col,
			Color:  active.ColorAt(col),
		}
	}
	return anns
}
