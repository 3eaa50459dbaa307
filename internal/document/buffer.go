package document

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Buffer is an in-memory Document backed by a line slice. It holds at
// least one line at all times; an empty buffer is a single empty line.
// All methods are safe for concurrent use.
type Buffer struct {
	mu    sync.RWMutex
	id    string
	name  string
	lines []string
}

// NewBuffer creates a buffer from initial content. CRLF and lone CR
// line endings are normalized to LF before splitting; a single
// trailing newline is treated as the last line's terminator, not an
// extra empty line.
func NewBuffer(text string) *Buffer {
	return &Buffer{
		id:    uuid.NewString(),
		lines: splitLines(text),
	}
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBuffer(string(data)), nil
}

// Open reads the file at path into a buffer named after it.
func Open(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b := NewBuffer(string(data))
	b.name = path
	return b, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// ID returns the buffer's identifier.
func (b *Buffer) ID() string {
	return b.id
}

// Name returns the display name, usually the file path. Empty for
// buffers not backed by a file.
func (b *Buffer) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the text of a zero-based line without its terminator.
func (b *Buffer) Line(i int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= len(b.lines) {
		return "", ErrLineOutOfRange
	}
	return b.lines[i], nil
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the full content joined with LF.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// SetLine replaces the text of a line.
func (b *Buffer) SetLine(i int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.lines) {
		return ErrLineOutOfRange
	}
	b.lines[i] = text
	return nil
}

// InsertLine inserts a line before index i; i equal to LineCount
// appends.
func (b *Buffer) InsertLine(i int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i > len(b.lines) {
		return ErrLineOutOfRange
	}
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = text
	return nil
}

// RemoveLine deletes a line. Removing the only line leaves a single
// empty line so the buffer never becomes lineless.
func (b *Buffer) RemoveLine(i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.lines) {
		return ErrLineOutOfRange
	}
	if len(b.lines) == 1 {
		b.lines[0] = ""
		return nil
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	return nil
}
