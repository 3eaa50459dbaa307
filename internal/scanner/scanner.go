package scanner

import "unicode/utf8"

// scanState tracks where the scanner is within the current field.
type scanState uint8

const (
	stateFieldStart scanState = iota
	stateInUnquoted
	stateInQuoted
	stateAfterQuoteClose
)

// Scan splits a single line into field spans. The line must not contain
// line terminators; delim is the field separator rune.
//
// Scanning is a single left-to-right pass with no backtracking. Quoted
// fields may contain the delimiter; a doubled quote inside a quoted
// field is an escaped literal quote. Malformed input is absorbed into
// best-effort boundaries: an unterminated quote extends the field to
// the end of the line, a quote inside an unquoted field is ordinary
// content, and text between a closing quote and the next delimiter is
// folded into the field. Scan never fails.
//
// An empty line yields no fields. A trailing delimiter yields a
// trailing empty field, so "," is two empty fields and ",," is three.
func Scan(line string, delim rune) []Field {
	if line == "" {
		return nil
	}
	if delim == 0 || delim == quoteChar {
		delim = DefaultDelimiter
	}
	if delim < utf8.RuneSelf {
		return scanBytes(line, byte(delim))
	}
	return scanRunes(line, delim)
}

// ScanStrings is a convenience wrapper returning decoded field content
// instead of spans.
func ScanStrings(line string, delim rune) []string {
	fields := Scan(line, delim)
	if fields == nil {
		return nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Text(line)
	}
	return out
}

// scanBytes is the fast path for ASCII delimiters. The quote character
// and the delimiter are both below utf8.RuneSelf, so no byte of a
// multi-byte rune can match either and the line can be walked bytewise.
func scanBytes(line string, delim byte) []Field {
	fields := make([]Field, 0, 8)
	state := stateFieldStart
	start := 0
	end := 0
	quoted := false
	i := 0
	n := len(line)

	for i < n {
		c := line[i]
		switch state {
		case stateFieldStart:
			switch c {
			case delim:
				fields = append(fields, Field{Start: i, End: i})
				i++
			case quoteChar:
				state = stateInQuoted
				quoted = true
				i++
				start = i
			default:
				state = stateInUnquoted
				quoted = false
				start = i
				i++
			}
		case stateInUnquoted:
			if c == delim {
				fields = append(fields, Field{Start: start, End: i, Quoted: quoted})
				state = stateFieldStart
			}
			i++
		case stateInQuoted:
			if c == quoteChar {
				if i+1 < n && line[i+1] == quoteChar {
					// Escaped quote: both bytes stay in the field.
					i += 2
					continue
				}
				end = i
				state = stateAfterQuoteClose
			}
			i++
		case stateAfterQuoteClose:
			if c == delim {
				fields = append(fields, Field{Start: start, End: end, Quoted: quoted})
				state = stateFieldStart
				i++
				continue
			}
			// Stray content after the closing quote: fold it into the
			// field and keep scanning to the next delimiter.
			state = stateInUnquoted
			i++
		}
	}

	// Flush the field in flight at end of line.
	switch state {
	case stateFieldStart:
		// The line ended on a delimiter; close the empty trailing field.
		fields = append(fields, Field{Start: n, End: n})
	case stateInUnquoted, stateInQuoted:
		fields = append(fields, Field{Start: start, End: n, Quoted: quoted})
	case stateAfterQuoteClose:
		fields = append(fields, Field{Start: start, End: end, Quoted: quoted})
	}
	return fields
}

// scanRunes handles multi-byte delimiters. Same state machine as
// scanBytes, advancing by decoded rune widths.
func scanRunes(line string, delim rune) []Field {
	fields := make([]Field, 0, 8)
	state := stateFieldStart
	start := 0
	end := 0
	quoted := false
	i := 0
	n := len(line)

	for i < n {
		r, w := utf8.DecodeRuneInString(line[i:])
		switch state {
		case stateFieldStart:
			switch r {
			case delim:
				fields = append(fields, Field{Start: i, End: i})
				i += w
			case quoteChar:
				state = stateInQuoted
				quoted = true
				i += w
				start = i
			default:
				state = stateInUnquoted
				quoted = false
				start = i
				i += w
			}
		case stateInUnquoted:
			if r == delim {
				fields = append(fields, Field{Start: start, End: i, Quoted: quoted})
				state = stateFieldStart
			}
			i += w
		case stateInQuoted:
			if r == quoteChar {
				if i+1 < n && line[i+1] == quoteChar {
					i += 2
					continue
				}
				end = i
				state = stateAfterQuoteClose
			}
			i += w
		case stateAfterQuoteClose:
			if r == delim {
				fields = append(fields, Field{Start: start, End: end, Quoted: quoted})
				state = stateFieldStart
				i += w
				continue
			}
			state = stateInUnquoted
			i += w
		}
	}

	switch state {
	case stateFieldStart:
		fields = append(fields, Field{Start: n, End: n})
	case stateInUnquoted, stateInQuoted:
		fields = append(fields, Field{Start: start, End: n, Quoted: quoted})
	case stateAfterQuoteClose:
		fields = append(fields, Field{Start: start, End: end, Quoted: quoted})
	}
	return fields
}
