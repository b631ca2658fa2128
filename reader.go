// Package simdyaml provides a high-throughput YAML 1.2 parser core built
// around a bit-parallel byte scanner and a non-recursive state machine. It
// produces a flat Event stream rather than a document tree; building a tree,
// resolving tags, and encoding YAML are out of scope.
package simdyaml

// Reader is a byte-addressable view over the document being parsed, with
// peek/skip/slice operations and YAML-aware lookahead helpers. It is the
// capability bundle the StateMachine and ScalarReader share.
//
// # Configuration (Policy)
//
// Reader has no exported configuration; it is a pure positional view. Policy
// lives one level up on Parser/ParserOptions (parser.go).
//
// # Implementation (Mechanism)
//
// Internally Reader tracks a byte offset plus the running line/column so
// every peek and skip can hand back a Mark without rescanning from the start
// of input.
type Reader struct {
	data []byte
	pos  int
	line int
	col  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, line: 1, col: 1}
}

// Len reports the number of unread bytes.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// AtEnd reports whether the reader has consumed all input.
func (r *Reader) AtEnd() bool { return r.pos >= len(r.data) }

// Offset returns the current byte offset.
func (r *Reader) Offset() int { return r.pos }

// Mark returns the Mark for the reader's current position.
func (r *Reader) Mark() Mark { return Mark{Offset: r.pos, Line: r.line, Column: r.col} }

// Peek returns the byte at the current position, or false at end of input.
func (r *Reader) Peek() (byte, bool) {
	return r.PeekAt(0)
}

// PeekAt returns the byte n positions ahead of the current position (n=0 is
// the current byte), generalizing Source's peek_n1/peek_n2/peek_n3.
func (r *Reader) PeekAt(n int) (byte, bool) {
	i := r.pos + n
	if i < 0 || i >= len(r.data) {
		return 0, false
	}
	return r.data[i], true
}

// PeekTwo returns the next two bytes (zero-valued where input runs out) and
// whether at least one byte was available.
func (r *Reader) PeekTwo() (b0, b1 byte, ok bool) {
	b0, ok0 := r.PeekAt(0)
	b1, _ = r.PeekAt(1)
	return b0, b1, ok0
}

// Skip advances the reader by n bytes, updating line/column as it crosses
// newlines. n must not exceed Len().
func (r *Reader) Skip(n int) {
	for i := 0; i < n; i++ {
		if r.data[r.pos] == '\n' {
			r.line++
			r.col = 1
		} else {
			r.col++
		}
		r.pos++
	}
}

// SkipByte advances past a single byte, reporting false at end of input.
func (r *Reader) SkipByte() bool {
	if r.AtEnd() {
		return false
	}
	r.Skip(1)
	return true
}

// Slice returns the raw bytes between two offsets without copying.
func (r *Reader) Slice(start, end int) []byte { return r.data[start:end] }

// NextIsBreak reports whether the current byte begins a line break.
func (r *Reader) NextIsBreak() bool {
	b, ok := r.Peek()
	return ok && (b == '\n' || b == '\r')
}

// NextIsBreakZ reports whether the current position is a line break or end
// of input, generalizing Source's next_is_breakz.
func (r *Reader) NextIsBreakZ() bool {
	return r.AtEnd() || r.NextIsBreak()
}

// NextIsBlank reports whether the current byte is a space or tab.
func (r *Reader) NextIsBlank() bool {
	b, ok := r.Peek()
	return ok && (b == ' ' || b == '\t')
}

// NextIsBlankOrBreak reports space/tab/newline.
func (r *Reader) NextIsBlankOrBreak() bool {
	return r.NextIsBlank() || r.NextIsBreak()
}

// NextIsBlankOrBreakZ reports space/tab/newline/end-of-input.
func (r *Reader) NextIsBlankOrBreakZ() bool {
	return r.NextIsBlank() || r.NextIsBreakZ()
}

// NextIsFlow reports whether the current byte is a flow-context indicator
// ([, ], {, }, ,).
func (r *Reader) NextIsFlow() bool {
	b, ok := r.Peek()
	if !ok {
		return false
	}
	switch b {
	case '[', ']', '{', '}', ',':
		return true
	default:
		return false
	}
}

// SkipWhileBlank advances past a run of spaces/tabs and returns how many
// bytes were skipped.
func (r *Reader) SkipWhileBlank() int {
	n := 0
	for r.NextIsBlank() {
		r.SkipByte()
		n++
	}
	return n
}

// SkipWSToEOL advances past trailing whitespace and an optional comment to
// the end of the current line. A '#' is only the start of a comment when
// preceded by whitespace or the start of line; otherwise it is a hard error
// (ErrMissingWhitespaceBeforeComment).
func (r *Reader) SkipWSToEOL(atLineStart bool) error {
	sawBlank := atLineStart
	for {
		b, ok := r.Peek()
		if !ok || b == '\n' || b == '\r' {
			return nil
		}
		switch b {
		case ' ', '\t':
			sawBlank = true
			r.SkipByte()
		case '#':
			if !sawBlank {
				return &SyntaxError{Kind: ErrMissingWhitespaceBeforeComment, Mark: r.Mark()}
			}
			for {
				b, ok := r.Peek()
				if !ok || b == '\n' || b == '\r' {
					return nil
				}
				r.SkipByte()
			}
		default:
			return nil
		}
	}
}

// NextIsDocumentIndicator reports whether the reader sits at column 1 on a
// line beginning with "---" or "..." followed by whitespace or end of line,
// returning the indicator byte ('-' or '.').
func (r *Reader) NextIsDocumentIndicator() (indicator byte, ok bool) {
	if r.col != 1 {
		return 0, false
	}
	b0, ok0 := r.PeekAt(0)
	b1, ok1 := r.PeekAt(1)
	b2, ok2 := r.PeekAt(2)
	if !ok0 || !ok1 || !ok2 || b0 != b1 || b1 != b2 {
		return 0, false
	}
	if b0 != '-' && b0 != '.' {
		return 0, false
	}
	b3, ok3 := r.PeekAt(3)
	if ok3 && b3 != ' ' && b3 != '\t' && b3 != '\n' && b3 != '\r' {
		return 0, false
	}
	return b0, true
}

// NextCanBePlainScalar reports whether the current byte may begin a plain
// scalar in the given flow context, generalizing Source's
// next_can_be_plain_scalar(in_flow): a plain scalar cannot start with a
// structural indicator, except that '-', '?' and ':' are allowed when not
// immediately followed by whitespace (block indicators only bind when
// followed by a blank).
func (r *Reader) NextCanBePlainScalar(inFlow bool) bool {
	b, ok := r.Peek()
	if !ok {
		return false
	}
	switch b {
	case '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return false
	case ',', '[', ']', '{', '}':
		return !inFlow
	case '-', '?', ':':
		next, hasNext := r.PeekAt(1)
		boundAfter := !hasNext || next == ' ' || next == '\t' || next == '\n' || next == '\r'
		if boundAfter {
			return false
		}
		return true
	default:
		return true
	}
}
