package simdyaml

import (
	"bytes"
	"unicode/utf8"
)

// ScalarReader groups the five YAML scalar-reading styles: plain, single- and
// double-quoted, and folded/literal block scalars. It is a thin wrapper over
// Reader rather than a distinct struct with its own buffering state.
type ScalarReader struct {
	r *Reader
}

func NewScalarReader(r *Reader) *ScalarReader { return &ScalarReader{r: r} }

// ReadSingleQuoted reads a '...' scalar; the reader must be positioned on the
// opening quote. '' inside the scalar folds to a single literal '.
func (s *ScalarReader) ReadSingleQuoted() ([]byte, error) {
	start := s.r.Mark()
	if b, ok := s.r.Peek(); !ok || b != '\'' {
		return nil, &SyntaxError{Kind: ErrUnterminatedQuotedScalar, Mark: start}
	}
	s.r.SkipByte()

	var buf bytes.Buffer
	var ws []byte // blanks since the last content byte on the current line
	pendingFold := false
	blankRun := 0
	for {
		b, ok := s.r.Peek()
		if !ok {
			return nil, &SyntaxError{Kind: ErrUnterminatedQuotedScalar, Mark: start}
		}
		switch {
		case b == '\'':
			s.r.SkipByte()
			if nb, ok := s.r.Peek(); ok && nb == '\'' {
				flushFold(&buf, &pendingFold, &blankRun)
				buf.Write(ws)
				ws = ws[:0]
				buf.WriteByte('\'')
				s.r.SkipByte()
				continue
			}
			buf.Write(ws)
			return buf.Bytes(), nil
		case b == '\n' || b == '\r':
			ws = ws[:0]
			skipLineBreak(s.r)
			if blankRun == 0 && buf.Len() > 0 {
				pendingFold = true
			} else if blankRun > 0 {
				buf.WriteByte('\n')
			}
			blankRun++
		case b == ' ' || b == '\t':
			if blankRun == 0 {
				ws = append(ws, b)
			}
			s.r.SkipByte()
		default:
			flushFold(&buf, &pendingFold, &blankRun)
			buf.Write(ws)
			ws = ws[:0]
			decodeRuneInto(&buf, s.r)
		}
	}
}

// ReadDoubleQuoted reads a "..." scalar; the reader must be positioned on the
// opening quote. Escape table grounded on goccy-go-yaml's scanDoubleQuote.
func (s *ScalarReader) ReadDoubleQuoted() ([]byte, error) {
	start := s.r.Mark()
	if b, ok := s.r.Peek(); !ok || b != '"' {
		return nil, &SyntaxError{Kind: ErrUnterminatedQuotedScalar, Mark: start}
	}
	s.r.SkipByte()

	var buf bytes.Buffer
	var ws []byte // blanks since the last content byte on the current line
	pendingFold := false
	blankRun := 0
	for {
		b, ok := s.r.Peek()
		if !ok {
			return nil, &SyntaxError{Kind: ErrUnterminatedQuotedScalar, Mark: start}
		}
		switch {
		case b == '"':
			s.r.SkipByte()
			buf.Write(ws)
			return buf.Bytes(), nil
		case b == '\\':
			flushFold(&buf, &pendingFold, &blankRun)
			buf.Write(ws)
			ws = ws[:0]
			s.r.SkipByte()
			escapedBreak := s.r.NextIsBreak()
			if err := s.readEscape(&buf); err != nil {
				return nil, err
			}
			if escapedBreak {
				s.r.SkipWhileBlank()
			}
		case b == '\n' || b == '\r':
			ws = ws[:0]
			skipLineBreak(s.r)
			if blankRun == 0 && buf.Len() > 0 {
				pendingFold = true
			} else if blankRun > 0 {
				buf.WriteByte('\n')
			}
			blankRun++
		case b == ' ' || b == '\t':
			if blankRun == 0 {
				ws = append(ws, b)
			}
			s.r.SkipByte()
		default:
			flushFold(&buf, &pendingFold, &blankRun)
			buf.Write(ws)
			ws = ws[:0]
			decodeRuneInto(&buf, s.r)
		}
	}
}

// readEscape consumes one escape sequence (the reader is positioned right
// after the backslash) and writes its decoded form to buf.
func (s *ScalarReader) readEscape(buf *bytes.Buffer) error {
	mark := s.r.Mark()
	b, ok := s.r.Peek()
	if !ok {
		return &SyntaxError{Kind: ErrInvalidEscapeSequence, Mark: mark}
	}
	switch b {
	case '0':
		buf.WriteByte(0)
	case 'a':
		buf.WriteByte('\a')
	case 'b':
		buf.WriteByte('\b')
	case 't', '\t':
		buf.WriteByte('\t')
	case 'n':
		buf.WriteByte('\n')
	case 'v':
		buf.WriteByte('\v')
	case 'f':
		buf.WriteByte('\f')
	case 'r':
		buf.WriteByte('\r')
	case 'e':
		buf.WriteByte(0x1B)
	case '"':
		buf.WriteByte('"')
	case '\\':
		buf.WriteByte('\\')
	case '/':
		buf.WriteByte('/')
	case 'N':
		buf.WriteRune('')
	case '_':
		buf.WriteRune(' ')
	case 'L':
		buf.WriteRune(' ')
	case 'P':
		buf.WriteRune(' ')
	case '\n', '\r':
		// escaped line break: a hard break with no folding and no inserted
		// whitespace, per goccy-go-yaml's scanDoubleQuote handling of '\\\n'.
		skipLineBreak(s.r)
		return nil
	case 'x':
		s.r.SkipByte()
		return s.readHexEscape(buf, 2)
	case 'u':
		s.r.SkipByte()
		return s.readHexEscape(buf, 4)
	case 'U':
		s.r.SkipByte()
		return s.readHexEscape(buf, 8)
	default:
		return &SyntaxError{Kind: ErrInvalidEscapeSequence, Mark: mark}
	}
	s.r.SkipByte()
	return nil
}

func (s *ScalarReader) readHexEscape(buf *bytes.Buffer, digits int) error {
	mark := s.r.Mark()
	var v rune
	for i := 0; i < digits; i++ {
		b, ok := s.r.Peek()
		if !ok {
			return &SyntaxError{Kind: ErrInvalidEscapeSequence, Mark: mark}
		}
		d, ok := hexDigit(b)
		if !ok {
			return &SyntaxError{Kind: ErrInvalidEscapeSequence, Mark: mark}
		}
		v = v<<4 | rune(d)
		s.r.SkipByte()
	}
	buf.WriteRune(v)
	return nil
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// ReadPlainScalar reads an unquoted scalar, stopping before a mapping value
// indicator (": " or ":" at end of line), a comment, a flow indicator when
// inFlow is true, or a line whose indentation is less than minIndent.
func (s *ScalarReader) ReadPlainScalar(inFlow bool, minIndent int) ([]byte, error) {
	var buf bytes.Buffer
	pendingFold := false
	blankRun := 0
	first := true

	for {
		s.r.SkipWhileBlank()
		if !first {
			if s.r.col-1 < minIndent {
				break
			}
		}
		lineStart := true
		for {
			b, ok := s.r.Peek()
			if !ok || b == '\n' || b == '\r' {
				break
			}
			if b == ':' {
				next, hasNext := s.r.PeekAt(1)
				if !hasNext || next == ' ' || next == '\t' || next == '\n' || next == '\r' {
					goto done
				}
			}
			if inFlow && (b == ',' || b == '[' || b == ']' || b == '{' || b == '}') {
				goto done
			}
			if b == '#' && !lineStart {
				prev, _ := s.r.PeekAt(-1)
				if prev == ' ' || prev == '\t' {
					goto done
				}
			}
			flushFold(&buf, &pendingFold, &blankRun)
			decodeRuneInto(&buf, s.r)
			lineStart = false
		}
		if !s.r.NextIsBreak() {
			break
		}
		skipLineBreak(s.r)
		if blankRun == 0 && buf.Len() > 0 {
			pendingFold = true
		} else if blankRun > 0 {
			buf.WriteByte('\n')
		}
		blankRun++
		first = false
	}
done:
	return bytes.TrimRight(buf.Bytes(), " \t"), nil
}

// blockHeader is the parsed first line of a '|' or '>' block scalar:
// an optional chomping indicator and an optional explicit indentation
// indicator, grounded on goccy-go-yaml's scanLiteralHeader.
type blockHeader struct {
	chomp      byte // '-' (strip), '+' (keep), 0 (clip)
	indent     int  // explicit indentation, 0 if not given
}

// ReadBlockScalar reads a '|' (literal) or '>' (folded) block scalar. The
// reader must be positioned right after the '|'/'>' indicator.
func (s *ScalarReader) ReadBlockScalar(kind ScalarKind, parentIndent int) ([]byte, error) {
	hdr, err := s.readBlockHeader()
	if err != nil {
		return nil, err
	}

	var lines [][]byte
	indent := hdr.indent
	for {
		lineStart := s.r.pos
		for {
			b, ok := s.r.Peek()
			if !ok || b == '\n' || b == '\r' {
				break
			}
			s.r.SkipByte()
		}
		line := s.r.Slice(lineStart, s.r.pos)

		if indent == 0 {
			trimmed := bytes.TrimLeft(line, " ")
			col := len(line) - len(trimmed)
			if len(trimmed) > 0 {
				indent = col + 1
			}
		}
		lineIndent := leadingSpaces(line)
		if len(line) > 0 && lineIndent+1 <= parentIndent && len(bytes.TrimLeft(line, " ")) > 0 {
			// dedented past the parent: this line belongs to the next node.
			s.r.pos = lineStart
			s.r.col = 1
			break
		}
		content := line
		if indent > 0 && len(line) >= indent-1 {
			content = line[indent-1:]
		} else if indent > 0 {
			content = nil
		}
		lines = append(lines, content)

		if !s.r.NextIsBreak() {
			break
		}
		skipLineBreak(s.r)
		if s.r.AtEnd() {
			break
		}
	}

	return renderBlockScalar(kind, lines, hdr.chomp), nil
}

func (s *ScalarReader) readBlockHeader() (blockHeader, error) {
	var hdr blockHeader
	mark := s.r.Mark()
	for {
		b, ok := s.r.Peek()
		if !ok {
			break
		}
		switch {
		case b == '-' || b == '+':
			if hdr.chomp != 0 {
				return hdr, &SyntaxError{Kind: ErrInvalidBlockScalarHeader, Mark: mark}
			}
			hdr.chomp = b
			s.r.SkipByte()
		case b >= '1' && b <= '9':
			if hdr.indent != 0 {
				return hdr, &SyntaxError{Kind: ErrInvalidBlockScalarHeader, Mark: mark}
			}
			hdr.indent = int(b - '0')
			s.r.SkipByte()
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			goto eol
		case b == '#':
			if err := s.r.SkipWSToEOL(false); err != nil {
				return hdr, err
			}
			goto eol
		default:
			return hdr, &SyntaxError{Kind: ErrInvalidBlockChompingIndicator, Mark: mark}
		}
	}
eol:
	if err := s.r.SkipWSToEOL(true); err != nil {
		return hdr, err
	}
	if s.r.NextIsBreak() {
		skipLineBreak(s.r)
	}
	return hdr, nil
}

func renderBlockScalar(kind ScalarKind, lines [][]byte, chomp byte) []byte {
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 && chomp != '+' {
		lines = lines[:len(lines)-1]
	}

	var buf bytes.Buffer
	if kind == ScalarLiteral {
		for i, l := range lines {
			buf.Write(l)
			if i < len(lines)-1 || chomp == '+' {
				buf.WriteByte('\n')
			}
		}
	} else {
		blankRun := 0
		for i, l := range lines {
			if len(l) == 0 {
				buf.WriteByte('\n')
				blankRun++
				continue
			}
			if i > 0 && blankRun == 0 {
				buf.WriteByte(' ')
			}
			buf.Write(l)
			blankRun = 0
		}
		if chomp == '+' {
			buf.WriteByte('\n')
		}
	}

	switch chomp {
	case '-':
		return bytes.TrimRight(buf.Bytes(), "\n")
	case '+':
		return buf.Bytes()
	default:
		out := bytes.TrimRight(buf.Bytes(), "\n")
		if len(lines) > 0 {
			out = append(out, '\n')
		}
		return out
	}
}

func leadingSpaces(line []byte) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// flushFold writes the single space or blank-line run accumulated across a
// folded line break, per the line-folding rule shared by plain, single- and
// double-quoted scalars.
func flushFold(buf *bytes.Buffer, pendingFold *bool, blankRun *int) {
	if *pendingFold {
		buf.WriteByte(' ')
	}
	*pendingFold = false
	*blankRun = 0
}

func skipLineBreak(r *Reader) {
	b, ok := r.Peek()
	if !ok {
		return
	}
	if b == '\r' {
		r.SkipByte()
		if nb, ok := r.Peek(); ok && nb == '\n' {
			r.SkipByte()
		}
		return
	}
	r.SkipByte()
}

func decodeRune(r *Reader) (rune, int) {
	if r.AtEnd() {
		return 0, 0
	}
	rem := r.data[r.pos:]
	rn, size := utf8.DecodeRune(rem)
	r.Skip(size)
	return rn, size
}

func decodeRuneInto(buf *bytes.Buffer, r *Reader) {
	rn, size := decodeRune(r)
	if size == 0 {
		return
	}
	buf.WriteRune(rn)
}
