package simdyaml

// frameKind distinguishes the collection kinds a StateMachine can nest.
type frameKind int

const (
	frameDocument frameKind = iota
	frameSequence
	frameMapping
)

// frame is one entry of the explicit context stack used in place of
// recursive descent: each open sequence/mapping/document remembers its kind,
// the indentation column that introduced it, and whether it is a flow
// ([]/{}) or block collection.
type frame struct {
	kind      frameKind
	indent    int
	flow      bool
	expectKey bool // mapping only: true when a key is due next, false when a value is due
	bodyDone  bool // document only: true once the root node has been dispatched
}

// StateMachine turns a byte stream into a flat Event sequence. It is driven
// one step at a time by Next, never recursing into itself for nested
// collections -- the context stack above plays that role instead.
type StateMachine struct {
	r  *Reader
	sr *ScalarReader

	stack []frame
	queue []Event

	pendingTag    []byte
	pendingAnchor []byte

	started  bool
	done     bool
	yamlSeen bool
}

// NewStateMachine creates a StateMachine reading from data.
func NewStateMachine(data []byte) *StateMachine {
	r := NewReader(data)
	return &StateMachine{r: r, sr: NewScalarReader(r)}
}

// Next returns the next Event and true, or a zero Event and false once the
// stream is exhausted.
func (m *StateMachine) Next() (Event, bool) {
	for len(m.queue) == 0 && !m.done {
		m.step()
	}
	if len(m.queue) == 0 {
		return Event{}, false
	}
	ev := m.queue[0]
	m.queue = m.queue[1:]
	return ev, true
}

func (m *StateMachine) emit(ev Event) { m.queue = append(m.queue, ev) }

func (m *StateMachine) top() *frame {
	if len(m.stack) == 0 {
		return nil
	}
	return &m.stack[len(m.stack)-1]
}

func (m *StateMachine) push(f frame) { m.stack = append(m.stack, f) }

// popTo closes frames until the stack has exactly n entries, emitting a
// synthetic closing event for each so an error-interrupted stream stays
// well-formed.
func (m *StateMachine) popTo(n int) {
	if n < 0 {
		n = 0
	}
	for len(m.stack) > n {
		f := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		switch f.kind {
		case frameSequence:
			m.emit(Event{Kind: EventSequenceEnd, Mark: m.r.Mark(), Flow: f.flow})
		case frameMapping:
			m.emit(Event{Kind: EventMappingEnd, Mark: m.r.Mark(), Flow: f.flow})
		case frameDocument:
			m.emit(Event{Kind: EventDocumentEnd, Mark: m.r.Mark()})
		}
	}
}

// fail records a recoverable error and closes every open frame so the
// stream remains balanced.
func (m *StateMachine) fail(kind ErrorKind, mark Mark) {
	m.emit(Event{Kind: EventError, Mark: mark, Err: &SyntaxError{Kind: kind, Mark: mark}})
	m.popTo(0)
	m.done = true
}

// step performs one unit of work: either starting the document, consuming
// directives, dispatching the current frame, or detecting end of input.
func (m *StateMachine) step() {
	if !m.started {
		m.started = true
		m.consumeDirectives()
		m.beginDocument()
		return
	}

	m.r.SkipWhileBlank()
	if m.r.NextIsBreak() {
		skipLineBreak(m.r)
		return
	}
	if ind, ok := m.r.NextIsDocumentIndicator(); ok && ind == '.' {
		m.r.Skip(3)
		if len(m.stack) > 0 {
			// close open collections, then the document with an explicit end.
			m.popTo(1)
			m.stack = m.stack[:0]
			m.emit(Event{Kind: EventDocumentEnd, Mark: m.r.Mark(), Explicit: true})
		}
		m.skipRestOfLine()
		m.started = false
		m.yamlSeen = false
		return
	}
	if _, ok := m.r.NextIsDocumentIndicator(); ok && (len(m.stack) == 0 || m.documentBodyClosed()) {
		// a following "---" after a ... or an already-closed root node starts
		// a new document.
		m.popTo(0)
		m.started = false
		return
	}

	if m.r.AtEnd() {
		m.popTo(0)
		m.done = true
		return
	}

	f := m.top()
	if f == nil {
		// no open document: nothing left to do but end.
		m.popTo(0)
		m.done = true
		return
	}

	switch f.kind {
	case frameDocument:
		if f.bodyDone {
			// the document's single root node was already dispatched; any
			// remaining non-blank content before the next document/EOF is an
			// error, not a second root node.
			m.fail(ErrTrailingContentAfterDocument, m.r.Mark())
			return
		}
		m.stepDocumentBody()
	case frameSequence:
		m.stepSequence(*f)
	case frameMapping:
		m.stepMapping(*f)
	}
}

// documentBodyClosed reports whether the only remaining open frame is a
// document whose root node has already been fully dispatched.
func (m *StateMachine) documentBodyClosed() bool {
	return len(m.stack) == 1 && m.stack[0].kind == frameDocument && m.stack[0].bodyDone
}

// consumeDirectives reads any %YAML/%TAG lines preceding the first document.
func (m *StateMachine) consumeDirectives() {
	for {
		m.r.SkipWhileBlank()
		if m.r.NextIsBreak() {
			skipLineBreak(m.r)
			continue
		}
		b, ok := m.r.Peek()
		if !ok || b != '%' {
			return
		}
		mark := m.r.Mark()
		m.r.SkipByte()
		start := m.r.pos
		for {
			b, ok := m.r.Peek()
			if !ok || b == '\n' || b == '\r' || b == ' ' || b == '\t' {
				break
			}
			m.r.SkipByte()
		}
		name := string(m.r.Slice(start, m.r.pos))
		var kind DirectiveKind
		switch name {
		case "YAML":
			if m.yamlSeen {
				m.fail(ErrDuplicateYAMLDirective, mark)
				return
			}
			m.yamlSeen = true
			kind = DirectiveYAML
		case "TAG":
			kind = DirectiveTag
		default:
			kind = DirectiveReserved
		}
		// the payload runs to the end of the line, minus trailing blanks and
		// any comment.
		end, inComment := m.r.pos, false
		for !m.r.NextIsBreakZ() {
			b, _ := m.r.Peek()
			prev, _ := m.r.PeekAt(-1)
			inComment = inComment || (b == '#' && (prev == ' ' || prev == '\t'))
			m.r.SkipByte()
			if !inComment && b != ' ' && b != '\t' {
				end = m.r.pos
			}
		}
		if err := m.r.SkipWSToEOL(false); err != nil {
			m.fail(err.(*SyntaxError).Kind, mark)
			return
		}
		m.emit(Event{Kind: EventDirective, Mark: mark, DirectiveKind: kind, Value: m.r.Slice(start, end)})
		if m.r.NextIsBreak() {
			skipLineBreak(m.r)
		}
	}
}

func (m *StateMachine) beginDocument() {
	mark := m.r.Mark()
	explicit := false
	if ind, ok := m.r.NextIsDocumentIndicator(); ok && ind == '-' {
		explicit = true
		m.r.Skip(3)
		m.skipRestOfLine()
	}
	m.push(frame{kind: frameDocument, indent: 0})
	m.emit(Event{Kind: EventDocumentStart, Mark: mark, Explicit: explicit})
}

func (m *StateMachine) skipRestOfLine() {
	m.r.SkipWSToEOL(true)
	if m.r.NextIsBreak() {
		skipLineBreak(m.r)
	}
}

// stepDocumentBody dispatches the single root node of a document: for a
// collection it marks the document frame's body as dispatched and pushes the
// collection frame on top of it; for a bare scalar or alias document it emits
// the node and closes the document frame directly.
func (m *StateMachine) stepDocumentBody() {
	mark := m.r.Mark()
	m.consumeProperties()

	b, ok := m.r.Peek()
	if !ok {
		m.popTo(len(m.stack) - 1)
		return
	}

	doc := m.top()
	switch {
	case b == '-' && isDashSequenceEntry(m.r):
		doc.bodyDone = true
		m.openBlockSequence(mark)
	case b == '[':
		doc.bodyDone = true
		m.openFlowSequence(mark)
	case b == '{':
		doc.bodyDone = true
		m.openFlowMapping(mark)
	case b == '*':
		m.emitAlias(mark)
		m.popTo(len(m.stack) - 1)
	case looksLikeMappingKey(m.r):
		doc.bodyDone = true
		m.openBlockMapping(mark)
	default:
		m.emitScalarNode(mark, false, 0)
		m.popTo(len(m.stack) - 1)
	}
}

func (m *StateMachine) consumeProperties() {
	for {
		b, ok := m.r.Peek()
		if !ok {
			return
		}
		switch b {
		case '!':
			if m.pendingTag != nil {
				m.fail(ErrDuplicateTagProperty, m.r.Mark())
				return
			}
			m.pendingTag = m.readToken()
		case '&':
			if m.pendingAnchor != nil {
				m.fail(ErrDuplicateAnchorProperty, m.r.Mark())
				return
			}
			m.pendingAnchor = m.readToken()[1:]
		default:
			return
		}
		m.r.SkipWhileBlank()
	}
}

// readToken consumes a '!'- or '&'-prefixed property token up to the next
// blank/break/flow-indicator.
func (m *StateMachine) readToken() []byte {
	start := m.r.pos
	m.r.SkipByte() // the '!' or '&'
	for {
		b, ok := m.r.Peek()
		if !ok || b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == ',' || b == '[' || b == ']' || b == '{' || b == '}' {
			break
		}
		m.r.SkipByte()
	}
	return m.r.Slice(start, m.r.pos)
}

func (m *StateMachine) emitAlias(mark Mark) {
	name := m.readToken()
	m.emit(Event{Kind: EventAlias, Mark: mark, Value: name[1:]})
}

func (m *StateMachine) emitScalarNode(mark Mark, inFlow bool, indent int) {
	kind, value, err := m.readScalarByStyle(inFlow, indent)
	ev := Event{Kind: EventScalar, Mark: mark, ScalarKind: kind, Value: value, Tag: m.pendingTag, Anchor: m.pendingAnchor}
	m.pendingTag, m.pendingAnchor = nil, nil
	if err != nil {
		se, _ := err.(*SyntaxError)
		if se == nil {
			se = &SyntaxError{Kind: ErrUnknown, Mark: mark}
		}
		m.fail(se.Kind, se.Mark)
		return
	}
	m.emit(ev)
}

func (m *StateMachine) readScalarByStyle(inFlow bool, indent int) (ScalarKind, []byte, error) {
	b, _ := m.r.Peek()
	switch b {
	case '\'':
		v, err := m.sr.ReadSingleQuoted()
		return ScalarSingleQuoted, v, err
	case '"':
		v, err := m.sr.ReadDoubleQuoted()
		return ScalarDoubleQuoted, v, err
	case '|':
		m.r.SkipByte()
		v, err := m.sr.ReadBlockScalar(ScalarLiteral, indent)
		return ScalarLiteral, v, err
	case '>':
		m.r.SkipByte()
		v, err := m.sr.ReadBlockScalar(ScalarFolded, indent)
		return ScalarFolded, v, err
	default:
		v, err := m.sr.ReadPlainScalar(inFlow, indent)
		return ScalarPlain, v, err
	}
}

// isDashSequenceEntry reports whether the reader sits on a '-' that
// introduces a block sequence entry (followed by whitespace or end of
// line), as opposed to a plain scalar beginning with '-'.
func isDashSequenceEntry(r *Reader) bool {
	b, ok := r.Peek()
	if !ok || b != '-' {
		return false
	}
	next, hasNext := r.PeekAt(1)
	return !hasNext || next == ' ' || next == '\t' || next == '\n' || next == '\r'
}

// looksLikeMappingKey scans ahead on the current line (without consuming
// input) for an unquoted ": " mapping value indicator, to distinguish a
// mapping key from a bare scalar node.
func looksLikeMappingKey(r *Reader) bool {
	depth := 0
	quote := byte(0)
	for n := 0; ; n++ {
		b, ok := r.PeekAt(n)
		if !ok || b == '\n' || b == '\r' {
			return false
		}
		if quote != 0 {
			if b == quote {
				quote = 0
			}
			continue
		}
		switch b {
		case '\'', '"':
			quote = b
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case ':':
			if depth == 0 {
				next, hasNext := r.PeekAt(n + 1)
				if !hasNext || next == ' ' || next == '\t' || next == '\n' || next == '\r' {
					return true
				}
			}
		case '#':
			if n > 0 {
				prev, _ := r.PeekAt(n - 1)
				if prev == ' ' || prev == '\t' {
					return false
				}
			}
		}
	}
}

func (m *StateMachine) openBlockSequence(mark Mark) {
	indent := m.r.col
	m.emit(Event{Kind: EventSequenceStart, Mark: mark, Flow: false, Tag: m.pendingTag, Anchor: m.pendingAnchor})
	m.pendingTag, m.pendingAnchor = nil, nil
	m.push(frame{kind: frameSequence, indent: indent, flow: false})
}

func (m *StateMachine) openFlowSequence(mark Mark) {
	m.emit(Event{Kind: EventSequenceStart, Mark: mark, Flow: true, Tag: m.pendingTag, Anchor: m.pendingAnchor})
	m.pendingTag, m.pendingAnchor = nil, nil
	m.r.SkipByte()
	m.push(frame{kind: frameSequence, indent: m.r.col, flow: true})
}

func (m *StateMachine) openFlowMapping(mark Mark) {
	m.emit(Event{Kind: EventMappingStart, Mark: mark, Flow: true, Tag: m.pendingTag, Anchor: m.pendingAnchor})
	m.pendingTag, m.pendingAnchor = nil, nil
	m.r.SkipByte()
	m.push(frame{kind: frameMapping, indent: m.r.col, flow: true, expectKey: true})
}

func (m *StateMachine) openBlockMapping(mark Mark) {
	indent := m.r.col
	m.emit(Event{Kind: EventMappingStart, Mark: mark, Flow: false, Tag: m.pendingTag, Anchor: m.pendingAnchor})
	m.pendingTag, m.pendingAnchor = nil, nil
	m.push(frame{kind: frameMapping, indent: indent, flow: false, expectKey: true})
}

func (m *StateMachine) stepSequence(f frame) {
	if f.flow {
		m.stepFlowSequenceEntry(f)
		return
	}
	if m.r.col < f.indent {
		m.popTo(len(m.stack) - 1)
		return
	}
	if !isDashSequenceEntry(m.r) {
		m.popTo(len(m.stack) - 1)
		return
	}
	mark := m.r.Mark()
	m.r.SkipByte()
	m.r.SkipWhileBlank()
	if m.r.NextIsBreak() || m.r.AtEnd() {
		// empty entry: a null scalar
		m.emit(Event{Kind: EventScalar, Mark: mark, ScalarKind: ScalarPlain})
		return
	}
	m.consumeProperties()
	m.dispatchNode(mark, false, m.r.col)
}

func (m *StateMachine) stepFlowSequenceEntry(f frame) {
	m.r.SkipWhileBlank()
	b, ok := m.r.Peek()
	if !ok {
		m.fail(ErrUnbalancedFlowBracket, m.r.Mark())
		return
	}
	if b == ']' {
		m.r.SkipByte()
		m.popTo(len(m.stack) - 1)
		return
	}
	if b == ',' {
		m.r.SkipByte()
		return
	}
	mark := m.r.Mark()
	m.consumeProperties()
	m.dispatchNode(mark, true, f.indent)
}

func (m *StateMachine) stepMapping(f frame) {
	if f.flow {
		m.stepFlowMappingEntry(&m.stack[len(m.stack)-1])
		return
	}
	if m.r.col < f.indent || isDashSequenceEntry(m.r) {
		m.popTo(len(m.stack) - 1)
		return
	}
	if !looksLikeMappingKey(m.r) {
		m.popTo(len(m.stack) - 1)
		return
	}
	mark := m.r.Mark()
	m.consumeProperties()
	kind, value, err := m.readScalarByStyle(false, f.indent)
	if err != nil {
		se, _ := err.(*SyntaxError)
		if se == nil {
			se = &SyntaxError{Kind: ErrUnknown, Mark: mark}
		}
		m.fail(se.Kind, se.Mark)
		return
	}
	m.emit(Event{Kind: EventScalar, Mark: mark, ScalarKind: kind, Value: value, Tag: m.pendingTag, Anchor: m.pendingAnchor})
	m.pendingTag, m.pendingAnchor = nil, nil

	m.r.SkipWhileBlank()
	b, ok := m.r.Peek()
	if !ok || b != ':' {
		m.fail(ErrMissingMappingValue, m.r.Mark())
		return
	}
	m.r.SkipByte()
	m.r.SkipWhileBlank()
	if m.r.NextIsBreak() || m.r.AtEnd() {
		m.emit(Event{Kind: EventScalar, Mark: m.r.Mark(), ScalarKind: ScalarPlain})
		return
	}
	valMark := m.r.Mark()
	m.consumeProperties()
	m.dispatchNode(valMark, false, f.indent)
}

func (m *StateMachine) stepFlowMappingEntry(f *frame) {
	m.r.SkipWhileBlank()
	b, ok := m.r.Peek()
	if !ok {
		m.fail(ErrUnbalancedFlowBracket, m.r.Mark())
		return
	}
	if b == '}' {
		m.r.SkipByte()
		m.popTo(len(m.stack) - 1)
		return
	}
	if b == ',' {
		m.r.SkipByte()
		f.expectKey = true
		return
	}
	mark := m.r.Mark()
	if f.expectKey {
		m.consumeProperties()
		kind, value, err := m.readScalarByStyle(true, f.indent)
		if err != nil {
			se, _ := err.(*SyntaxError)
			if se == nil {
				se = &SyntaxError{Kind: ErrUnknown, Mark: mark}
			}
			m.fail(se.Kind, se.Mark)
			return
		}
		m.emit(Event{Kind: EventScalar, Mark: mark, ScalarKind: kind, Value: value, Tag: m.pendingTag, Anchor: m.pendingAnchor})
		m.pendingTag, m.pendingAnchor = nil, nil
		m.r.SkipWhileBlank()
		if nb, ok := m.r.Peek(); ok && nb == ':' {
			m.r.SkipByte()
		}
		f.expectKey = false
		return
	}
	m.consumeProperties()
	m.dispatchNode(mark, true, f.indent)
	f.expectKey = true
}

// dispatchNode decides whether the node at the reader's current position is
// a nested collection, an alias, or a scalar, pushing/emitting accordingly.
func (m *StateMachine) dispatchNode(mark Mark, inFlow bool, indent int) {
	b, ok := m.r.Peek()
	if !ok {
		m.emit(Event{Kind: EventScalar, Mark: mark, ScalarKind: ScalarPlain})
		return
	}
	switch {
	case b == '-' && !inFlow && isDashSequenceEntry(m.r):
		m.openBlockSequence(mark)
	case b == '[':
		m.openFlowSequence(mark)
	case b == '{':
		m.openFlowMapping(mark)
	case b == '*':
		m.emitAlias(mark)
	case !inFlow && looksLikeMappingKey(m.r):
		m.openBlockMapping(mark)
	default:
		m.emitScalarNode(mark, inFlow, indent)
	}
}
