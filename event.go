package simdyaml

// Mark identifies a position in the input: a byte offset plus the 1-indexed
// line and column it falls on. Columns are counted in bytes, not runes.
type Mark struct {
	Offset int
	Line   int
	Column int
}

// EventKind discriminates the tagged union carried by Event.
type EventKind int

const (
	// EventDocumentStart marks the beginning of a YAML document (`---` or
	// implicit).
	EventDocumentStart EventKind = iota
	// EventDocumentEnd marks the end of a YAML document (`...` or implicit).
	EventDocumentEnd
	// EventSequenceStart marks the start of a block or flow sequence.
	EventSequenceStart
	// EventSequenceEnd marks the end of a block or flow sequence.
	EventSequenceEnd
	// EventMappingStart marks the start of a block or flow mapping.
	EventMappingStart
	// EventMappingEnd marks the end of a block or flow mapping.
	EventMappingEnd
	// EventScalar carries a scalar value and its style.
	EventScalar
	// EventAlias carries an alias reference (`*name`).
	EventAlias
	// EventDirective carries a `%YAML` or `%TAG` directive.
	EventDirective
	// EventError carries a recovered parse error; the stream continues with
	// synthetic closing events to keep nesting balanced.
	EventError
)

// String names the kind the way the oracle line format renders it.
func (k EventKind) String() string {
	switch k {
	case EventDocumentStart:
		return "+DOC"
	case EventDocumentEnd:
		return "-DOC"
	case EventSequenceStart:
		return "+SEQ"
	case EventSequenceEnd:
		return "-SEQ"
	case EventMappingStart:
		return "+MAP"
	case EventMappingEnd:
		return "-MAP"
	case EventScalar:
		return "=VAL"
	case EventAlias:
		return "=ALI"
	case EventDirective:
		return "=DIR"
	case EventError:
		return "ERR"
	default:
		return "?"
	}
}

// ScalarKind distinguishes the five YAML 1.2 scalar styles.
type ScalarKind int

const (
	ScalarPlain ScalarKind = iota
	ScalarSingleQuoted
	ScalarDoubleQuoted
	ScalarFolded // '>' block scalar
	ScalarLiteral // '|' block scalar
)

func (k ScalarKind) tag() byte {
	switch k {
	case ScalarPlain:
		return ':'
	case ScalarSingleQuoted:
		return '\''
	case ScalarDoubleQuoted:
		return '"'
	case ScalarFolded:
		return '>'
	case ScalarLiteral:
		return '|'
	default:
		return '?'
	}
}

// DirectiveKind distinguishes the directive forms a StateMachine recognizes.
type DirectiveKind int

const (
	DirectiveYAML DirectiveKind = iota
	DirectiveTag
	DirectiveReserved
)

// Event is the single flat type emitted by EventIterator/Parser. Only the
// fields relevant to Kind are populated: one plain struct with a discriminant
// field, rather than an interface hierarchy per event kind.
type Event struct {
	Kind EventKind
	Mark Mark

	// Explicit reports whether a DocumentStart/DocumentEnd used the explicit
	// `---`/`...` marker rather than an implicit document boundary.
	Explicit bool

	// Flow reports whether a Sequence/Mapping start used flow (`[]`/`{}`)
	// syntax rather than block indentation.
	Flow bool

	// Tag and Anchor hold pending node properties: at most one of each may be
	// attached to the node that follows. Both are nil when absent. Tag is
	// stored as the raw syntactic token (e.g. "!!str", "!local",
	// "!<tag:uri>") without resolving %TAG handles to URIs -- schema/tag
	// resolution is out of scope.
	Tag    []byte
	Anchor []byte

	// Value holds scalar content (already unescaped/unfolded) for
	// EventScalar, the alias target name for EventAlias, and the raw
	// directive payload for EventDirective.
	Value []byte

	// ScalarKind is set for EventScalar.
	ScalarKind ScalarKind

	// DirectiveKind is set for EventDirective.
	DirectiveKind DirectiveKind

	// Err carries the recovered error for EventError; the stream remains
	// valid and balanced after it (synthetic -MAP/-SEQ/-DOC events close any
	// open collections).
	Err error
}
