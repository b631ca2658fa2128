package simdyaml

import "io"

// Parser reads a sequence of Events from YAML-encoded input: a pull adapter
// over StateMachine with a Next method the caller calls in a loop.
//
// # Configuration (Policy)
//
// ParserOptions controls size limits and input handling.
//
// # Implementation (Mechanism)
//
// A Parser made by NewParser or NewParserWithOptions defers reading its
// source, Stage 1 scanning and StateMachine construction until the first
// call to Next; NewParserFromBytes does the scanning and construction at
// once.
type Parser struct {
	source io.Reader
	opts   ParserOptions

	data        []byte
	scan        *scanResult
	sm          *StateMachine
	initialized bool
	initErr     error
}

// ParserOptions holds extended configuration for Parser.
type ParserOptions struct {
	// MaxInputSize caps the number of bytes read from source.
	//   - 0: use DefaultMaxInputSize
	//   - -1: unlimited
	//   - >0: custom limit
	MaxInputSize int64
}

// NewParser returns a Parser that reads from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{source: r}
}

// NewParserWithOptions creates a Parser with extended options.
func NewParserWithOptions(r io.Reader, opts ParserOptions) *Parser {
	return &Parser{source: r, opts: opts}
}

// NewParserFromBytes returns a Parser over an in-memory document, skipping
// the io.Reader indirection entirely.
func NewParserFromBytes(data []byte) *Parser {
	return &Parser{data: data, initialized: true, sm: NewStateMachine(data), scan: scanDocument(data)}
}

// NewParserFromString is a convenience wrapper over NewParserFromBytes.
func NewParserFromString(s string) *Parser {
	return NewParserFromBytes([]byte(s))
}

// Next returns the next Event, or false once the stream is exhausted or an
// unrecoverable setup error (I/O, size limit) occurred -- check Err in that
// case.
func (p *Parser) Next() (Event, bool) {
	if err := p.ensureInitialized(); err != nil {
		return Event{}, false
	}
	return p.sm.Next()
}

// Err returns any error encountered initializing the parser (distinct from
// in-stream EventError values, which Next already surfaced as events).
func (p *Parser) Err() error { return p.initErr }

func (p *Parser) ensureInitialized() error {
	if p.initialized {
		return p.initErr
	}
	p.initialized = true

	maxSize := p.opts.MaxInputSize
	if maxSize == 0 {
		maxSize = DefaultMaxInputSize
	}
	var data []byte
	var err error
	if maxSize > 0 {
		limited := io.LimitReader(p.source, maxSize+1)
		data, err = io.ReadAll(limited)
		if err == nil && int64(len(data)) > maxSize {
			err = ErrInputTooLarge
		}
	} else {
		data, err = io.ReadAll(p.source)
	}
	if err != nil {
		p.initErr = err
		return err
	}

	p.data = data
	p.scan = scanDocument(data)
	p.sm = NewStateMachine(data)
	return nil
}

// Close releases pooled Stage 1 resources by returning the scanResult to its
// pool. Draining the stream with Next does not release it; only Close does.
func (p *Parser) Close() {
	if p.scan != nil {
		releaseScanResult(p.scan)
		p.scan = nil
	}
}

// ParseAll reads every event from r into a slice, primarily useful for tests
// and the oracle renderer.
func ParseAll(r io.Reader) ([]Event, error) {
	p := NewParser(r)
	defer p.Close()
	var events []Event
	for {
		ev, ok := p.Next()
		if !ok {
			return events, p.Err()
		}
		events = append(events, ev)
	}
}

// ParseBytes parses an in-memory document into a slice of Events.
func ParseBytes(data []byte) ([]Event, error) {
	p := NewParserFromBytes(data)
	defer p.Close()
	var events []Event
	for {
		ev, ok := p.Next()
		if !ok {
			return events, p.Err()
		}
		events = append(events, ev)
	}
}
