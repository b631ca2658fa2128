package simdyaml

import (
	"bytes"
	"strings"
	"testing"
)

func TestParserNextMatchesStateMachine(t *testing.T) {
	data := "key: value\n"
	p := NewParserFromBytes([]byte(data))
	defer p.Close()

	var kinds []EventKind
	for {
		ev, ok := p.Next()
		if !ok {
			break
		}
		kinds = append(kinds, ev.Kind)
	}
	want := []EventKind{EventDocumentStart, EventMappingStart, EventScalar, EventScalar, EventMappingEnd, EventDocumentEnd}
	if len(kinds) != len(want) {
		t.Fatalf("got %d events, want %d", len(kinds), len(want))
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestParseBytesAndParseAllAgree(t *testing.T) {
	data := []byte("- a\n- b\n")
	viaBytes, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("ParseBytes error: %v", err)
	}
	viaReader, err := ParseAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseAll error: %v", err)
	}
	if len(viaBytes) != len(viaReader) {
		t.Fatalf("ParseBytes produced %d events, ParseAll produced %d", len(viaBytes), len(viaReader))
	}
	for i := range viaBytes {
		if viaBytes[i].Kind != viaReader[i].Kind {
			t.Errorf("events[%d].Kind differ: %v vs %v", i, viaBytes[i].Kind, viaReader[i].Kind)
		}
		if !bytes.Equal(viaBytes[i].Value, viaReader[i].Value) {
			t.Errorf("events[%d].Value differ: %q vs %q", i, viaBytes[i].Value, viaReader[i].Value)
		}
	}
}

func TestParserMaxInputSizeRejectsOversizedInput(t *testing.T) {
	data := strings.Repeat("a", 100)
	p := NewParserWithOptions(strings.NewReader(data), ParserOptions{MaxInputSize: 10})
	defer p.Close()

	_, ok := p.Next()
	if ok {
		t.Fatalf("Next() = true, want false for input exceeding MaxInputSize")
	}
	if p.Err() != ErrInputTooLarge {
		t.Errorf("Err() = %v, want ErrInputTooLarge", p.Err())
	}
}

func TestParserMaxInputSizeAllowsInputAtLimit(t *testing.T) {
	data := "key: value\n"
	p := NewParserWithOptions(strings.NewReader(data), ParserOptions{MaxInputSize: int64(len(data))})
	defer p.Close()

	events, err := drainParser(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) == 0 {
		t.Fatalf("expected events, got none")
	}
}

func drainParser(p *Parser) ([]Event, error) {
	var events []Event
	for {
		ev, ok := p.Next()
		if !ok {
			return events, p.Err()
		}
		events = append(events, ev)
	}
}

func TestNewParserFromString(t *testing.T) {
	p := NewParserFromString("a: b\n")
	defer p.Close()
	ev, ok := p.Next()
	if !ok || ev.Kind != EventDocumentStart {
		t.Fatalf("first event = %+v, %v, want EventDocumentStart, true", ev, ok)
	}
}
