package simdyaml

import "testing"

func classify(t *testing.T, data string) (chunkMasks, scanCarry) {
	t.Helper()
	carry := newScanCarry()
	m, _ := classifyChunk([]byte(data), &carry)
	return m, carry
}

func TestClassifyChunkStructuralAndWhitespace(t *testing.T) {
	m, _ := classify(t, "key: value\n")
	if want := uint64(1 << 3); m.structural != want {
		t.Errorf("structural = %064b, want %064b", m.structural, want)
	}
	if want := uint64(1 << 4); m.whitespace != want {
		t.Errorf("whitespace = %064b, want %064b", m.whitespace, want)
	}
	if want := uint64(1 << 10); m.newline != want {
		t.Errorf("newline = %064b, want %064b", m.newline, want)
	}
	if m.comment != 0 || m.inString != 0 {
		t.Errorf("expected no comment/inString bits, got comment=%v inString=%v", m.comment, m.inString)
	}
}

func TestClassifyChunkSingleQuoteDoubling(t *testing.T) {
	m, _ := classify(t, "'it''s'\n")
	wantSQ := uint64(0x7F) // bits 0-6
	if m.singleQuote != wantSQ {
		t.Errorf("singleQuote = %07b, want %07b", m.singleQuote, wantSQ)
	}
	if m.inString != wantSQ {
		t.Errorf("inString = %07b, want %07b", m.inString, wantSQ)
	}
	if want := uint64(1 << 7); m.newline != want {
		t.Errorf("newline = %b, want %b", m.newline, want)
	}
}

func TestClassifyChunkDoubleQuoteEscapedQuote(t *testing.T) {
	// `"a\"b"` (6 bytes): a backslash-escaped quote must stay inside the string.
	m, _ := classify(t, "\"a\\\"b\"")
	wantDQ := uint64(0x3F) // bits 0-5
	if m.doubleQuote != wantDQ {
		t.Errorf("doubleQuote = %06b, want %06b", m.doubleQuote, wantDQ)
	}
}

func TestClassifyChunkCommentRequiresPrecedingWhitespace(t *testing.T) {
	m, _ := classify(t, "a #c\n")
	if want := uint64(0b1100); m.comment != want {
		t.Errorf("comment = %04b, want %04b", m.comment, want)
	}

	m2, _ := classify(t, "a#b\n")
	if m2.comment != 0 {
		t.Errorf("comment = %b, want 0 ('#' not preceded by whitespace is plain content)", m2.comment)
	}
}

func TestClassifyChunkCRLFNormalizesToSingleBreak(t *testing.T) {
	m, _ := classify(t, "a\r\nb")
	if want := uint64(1 << 2); m.newline != want {
		t.Errorf("newline = %b, want a single break at the \\n position (%b)", m.newline, want)
	}
}

func TestClassifyChunkIsolatedCR(t *testing.T) {
	m, _ := classify(t, "a\rb")
	if want := uint64(1 << 1); m.newline != want {
		t.Errorf("newline = %b, want a break at the lone \\r position (%b)", m.newline, want)
	}
}

func TestClassifyChunkPendingCRAcrossBoundary(t *testing.T) {
	carry := newScanCarry()
	m1, boundary1 := classifyChunk([]byte("a\r"), &carry)
	if boundary1 {
		t.Fatalf("first chunk reported a boundary newline before seeing the next chunk")
	}
	if m1.newline != 0 {
		t.Errorf("first chunk newline = %b, want 0 (pending)", m1.newline)
	}
	if !carry.pendingCR {
		t.Fatalf("expected pendingCR to carry across the chunk boundary")
	}

	_, boundary2 := classifyChunk([]byte("b"), &carry)
	if !boundary2 {
		t.Errorf("expected the carried '\\r' to resolve to an isolated break")
	}
}

func TestClassifyChunkPendingCRResolvesAsCRLF(t *testing.T) {
	carry := newScanCarry()
	classifyChunk([]byte("a\r"), &carry)
	_, boundary := classifyChunk([]byte("\nb"), &carry)
	if boundary {
		t.Errorf("a carried '\\r' followed by '\\n' must not also report a boundary break")
	}
}
