package simdyaml

import "testing"

func TestScanDocumentStructuralsAndMarks(t *testing.T) {
	data := []byte("key: value\n")
	sr := scanDocument(data)
	defer releaseScanResult(sr)

	if len(sr.structurals) != 1 || sr.structurals[0] != 3 {
		t.Fatalf("structurals = %v, want [3]", sr.structurals)
	}
	want := Mark{Offset: 3, Line: 1, Column: 4}
	if sr.marks[0] != want {
		t.Errorf("marks[0] = %+v, want %+v", sr.marks[0], want)
	}
	if len(sr.newlines) != 1 || sr.newlines[0] != 10 {
		t.Errorf("newlines = %v, want [10]", sr.newlines)
	}
	if sr.hasQuotes {
		t.Errorf("hasQuotes = true, want false")
	}
}

func TestScanDocumentHasQuotes(t *testing.T) {
	sr := scanDocument([]byte("key: \"value\"\n"))
	defer releaseScanResult(sr)
	if !sr.hasQuotes {
		t.Errorf("hasQuotes = false, want true")
	}
}

func TestScanDocumentSpansMultipleChunks(t *testing.T) {
	// 70 bytes of padding plus a structural byte crosses the 64-byte chunk
	// boundary, exercising carry propagation across chunks.
	data := make([]byte, 0, 80)
	for i := 0; i < 70; i++ {
		data = append(data, 'a')
	}
	data = append(data, ':', ' ', 'b', '\n')
	sr := scanDocument(data)
	defer releaseScanResult(sr)

	if len(sr.structurals) != 1 || sr.structurals[0] != 70 {
		t.Fatalf("structurals = %v, want [70]", sr.structurals)
	}
	if sr.marks[0].Column != 71 {
		t.Errorf("marks[0].Column = %d, want 71", sr.marks[0].Column)
	}
}

func TestScanResultPoolReuse(t *testing.T) {
	sr := scanDocument([]byte("a: b\n"))
	releaseScanResult(sr)

	sr2 := scanDocument([]byte("c: d\ne: f\n"))
	defer releaseScanResult(sr2)
	if len(sr2.structurals) != 2 {
		t.Fatalf("structurals = %v, want 2 entries after reuse", sr2.structurals)
	}
}
