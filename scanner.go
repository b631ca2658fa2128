package simdyaml

import (
	"math/bits"
	"sync"
)

// scanResult is Stage 1's output: the structural index vector, the raw bytes
// it indexes into, and the Mark (line/column) of each structural position.
// The per-mask-type vectors a comma/quote/newline scanner would keep collapse
// here into a single flat structural-index vector plus per-index marks. The
// StateMachine does not read this result: it walks the raw bytes through its
// own Reader.
type scanResult struct {
	data        []byte
	structurals []int
	marks       []Mark
	newlines    []int // absolute offsets of newline structural positions, ascending
	hasQuotes   bool
}

// scanResultPoolCapacity is the initial capacity, in entries, of a pooled
// scanResult's structural-index and mark slices (the newline slice starts at
// a quarter of it); the slices grow past it as needed.
const scanResultPoolCapacity = 1024

var scanResultPool = sync.Pool{
	New: func() interface{} {
		return &scanResult{
			structurals: make([]int, 0, scanResultPoolCapacity),
			marks:       make([]Mark, 0, scanResultPoolCapacity),
			newlines:    make([]int, 0, scanResultPoolCapacity/4),
		}
	},
}

func (sr *scanResult) reset() {
	sr.data = nil
	sr.structurals = sr.structurals[:0]
	sr.marks = sr.marks[:0]
	sr.newlines = sr.newlines[:0]
	sr.hasQuotes = false
}

func releaseScanResult(sr *scanResult) {
	sr.reset()
	scanResultPool.Put(sr)
}

// scanDocument drives classifyChunk across data in chunkSize slices, carrying
// quote/comment/backslash state across chunk boundaries, and flattens each
// chunk's structural mask into an absolute-offset index vector via
// appendStructuralIndices, stamping each with its Mark via a running
// columnRowCursor.
func scanDocument(data []byte) *scanResult {
	sr := scanResultPool.Get().(*scanResult)
	sr.reset()
	sr.data = data

	carry := newScanCarry()
	cursor := newColumnRowCursor()

	for base := 0; base < len(data); base += chunkSize {
		end := base + chunkSize
		if end > len(data) {
			end = len(data)
		}
		chunk := data[base:end]

		m, boundaryNewline := classifyChunk(chunk, &carry)
		if boundaryNewline {
			sr.newlines = append(sr.newlines, base-1)
		}

		if m.singleQuote != 0 || m.doubleQuote != 0 {
			sr.hasQuotes = true
		}

		sr.structurals = appendStructuralIndices(sr.structurals, base, m.structural)

		for bit := m.newline; bit != 0; {
			pos := bits.TrailingZeros64(bit)
			sr.newlines = append(sr.newlines, base+pos)
			bit &^= uint64(1) << uint(pos)
		}
	}

	// Stamp marks for every structural index, in ascending order, using a
	// single forward pass of the cursor (structurals is already sorted since
	// each chunk is flattened in ascending order and chunks are processed in
	// ascending base order).
	sr.marks = sr.marks[:0]
	for _, idx := range sr.structurals {
		sr.marks = append(sr.marks, cursor.markAt(data, idx))
	}

	return sr
}

// markAtOffset resolves the Mark for an arbitrary offset not necessarily in
// the structural index vector (e.g. the start of a scalar), by replaying the
// cursor from the start of input, an O(offset) walk. Nothing in the package
// calls it; scanDocument's marks vector above covers the structural
// positions in a single forward pass.
func markAtOffset(data []byte, offset int) Mark {
	cursor := newColumnRowCursor()
	return cursor.markAt(data, offset)
}

