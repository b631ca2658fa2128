package simdyaml

import (
	"bytes"
	"fmt"
	"testing"
)

// generateFlatMapping generates n "key: value" block mapping entries.
func generateFlatMapping(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "key%d: value%d\n", i, i)
	}
	return buf.Bytes()
}

// generateNestedSequence generates n block sequence entries each containing
// a two-key mapping, exercising nested context-stack transitions.
func generateNestedSequence(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "- name: item%d\n  value: %d\n", i, i)
	}
	return buf.Bytes()
}

// generateQuotedMapping generates n entries whose values are double-quoted
// scalars containing escapes, exercising ScalarReader's escape table.
func generateQuotedMapping(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "key%d: \"line one\\nline two \\\"quoted\\\"\"\n", i)
	}
	return buf.Bytes()
}

func benchmarkParseAll(b *testing.B, data []byte) {
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		if _, err := ParseBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_FlatMapping_1K(b *testing.B) {
	benchmarkParseAll(b, generateFlatMapping(1000))
}

func BenchmarkParse_FlatMapping_10K(b *testing.B) {
	benchmarkParseAll(b, generateFlatMapping(10000))
}

func BenchmarkParse_NestedSequence_1K(b *testing.B) {
	benchmarkParseAll(b, generateNestedSequence(1000))
}

func BenchmarkParse_QuotedMapping_1K(b *testing.B) {
	benchmarkParseAll(b, generateQuotedMapping(1000))
}
