//go:build goexperiment.simd && amd64

package simdyaml

import (
	"simd/archsimd"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// useAVX512 indicates whether AVX-512 instructions are available at runtime,
// set once at init time, mirroring simd_scanner.go's useAVX512/init()
// dispatch and the same three required feature flags.
var useAVX512 bool

func init() {
	useAVX512 = cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL
}

// avxMinThreshold mirrors simdMinThreshold: below this size the scalar
// classifier is not worth dispatching around.
const avxMinThreshold = 64

// rawEqualityMasksAVX512 computes the seven raw single-byte-equality masks
// that are embarrassingly parallel (no cross-byte state): the two quote
// characters, hash, space, tab and the two line-break bytes. The sequential parts of
// classification (quote nesting, backslash-escape parity, comment-region
// extension) are not simple equality compares and stay on the scalar walk in
// classifyChunk; only the equality-compare portion is vectorized here.
func rawEqualityMasksAVX512(data []byte) (sq, dq, hash, sp, tab, lf, cr uint64) {
	if len(data) < chunkSize {
		return rawEqualityMasksScalar(data)
	}
	base := unsafe.Pointer(&data[0])
	chunk := archsimd.LoadInt8x64((*[64]int8)(base))

	sq = chunk.Equal(archsimd.BroadcastInt8x64('\'')).ToBits()
	dq = chunk.Equal(archsimd.BroadcastInt8x64('"')).ToBits()
	hash = chunk.Equal(archsimd.BroadcastInt8x64('#')).ToBits()
	sp = chunk.Equal(archsimd.BroadcastInt8x64(' ')).ToBits()
	tab = chunk.Equal(archsimd.BroadcastInt8x64('\t')).ToBits()
	lf = chunk.Equal(archsimd.BroadcastInt8x64('\n')).ToBits()
	cr = chunk.Equal(archsimd.BroadcastInt8x64('\r')).ToBits()
	return sq, dq, hash, sp, tab, lf, cr
}

func rawEqualityMasksScalar(data []byte) (sq, dq, hash, sp, tab, lf, cr uint64) {
	for i, b := range data {
		bit := uint64(1) << uint(i)
		switch b {
		case '\'':
			sq |= bit
		case '"':
			dq |= bit
		case '#':
			hash |= bit
		case ' ':
			sp |= bit
		case '\t':
			tab |= bit
		case '\n':
			lf |= bit
		case '\r':
			cr |= bit
		}
	}
	return sq, dq, hash, sp, tab, lf, cr
}
