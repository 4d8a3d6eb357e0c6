package utils

import (
	"github.com/fernandosanchezjr/sha256-simd"
)

func DoubleHash(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// DoubleHashPair hashes the concatenation of two 32-byte nodes. Used by the
// note commitment tree when combining siblings.
func DoubleHashPair(left, right [32]byte) [32]byte {
	var combined [64]byte
	copy(combined[:32], left[:])
	copy(combined[32:], right[:])
	return DoubleHash(combined[:])
}
