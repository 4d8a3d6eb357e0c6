package utils

import (
	"encoding/hex"
	"testing"
)

func TestDoubleHash(t *testing.T) {
	// double-SHA256 of the empty string
	expected := "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456"
	hash := DoubleHash(nil)
	if hex.EncodeToString(hash[:]) != expected {
		t.Fatal("unexpected empty double hash:", hex.EncodeToString(hash[:]))
	}
}

func TestDoubleHashPair(t *testing.T) {
	var left, right [32]byte
	left[0] = 0x01
	right[0] = 0x02
	var combined [64]byte
	copy(combined[:32], left[:])
	copy(combined[32:], right[:])
	direct := DoubleHash(combined[:])
	paired := DoubleHashPair(left, right)
	if direct != paired {
		t.Fatal("pair hash does not match direct hash")
	}
	if DoubleHashPair(right, left) == paired {
		t.Fatal("pair hash should depend on sibling order")
	}
}
