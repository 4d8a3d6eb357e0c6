package equihash

import (
	"bytes"
	"errors"
)

var (
	ErrInvalidSolution = errors.New("equihash: solution does not satisfy the puzzle")
	ErrDuplicateIndex  = errors.New("equihash: solution reuses a leaf index")
	ErrIndexOrdering   = errors.New("equihash: solution violates subtree ordering")
)

// Verify checks a minimally encoded solution against the seeded state: it
// recomputes the leaf hashes and replays the collision tree, requiring a
// chunk collision and left-smaller sibling ordering at every level, distinct
// leaf indices, and a zero final XOR.
func Verify(n, k uint32, s *State, solution []byte) error {
	if err := validateParams(n, k); err != nil {
		return err
	}
	if s == nil || s.n != n || s.k != k {
		return ErrBadParams
	}
	cBitLen := collisionBitLength(n, k)
	cBytes := (cBitLen + 7) / 8
	chunks := int(k) + 1
	width := chunks * cBytes
	count := 1 << k

	indices, err := unpackBits(solution, cBitLen+1, count)
	if err != nil {
		return err
	}
	seen := make(map[uint32]struct{}, count)
	for _, idx := range indices {
		if _, dup := seen[idx]; dup {
			return ErrDuplicateIndex
		}
		seen[idx] = struct{}{}
	}

	rows := make([]item, count)
	for i, idx := range indices {
		rows[i] = item{
			hash:    expandHash(s.hashForIndex(idx), cBitLen, cBytes, chunks),
			indices: []uint32{idx},
		}
	}
	for r := 0; r < int(k); r++ {
		off := r * cBytes
		next := make([]item, 0, len(rows)/2)
		for i := 0; i < len(rows); i += 2 {
			a, b := rows[i], rows[i+1]
			if !bytes.Equal(a.hash[off:off+cBytes], b.hash[off:off+cBytes]) {
				return ErrInvalidSolution
			}
			if a.indices[0] >= b.indices[0] {
				return ErrIndexOrdering
			}
			hash := make([]byte, width)
			for c := 0; c < width; c++ {
				hash[c] = a.hash[c] ^ b.hash[c]
			}
			indices := append(append([]uint32{}, a.indices...), b.indices...)
			next = append(next, item{hash: hash, indices: indices})
		}
		rows = next
	}
	for _, b := range rows[0].hash {
		if b != 0 {
			return ErrInvalidSolution
		}
	}
	return nil
}
