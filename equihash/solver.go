package equihash

import (
	"bytes"
	"sort"
)

// item is one row of the collision table: the expanded hash remainder and
// the leaf indices that XOR to it.
type item struct {
	hash    []byte
	indices []uint32
}

func distinctIndices(a, b []uint32) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return false
			}
		}
	}
	return true
}

// combine joins two colliding rows, keeping the subtree with the smaller
// first leaf index on the left. Rows sharing a leaf index do not combine.
func combine(a, b item, width int) (item, bool) {
	if b.indices[0] < a.indices[0] {
		a, b = b, a
	}
	if !distinctIndices(a.indices, b.indices) {
		return item{}, false
	}
	hash := make([]byte, width)
	for i := 0; i < width; i++ {
		hash[i] = a.hash[i] ^ b.hash[i]
	}
	indices := make([]uint32, 0, len(a.indices)+len(b.indices))
	indices = append(indices, a.indices...)
	indices = append(indices, b.indices...)
	return item{hash: hash, indices: indices}, true
}

// collideRange emits every valid pairing of rows within [start, end), a run
// of rows whose current chunk matched.
func collideRange(items []item, start, end, width int, out []item) []item {
	for i := start; i < end; i++ {
		for j := i + 1; j < end; j++ {
			if combined, ok := combine(items[i], items[j], width); ok {
				out = append(out, combined)
			}
		}
	}
	return out
}

// Solve runs Wagner's algorithm over the seeded state and returns the
// deduplicated set of minimally encoded solutions. After each solution is
// found it is handed to accept; a true return stops the search early, so an
// always-false predicate forces an exhaustive pass over the whole instance.
func Solve(n, k uint32, s *State, accept func(solution []byte) bool) ([][]byte, error) {
	if err := validateParams(n, k); err != nil {
		return nil, err
	}
	if s == nil || s.n != n || s.k != k {
		return nil, ErrBadParams
	}

	cBitLen := collisionBitLength(n, k)
	cBytes := (cBitLen + 7) / 8
	chunks := int(k) + 1
	width := chunks * cBytes
	hashLen := int(n / 8)
	per := hashesPerBlock(n)
	initCount := 1 << uint(cBitLen+1)

	items := make([]item, 0, initCount)
	for g := uint32(0); int(g)*per < initCount; g++ {
		block := s.hashBlock(g)
		for j := 0; j < per && int(g)*per+j < initCount; j++ {
			idx := g*uint32(per) + uint32(j)
			items = append(items, item{
				hash:    expandHash(block[j*hashLen:(j+1)*hashLen], cBitLen, cBytes, chunks),
				indices: []uint32{idx},
			})
		}
	}

	// k-1 rounds collapsing one chunk each.
	for r := 0; r < int(k)-1; r++ {
		off := r * cBytes
		sort.Slice(items, func(i, j int) bool {
			return bytes.Compare(items[i].hash[off:off+cBytes], items[j].hash[off:off+cBytes]) < 0
		})
		next := items[:0:0]
		for start := 0; start < len(items); {
			end := start + 1
			for end < len(items) &&
				bytes.Equal(items[start].hash[off:off+cBytes], items[end].hash[off:off+cBytes]) {
				end++
			}
			next = collideRange(items, start, end, width, next)
			start = end
		}
		items = next
		if len(items) == 0 {
			return nil, nil
		}
	}

	// Final round collides the remaining two chunks at once.
	off := (int(k) - 1) * cBytes
	sort.Slice(items, func(i, j int) bool {
		return bytes.Compare(items[i].hash[off:], items[j].hash[off:]) < 0
	})
	var solutions [][]byte
	seen := make(map[string]struct{})
	for start := 0; start < len(items); {
		end := start + 1
		for end < len(items) && bytes.Equal(items[start].hash[off:], items[end].hash[off:]) {
			end++
		}
		for i := start; i < end; i++ {
			for j := i + 1; j < end; j++ {
				combined, ok := combine(items[i], items[j], width)
				if !ok {
					continue
				}
				soln := packBits(combined.indices, cBitLen+1)
				if _, dup := seen[string(soln)]; dup {
					continue
				}
				seen[string(soln)] = struct{}{}
				solutions = append(solutions, soln)
				if accept != nil && accept(soln) {
					return solutions, nil
				}
			}
		}
		start = end
	}
	return solutions, nil
}
