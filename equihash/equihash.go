// Package equihash implements the memory-hard proof-of-work puzzle used by
// the solve and verify benchmarks: Wagner's generalized birthday algorithm
// over personalized BLAKE2b, parameterized by (n, k).
package equihash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/minio/blake2b-simd"
)

const personPrefix = "ZcashPoW"

var ErrBadParams = errors.New("equihash: unsupported (n, k) parameters")

// State accumulates the puzzle seed (serialized block header plus nonce).
// It buffers its input so that every hash block derivation starts from the
// same seed; a State is never shared between concurrent solves.
type State struct {
	n, k uint32
	buf  []byte
}

func validateParams(n, k uint32) error {
	if k == 0 || k >= n {
		return ErrBadParams
	}
	if n%8 != 0 || n > 512 {
		return ErrBadParams
	}
	if n%(k+1) != 0 {
		return ErrBadParams
	}
	return nil
}

// NewState returns a fresh hash state for the given puzzle parameters.
func NewState(n, k uint32) (*State, error) {
	if err := validateParams(n, k); err != nil {
		return nil, err
	}
	return &State{n: n, k: k}, nil
}

// Update appends seed bytes to the state.
func (s *State) Update(data []byte) {
	s.buf = append(s.buf, data...)
}

// Clone returns an independent copy. Each concurrent solve owns its own
// state, so the solver never mutates a caller-held one.
func (s *State) Clone() *State {
	buf := make([]byte, len(s.buf))
	copy(buf, s.buf)
	return &State{n: s.n, k: s.k, buf: buf}
}

func (s *State) person() []byte {
	person := make([]byte, 16)
	copy(person, personPrefix)
	binary.LittleEndian.PutUint32(person[8:], s.n)
	binary.LittleEndian.PutUint32(person[12:], s.k)
	return person
}

// hashesPerBlock is how many n-bit hash strings one BLAKE2b invocation
// yields: the digest is sized to pack as many as fit in 512 bits.
func hashesPerBlock(n uint32) int {
	return int(512 / n)
}

func (s *State) hashBlock(g uint32) []byte {
	outLen := hashesPerBlock(s.n) * int(s.n/8)
	h, err := blake2b.New(&blake2b.Config{
		Size:   uint8(outLen),
		Person: s.person(),
	})
	if err != nil {
		panic(fmt.Sprintf("equihash: blake2b config rejected: %v", err))
	}
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], g)
	h.Write(s.buf)
	h.Write(le[:])
	return h.Sum(nil)
}

// hashForIndex returns the i-th n-bit hash string of the puzzle instance.
func (s *State) hashForIndex(i uint32) []byte {
	per := hashesPerBlock(s.n)
	hashLen := int(s.n / 8)
	block := s.hashBlock(i / uint32(per))
	j := int(i) % per
	return block[j*hashLen : (j+1)*hashLen]
}

// collisionBitLength is the chunk width each collision round works on.
func collisionBitLength(n, k uint32) int {
	return int(n / (k + 1))
}

// SolutionWidth is the byte length of a minimally encoded solution.
func SolutionWidth(n, k uint32) int {
	return ((1 << k) * (collisionBitLength(n, k) + 1) + 7) / 8
}
