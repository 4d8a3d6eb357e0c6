package equihash

import (
	"bytes"
	"testing"
)

// Small parameters keep the table at 512 rows so solves finish in
// milliseconds.
const (
	testN = 48
	testK = 5
)

func seededState(t *testing.T, seed []byte) *State {
	t.Helper()
	s, err := NewState(testN, testK)
	if err != nil {
		t.Fatal(err)
	}
	s.Update(seed)
	return s
}

func solveSeed(t *testing.T, seed []byte) (*State, [][]byte) {
	t.Helper()
	s := seededState(t, seed)
	solutions, err := Solve(testN, testK, s.Clone(), func([]byte) bool { return false })
	if err != nil {
		t.Fatal(err)
	}
	return s, solutions
}

func TestValidateParams(t *testing.T) {
	for _, bad := range [][2]uint32{{0, 0}, {48, 0}, {48, 48}, {50, 4}, {48, 4}, {520, 5}} {
		if _, err := NewState(bad[0], bad[1]); err == nil {
			t.Fatal("expected parameter rejection for", bad)
		}
	}
	if _, err := NewState(200, 9); err != nil {
		t.Fatal(err)
	}
}

func TestSolveFindsVerifiableSolutions(t *testing.T) {
	var solutions [][]byte
	var s *State
	// Not every seed yields a solution; scan a few nonces like a miner
	// would.
	for nonce := byte(0); nonce < 16; nonce++ {
		s, solutions = solveSeed(t, []byte{'s', 'e', 'e', 'd', nonce})
		if len(solutions) > 0 {
			break
		}
	}
	if len(solutions) == 0 {
		t.Fatal("no solutions across 16 nonces")
	}
	for _, soln := range solutions {
		if len(soln) != SolutionWidth(testN, testK) {
			t.Fatal("unexpected solution width", len(soln))
		}
		if err := Verify(testN, testK, s, soln); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSolveDeduplicatesSolutions(t *testing.T) {
	_, solutions := solveSeed(t, []byte("dedup"))
	seen := make(map[string]struct{})
	for _, soln := range solutions {
		if _, dup := seen[string(soln)]; dup {
			t.Fatal("duplicate solution returned")
		}
		seen[string(soln)] = struct{}{}
	}
}

func TestSolveStopsOnAccept(t *testing.T) {
	for nonce := byte(0); nonce < 16; nonce++ {
		s := seededState(t, []byte{'a', 'c', 'c', nonce})
		all, err := Solve(testN, testK, s.Clone(), func([]byte) bool { return false })
		if err != nil {
			t.Fatal(err)
		}
		if len(all) == 0 {
			continue
		}
		first, err := Solve(testN, testK, s.Clone(), func([]byte) bool { return true })
		if err != nil {
			t.Fatal(err)
		}
		if len(first) != 1 {
			t.Fatal("accepting predicate should stop after one solution, got", len(first))
		}
		return
	}
	t.Fatal("no solvable seed found")
}

func TestVerifyRejectsTamperedSolution(t *testing.T) {
	for nonce := byte(0); nonce < 16; nonce++ {
		s, solutions := solveSeed(t, []byte{'t', 'a', 'm', nonce})
		if len(solutions) == 0 {
			continue
		}
		tampered := append([]byte{}, solutions[0]...)
		tampered[len(tampered)/2] ^= 0x40
		if err := Verify(testN, testK, s, tampered); err == nil {
			t.Fatal("tampered solution verified")
		}
		return
	}
	t.Fatal("no solvable seed found")
}

func TestVerifyRejectsWrongSeed(t *testing.T) {
	for nonce := byte(0); nonce < 16; nonce++ {
		_, solutions := solveSeed(t, []byte{'w', 's', nonce})
		if len(solutions) == 0 {
			continue
		}
		other := seededState(t, []byte("a different seed"))
		if err := Verify(testN, testK, other, solutions[0]); err == nil {
			t.Fatal("solution verified against the wrong seed")
		}
		return
	}
	t.Fatal("no solvable seed found")
}

func TestPackBitsRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 255, 256, 300, 511, 42, 7}
	packed := packBits(values, 9)
	unpacked, err := unpackBits(packed, 9, len(values))
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range values {
		if unpacked[i] != v {
			t.Fatalf("value %d: got %d want %d", i, unpacked[i], v)
		}
	}
	if _, err := unpackBits(packed[:len(packed)-1], 9, len(values)); err == nil {
		t.Fatal("truncated encoding accepted")
	}
}

func TestExpandHashChunks(t *testing.T) {
	// 48-bit string 0x0102030405ff split into 8-bit chunks.
	expanded := expandHash([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0xff}, 8, 1, 6)
	if !bytes.Equal(expanded, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0xff}) {
		t.Fatal("byte-aligned expansion changed values:", expanded)
	}
	// 20-bit chunks in 3 bytes, as used by the production parameters.
	expanded = expandHash([]byte{0xab, 0xcd, 0xef, 0x12, 0x34}, 20, 3, 2)
	if !bytes.Equal(expanded, []byte{0x0a, 0xbc, 0xde, 0x0f, 0x12, 0x34}) {
		t.Fatal("unexpected 20-bit expansion:", expanded)
	}
}
