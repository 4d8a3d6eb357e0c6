package bench

import (
	"os"
	"path"
	"sync"
	"testing"

	"github.com/fernandosanchezjr/zcashbench/chainparams"
	"github.com/fernandosanchezjr/zcashbench/joinsplit"
)

// A single Groth16 key pair is shared across the package's tests; setup is
// far more expensive than any timed region under test.
var (
	proofOnce   sync.Once
	proofParams *joinsplit.Params
	proofErr    error
)

func testHarness(t *testing.T) *Harness {
	t.Helper()
	proofOnce.Do(func() {
		proofParams, proofErr = joinsplit.Setup()
	})
	if proofErr != nil {
		t.Fatal(proofErr)
	}
	return NewHarness(chainparams.BenchNet, proofParams, "")
}

func TestSleepBenchmark(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping one second sleep in short mode")
	}
	elapsed := testHarness(t).Sleep()
	if elapsed < 0.95 || elapsed > 1.5 {
		t.Fatal("one second sleep measured as", elapsed)
	}
}

func TestCreateAndVerifyJoinSplit(t *testing.T) {
	h := testHarness(t)
	createElapsed, desc, err := h.CreateJoinSplit()
	if err != nil {
		t.Fatal(err)
	}
	if createElapsed < 0 {
		t.Fatal("negative construction time")
	}
	verifyElapsed, err := h.VerifyJoinSplit(desc)
	if err != nil {
		t.Fatal(err)
	}
	if verifyElapsed < 0 {
		t.Fatal("negative verification time")
	}
}

func TestParameterLoading(t *testing.T) {
	h := testHarness(t)
	dir := t.TempDir()
	err := h.Proof.WriteKeys(
		path.Join(dir, joinsplit.ProvingKeyFile),
		path.Join(dir, joinsplit.VerifyingKeyFile),
	)
	if err != nil {
		t.Fatal(err)
	}
	h.ParamsDir = dir
	elapsed, err := h.ParameterLoading()
	if err != nil {
		t.Fatal(err)
	}
	if elapsed < 0 {
		t.Fatal("negative loading time")
	}
}

func TestParameterLoadingMissingFiles(t *testing.T) {
	h := testHarness(t)
	h.ParamsDir = path.Join(t.TempDir(), "empty")
	if _, err := h.ParameterLoading(); !os.IsNotExist(err) {
		t.Fatal("expected a not-exist error, got", err)
	}
}

// Regression: an always-rejecting predicate must still terminate once the
// instance is exhausted.
func TestSolveEquihashTerminates(t *testing.T) {
	elapsed, err := testHarness(t).SolveEquihash()
	if err != nil {
		t.Fatal(err)
	}
	if elapsed < 0 {
		t.Fatal("negative solve time")
	}
}

func TestSolveEquihashThreaded(t *testing.T) {
	h := testHarness(t)
	for _, n := range []int{0, 1, 4} {
		results, err := h.SolveEquihashThreaded(n)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != n {
			t.Fatalf("n = %d: got %d durations", n, len(results))
		}
		for _, elapsed := range results {
			if elapsed < 0 {
				t.Fatal("negative solve time:", elapsed)
			}
		}
	}
}

func TestVerifyEquihashGenesis(t *testing.T) {
	elapsed, err := testHarness(t).VerifyEquihash()
	if err != nil {
		t.Fatal(err)
	}
	if elapsed < 0 {
		t.Fatal("negative verification time")
	}
}
