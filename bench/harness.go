package bench

import (
	"crypto/rand"
	"path"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fernandosanchezjr/zcashbench/chainparams"
	"github.com/fernandosanchezjr/zcashbench/equihash"
	"github.com/fernandosanchezjr/zcashbench/joinsplit"
)

// Harness runs the benchmark catalogue against explicitly injected
// collaborators: chain parameters for the proof-of-work and transaction
// benchmarks, proof system parameters for the joinsplit ones, and the
// folder holding the serialized key files. Nothing here reaches for
// process-wide state.
type Harness struct {
	Chain     *chainparams.Params
	Proof     *joinsplit.Params
	ParamsDir string
}

func NewHarness(chain *chainparams.Params, proof *joinsplit.Params, paramsDir string) *Harness {
	return &Harness{Chain: chain, Proof: proof, ParamsDir: paramsDir}
}

// Sleep times a fixed one second pause; a sanity check that the timer
// itself behaves.
func (h *Harness) Sleep() float64 {
	timer := StartTimer()
	time.Sleep(time.Second)
	return timer.Stop()
}

// ParameterLoading times loading a verifying key and a proving key from the
// params folder into a fresh, unopened parameter object. Missing key files
// surface as errors; a benchmark of a broken setup is not useful.
func (h *Harness) ParameterLoading() (float64, error) {
	vkPath := path.Join(h.ParamsDir, joinsplit.VerifyingKeyFile)
	pkPath := path.Join(h.ParamsDir, joinsplit.ProvingKeyFile)

	timer := StartTimer()
	params := joinsplit.Unopened()
	if err := params.LoadVerifyingKey(vkPath); err != nil {
		return 0, err
	}
	params.SetProvingKeyPath(pkPath)
	if err := params.LoadProvingKey(); err != nil {
		return 0, err
	}
	return timer.Stop(), nil
}

// CreateJoinSplit times constructing one proof with two empty inputs, two
// empty outputs and zero value flows against the empty-tree anchor. The
// anchor computation stays outside the timed region. The constructed
// description is returned so a verify benchmark can reuse it.
func (h *Harness) CreateJoinSplit() (float64, *joinsplit.Description, error) {
	anchor := joinsplit.EmptyRoot()

	timer := StartTimer()
	desc, err := joinsplit.NewDescription(
		h.Proof, anchor, [2]joinsplit.Note{}, [2]joinsplit.Note{}, 0, 0)
	elapsed := timer.Stop()
	if err != nil {
		return 0, nil, err
	}
	if verifyErr := desc.Verify(h.Proof); verifyErr != nil {
		log.WithError(verifyErr).Fatal("freshly constructed joinsplit failed to verify")
	}
	return elapsed, desc, nil
}

// VerifyJoinSplit times verifying a previously constructed proof.
func (h *Harness) VerifyJoinSplit(desc *joinsplit.Description) (float64, error) {
	timer := StartTimer()
	err := desc.Verify(h.Proof)
	elapsed := timer.Stop()
	if err != nil {
		return 0, err
	}
	return elapsed, nil
}

// SolveEquihash times one exhaustive solve of the network's puzzle, seeded
// from the genesis header prefix and a fresh random nonce. The always-false
// predicate keeps the solver searching the entire instance instead of
// stopping at the first solution; header serialization, state setup and
// nonce generation stay untimed.
func (h *Harness) SolveEquihash() (float64, error) {
	header := h.Chain.GenesisHeaderTemplate()
	state, err := equihash.NewState(h.Chain.EquihashN, h.Chain.EquihashK)
	if err != nil {
		return 0, err
	}
	state.Update(header.EquihashInput())
	var nonce [32]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return 0, err
	}
	state.Update(nonce[:])

	timer := StartTimer()
	_, err = equihash.Solve(h.Chain.EquihashN, h.Chain.EquihashK, state,
		func([]byte) bool { return false })
	elapsed := timer.Stop()
	if err != nil {
		return 0, err
	}
	return elapsed, nil
}

// SolveEquihashThreaded runs n independent solves concurrently; each owns
// its own state, nonce and solution set. Results arrive in completion
// order.
func (h *Harness) SolveEquihashThreaded(n int) ([]float64, error) {
	return RunConcurrent(n, h.SolveEquihash)
}

// VerifyEquihash times checking the solution embedded in the network's
// genesis block header. Genesis construction stays outside the timed
// region.
func (h *Harness) VerifyEquihash() (float64, error) {
	genesis, err := h.Chain.GenesisBlock()
	if err != nil {
		return 0, err
	}

	timer := StartTimer()
	err = chainparams.CheckEquihashSolution(genesis, h.Chain)
	elapsed := timer.Stop()
	if err != nil {
		return 0, err
	}
	return elapsed, nil
}
