package bench

import (
	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	log "github.com/sirupsen/logrus"

	"github.com/fernandosanchezjr/zcashbench/keystore"
)

// LargeTxInputs is calibrated so that a spending transaction with this many
// signed pay-to-pubkey-hash inputs serializes to within the size window
// around chainparams MaxBlockSize, i.e. a transaction that nearly fills a
// block. Changing the block size constant requires recalibrating this
// count.
const LargeTxInputs = 11100

// largeTxFundingAmount is the value of the single funding output every
// synthetic input spends.
const largeTxFundingAmount = 1000000

// syntheticTx is a fully signed spending transaction plus the locking
// script all of its inputs were signed against. Built fresh per benchmark
// invocation and discarded afterwards; never broadcast.
type syntheticTx struct {
	spending   *wire.MsgTx
	prevScript []byte
}

// buildLargeTransaction runs the synthetic workload setup: one fresh
// uncompressed key pair, a one-output funding transaction locked to it, and
// a spending transaction whose numInputs inputs all reference that same
// funding output and are each signed independently. The repeated outpoint
// is an intentional stress pattern, not a realistic transaction.
func (h *Harness) buildLargeTransaction(numInputs int) (*syntheticTx, error) {
	net := h.Chain.AddressParams
	priv, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, err
	}
	ks := keystore.New()
	addr, err := ks.AddKey(priv, false, net)
	if err != nil {
		return nil, err
	}
	prevScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, err
	}

	funding := wire.NewMsgTx(wire.TxVersion)
	funding.AddTxOut(wire.NewTxOut(largeTxFundingAmount, prevScript))
	fundingHash := funding.TxHash()

	spending := wire.NewMsgTx(wire.TxVersion)
	for i := 0; i < numInputs; i++ {
		spending.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&fundingHash, 0), nil, nil))
	}
	for i := 0; i < numInputs; i++ {
		if err := ks.SignInput(spending, i, prevScript, txscript.SigHashAll, net); err != nil {
			return nil, err
		}
	}
	return &syntheticTx{spending: spending, prevScript: prevScript}, nil
}

// verifyInput runs one input's unlocking script against the funding script
// under the standard verification flags.
func (tx *syntheticTx) verifyInput(idx int) error {
	vm, err := txscript.NewEngine(tx.prevScript, tx.spending, idx,
		txscript.StandardVerifyFlags, nil, nil, largeTxFundingAmount)
	if err != nil {
		return err
	}
	return vm.Execute()
}

// withinSizeWindow reports whether a serialized size falls within 5% of the
// target block size.
func withinSizeWindow(size, target int) bool {
	window := target / 20
	return size > target-window && size < target+window
}

// LargeTransaction builds the synthetic transaction, then times solely the
// loop that re-checks each input's signature. A transaction outside the
// size window or an input that fails verification means the benchmark
// itself is misconfigured, so both abort the process.
func (h *Harness) LargeTransaction() (float64, error) {
	tx, err := h.buildLargeTransaction(LargeTxInputs)
	if err != nil {
		return 0, err
	}
	size := tx.spending.SerializeSize()
	if !withinSizeWindow(size, h.Chain.MaxBlockSize) {
		log.WithFields(log.Fields{
			"size":   size,
			"target": h.Chain.MaxBlockSize,
		}).Fatal("synthetic transaction size outside the block size window")
	}

	timer := StartTimer()
	for i := range tx.spending.TxIn {
		if err := tx.verifyInput(i); err != nil {
			log.WithError(err).WithField("input", i).
				Fatal("synthetic transaction input failed verification")
		}
	}
	return timer.Stop(), nil
}
