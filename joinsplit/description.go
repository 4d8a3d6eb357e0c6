package joinsplit

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	frmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
)

var ErrParamsNotLoaded = errors.New("joinsplit: proof system parameters not loaded")

// Note is one shielded input or output. The zero value is an empty note,
// which is what the create benchmark proves over.
type Note struct {
	Value uint64
	Rho   [32]byte
}

// Description is a constructed proof together with its public inputs,
// ready for verification.
type Description struct {
	proof  groth16.Proof
	public witness.Witness
}

func feBytes(e *fr.Element) []byte {
	b := e.Bytes()
	return b[:]
}

func feFromBytes(raw [32]byte) fr.Element {
	var e fr.Element
	e.SetBytes(raw[:])
	return e
}

func noteCommitment(note Note) []byte {
	h := frmimc.NewMiMC()
	var value fr.Element
	value.SetUint64(note.Value)
	rho := feFromBytes(note.Rho)
	h.Write(feBytes(&value))
	h.Write(feBytes(&rho))
	return h.Sum(nil)
}

// publicDigest binds the anchor and the four note commitments the same way
// the in-circuit MiMC does.
func publicDigest(anchor fr.Element, inputs, outputs [2]Note) *big.Int {
	h := frmimc.NewMiMC()
	h.Write(feBytes(&anchor))
	for _, note := range inputs {
		h.Write(noteCommitment(note))
	}
	for _, note := range outputs {
		h.Write(noteCommitment(note))
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}

// NewDescription constructs a proof that the transfer balances:
// vpubOld + inputs == vpubNew + outputs. Anchor is the commitment tree root
// the inputs claim membership under.
func NewDescription(
	p *Params,
	anchor [32]byte,
	inputs [2]Note,
	outputs [2]Note,
	vpubOld, vpubNew uint64,
) (*Description, error) {
	if p == nil || p.pk == nil || p.ccs == nil {
		return nil, ErrParamsNotLoaded
	}
	anchorFe := feFromBytes(anchor)
	assignment := &Circuit{
		VPubOld: vpubOld,
		VPubNew: vpubNew,
		Anchor:  anchorFe.BigInt(new(big.Int)),
		Digest:  publicDigest(anchorFe, inputs, outputs),
	}
	for i := 0; i < 2; i++ {
		inRho := feFromBytes(inputs[i].Rho)
		outRho := feFromBytes(outputs[i].Rho)
		assignment.InValues[i] = inputs[i].Value
		assignment.InRhos[i] = inRho.BigInt(new(big.Int))
		assignment.OutValues[i] = outputs[i].Value
		assignment.OutRhos[i] = outRho.BigInt(new(big.Int))
	}

	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	proof, err := groth16.Prove(p.ccs, p.pk, w)
	if err != nil {
		return nil, err
	}
	public, err := w.Public()
	if err != nil {
		return nil, err
	}
	return &Description{proof: proof, public: public}, nil
}

// Verify checks the proof against the verifying key.
func (d *Description) Verify(p *Params) error {
	if p == nil || p.vk == nil {
		return ErrParamsNotLoaded
	}
	return groth16.Verify(d.proof, p.vk, d.public)
}
