// Package joinsplit is the zero-knowledge proof collaborator timed by the
// create and verify benchmarks: a Groth16 circuit over BN254 proving a
// balanced shielded transfer of two inputs and two outputs, anchored to a
// note commitment tree root.
package joinsplit

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// Circuit proves knowledge of note openings such that the transparent and
// shielded values balance, and binds their MiMC commitments together with
// the anchor into a single public digest.
type Circuit struct {
	InValues  [2]frontend.Variable
	InRhos    [2]frontend.Variable
	OutValues [2]frontend.Variable
	OutRhos   [2]frontend.Variable

	VPubOld frontend.Variable `gnark:",public"`
	VPubNew frontend.Variable `gnark:",public"`
	Anchor  frontend.Variable `gnark:",public"`
	Digest  frontend.Variable `gnark:",public"`
}

func (c *Circuit) Define(api frontend.API) error {
	api.AssertIsEqual(
		api.Add(c.VPubOld, c.InValues[0], c.InValues[1]),
		api.Add(c.VPubNew, c.OutValues[0], c.OutValues[1]),
	)

	digest, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	digest.Write(c.Anchor)
	for i := 0; i < 2; i++ {
		cm, err := mimc.NewMiMC(api)
		if err != nil {
			return err
		}
		cm.Write(c.InValues[i], c.InRhos[i])
		digest.Write(cm.Sum())
	}
	for i := 0; i < 2; i++ {
		cm, err := mimc.NewMiMC(api)
		if err != nil {
			return err
		}
		cm.Write(c.OutValues[i], c.OutRhos[i])
		digest.Write(cm.Sum())
	}
	api.AssertIsEqual(c.Digest, digest.Sum())
	return nil
}
