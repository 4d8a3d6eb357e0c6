package chainparams

import (
	"encoding/binary"
	"fmt"
	"github.com/fernandosanchezjr/zcashbench/equihash"
)

// Genesis mining scans nonces sequentially; a valid solution is all that is
// required (there is no difficulty target on the bench chains).
const maxGenesisNonces = 4096

// GenesisBlock returns the network's genesis header, mining it on first
// access. The header embeds a valid Equihash solution for the network's
// (n, k), so CheckEquihashSolution on it always succeeds.
func (p *Params) GenesisBlock() (*BlockHeader, error) {
	p.genesisOnce.Do(func() {
		p.genesis, p.genesisErr = p.mineGenesis()
	})
	return p.genesis, p.genesisErr
}

// GenesisHeaderTemplate returns the genesis header fields without a mined
// nonce or solution. Benchmarks that only seed a puzzle from the header
// prefix use this and never trigger genesis mining.
func (p *Params) GenesisHeaderTemplate() *BlockHeader {
	return &BlockHeader{
		Version:   p.GenesisVersion,
		Timestamp: p.GenesisTimestamp,
		Bits:      p.GenesisBits,
	}
}

func (p *Params) mineGenesis() (*BlockHeader, error) {
	header := p.GenesisHeaderTemplate()
	input := header.EquihashInput()
	for counter := uint64(0); counter < maxGenesisNonces; counter++ {
		var nonce [32]byte
		binary.LittleEndian.PutUint64(nonce[:8], counter)
		state, err := equihash.NewState(p.EquihashN, p.EquihashK)
		if err != nil {
			return nil, err
		}
		state.Update(input)
		state.Update(nonce[:])
		solutions, err := equihash.Solve(p.EquihashN, p.EquihashK, state,
			func([]byte) bool { return true })
		if err != nil {
			return nil, err
		}
		if len(solutions) > 0 {
			header.Nonce = nonce
			header.Solution = solutions[0]
			return header, nil
		}
	}
	return nil, fmt.Errorf("chainparams: no genesis solution for %s in %d nonces",
		p.Name, maxGenesisNonces)
}

// CheckEquihashSolution verifies the solution embedded in a block header
// against the network's puzzle parameters.
func CheckEquihashSolution(header *BlockHeader, p *Params) error {
	if len(header.Solution) == 0 {
		return ErrNoSolution
	}
	state, err := equihash.NewState(p.EquihashN, p.EquihashK)
	if err != nil {
		return err
	}
	state.Update(header.EquihashInput())
	state.Update(header.Nonce[:])
	return equihash.Verify(p.EquihashN, p.EquihashK, state, header.Solution)
}
