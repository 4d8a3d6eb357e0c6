// Package chainparams holds the per-network consensus constants consumed by
// the benchmarks: Equihash puzzle parameters, the maximum block size the
// large transaction workload is calibrated against, and a genesis block per
// network. All fields are read-only after construction and safe for
// concurrent use.
package chainparams

import (
	"fmt"
	"github.com/btcsuite/btcd/chaincfg"
	"sync"
)

type Params struct {
	Name string

	// Equihash puzzle difficulty parameters, safe for concurrent read.
	EquihashN uint32
	EquihashK uint32

	// MaxBlockSize bounds a serialized block; the synthetic large
	// transaction is sized against it.
	MaxBlockSize int

	// AddressParams selects the btcutil address encoding used when
	// deriving locking scripts.
	AddressParams *chaincfg.Params

	GenesisVersion   int32
	GenesisTimestamp uint32
	GenesisBits      uint32

	genesisOnce sync.Once
	genesis     *BlockHeader
	genesisErr  error
}

// MainNet carries production-scale puzzle parameters. Mining its genesis on
// first access takes minutes; benchmarks that only need the header prefix
// never trigger it.
var MainNet = &Params{
	Name:             "mainnet",
	EquihashN:        200,
	EquihashK:        9,
	MaxBlockSize:     2000000,
	AddressParams:    &chaincfg.MainNetParams,
	GenesisVersion:   4,
	GenesisTimestamp: 1477641360,
	GenesisBits:      0x1f07ffff,
}

// BenchNet uses a small puzzle so solve-heavy benchmarks and tests finish
// quickly on a laptop.
var BenchNet = &Params{
	Name:             "benchnet",
	EquihashN:        48,
	EquihashK:        5,
	MaxBlockSize:     2000000,
	AddressParams:    &chaincfg.RegressionNetParams,
	GenesisVersion:   4,
	GenesisTimestamp: 1477641360,
	GenesisBits:      0x200f0f0f,
}

var networks = map[string]*Params{
	MainNet.Name:  MainNet,
	BenchNet.Name: BenchNet,
}

func Lookup(name string) (*Params, error) {
	if params, found := networks[name]; found {
		return params, nil
	}
	return nil, fmt.Errorf("chainparams: unknown network %q", name)
}
