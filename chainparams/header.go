package chainparams

import (
	"bytes"
	"encoding/binary"
	"errors"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"io"
)

// EquihashInputSize is the serialized header prefix covered by the puzzle
// seed: everything up to but excluding the nonce and solution.
const EquihashInputSize = 4 + 3*chainhash.HashSize + 4 + 4

// BlockHeader is an Equihash-chain block header. Unlike a plain Bitcoin
// header it carries a 256-bit nonce and a variable-length puzzle solution.
type BlockHeader struct {
	Version      int32
	PrevBlock    chainhash.Hash
	MerkleRoot   chainhash.Hash
	ReservedHash chainhash.Hash
	Timestamp    uint32
	Bits         uint32
	Nonce        [32]byte
	Solution     []byte
}

// EquihashInput serializes the header prefix that seeds the puzzle state.
func (h *BlockHeader) EquihashInput() []byte {
	out := make([]byte, 0, EquihashInputSize)
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(h.Version))
	out = append(out, u32[:]...)
	out = append(out, h.PrevBlock[:]...)
	out = append(out, h.MerkleRoot[:]...)
	out = append(out, h.ReservedHash[:]...)
	binary.LittleEndian.PutUint32(u32[:], h.Timestamp)
	out = append(out, u32[:]...)
	binary.LittleEndian.PutUint32(u32[:], h.Bits)
	out = append(out, u32[:]...)
	return out
}

func (h *BlockHeader) Serialize(w io.Writer) error {
	if _, err := w.Write(h.EquihashInput()); err != nil {
		return err
	}
	if _, err := w.Write(h.Nonce[:]); err != nil {
		return err
	}
	return wire.WriteVarBytes(w, 0, h.Solution)
}

func (h *BlockHeader) Deserialize(r io.Reader) error {
	var prefix [EquihashInputSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return err
	}
	h.Version = int32(binary.LittleEndian.Uint32(prefix[0:4]))
	copy(h.PrevBlock[:], prefix[4:36])
	copy(h.MerkleRoot[:], prefix[36:68])
	copy(h.ReservedHash[:], prefix[68:100])
	h.Timestamp = binary.LittleEndian.Uint32(prefix[100:104])
	h.Bits = binary.LittleEndian.Uint32(prefix[104:108])
	if _, err := io.ReadFull(r, h.Nonce[:]); err != nil {
		return err
	}
	solution, err := wire.ReadVarBytes(r, 0, maxSolutionSize, "solution")
	if err != nil {
		return err
	}
	h.Solution = solution
	return nil
}

const maxSolutionSize = 4096

var ErrNoSolution = errors.New("chainparams: header carries no equihash solution")

// Hash returns the double-SHA256 identity of the fully serialized header.
func (h *BlockHeader) Hash() chainhash.Hash {
	var buf bytes.Buffer
	_ = h.Serialize(&buf)
	return chainhash.DoubleHashH(buf.Bytes())
}
