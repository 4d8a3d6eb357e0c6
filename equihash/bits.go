package equihash

import "errors"

var ErrBadEncoding = errors.New("equihash: malformed solution encoding")

// expandHash splits an n-bit big-endian hash string into chunks groups of
// cBitLen bits, each stored right-aligned in cBytes bytes. Working on the
// expanded form keeps every collision round a plain byte comparison even
// when cBitLen is not byte aligned.
func expandHash(hash []byte, cBitLen, cBytes, chunks int) []byte {
	out := make([]byte, chunks*cBytes)
	var acc uint64
	accBits := 0
	pos := 0
	for c := 0; c < chunks; c++ {
		for accBits < cBitLen {
			acc = acc<<8 | uint64(hash[pos])
			pos++
			accBits += 8
		}
		v := (acc >> uint(accBits-cBitLen)) & ((1 << uint(cBitLen)) - 1)
		accBits -= cBitLen
		acc &= (1 << uint(accBits)) - 1
		for b := cBytes - 1; b >= 0; b-- {
			out[c*cBytes+b] = byte(v)
			v >>= 8
		}
	}
	return out
}

// packBits writes each value in bitLen bits to a big-endian bit stream.
// This is the minimal solution representation: 2^k indices of
// collisionBitLength+1 bits each.
func packBits(values []uint32, bitLen int) []byte {
	out := make([]byte, 0, (len(values)*bitLen+7)/8)
	var acc uint64
	accBits := 0
	for _, v := range values {
		acc = acc<<uint(bitLen) | uint64(v)
		accBits += bitLen
		for accBits >= 8 {
			out = append(out, byte(acc>>uint(accBits-8)))
			accBits -= 8
			acc &= (1 << uint(accBits)) - 1
		}
	}
	if accBits > 0 {
		out = append(out, byte(acc<<uint(8-accBits)))
	}
	return out
}

// unpackBits reverses packBits. The input must hold exactly count values.
func unpackBits(data []byte, bitLen, count int) ([]uint32, error) {
	if len(data) != (count*bitLen+7)/8 {
		return nil, ErrBadEncoding
	}
	values := make([]uint32, 0, count)
	var acc uint64
	accBits := 0
	pos := 0
	for len(values) < count {
		for accBits < bitLen {
			if pos >= len(data) {
				return nil, ErrBadEncoding
			}
			acc = acc<<8 | uint64(data[pos])
			pos++
			accBits += 8
		}
		values = append(values, uint32((acc>>uint(accBits-bitLen))&((1<<uint(bitLen))-1)))
		accBits -= bitLen
		acc &= (1 << uint(accBits)) - 1
	}
	if acc != 0 {
		return nil, ErrBadEncoding
	}
	return values, nil
}
