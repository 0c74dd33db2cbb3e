// Package partialsha splits a SHA-256 computation into a precomputed
// chaining state plus a bounded remainder, so a fixed-capacity circuit only
// re-hashes the bytes at and after a chosen anchor. The standard library
// hides its digest state, so the compression function is implemented here
// directly (FIPS 180-4 §6.2.2).
package partialsha

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

// BlockSize is the SHA-256 block size in bytes. Split points always fall on
// a block boundary so the chaining state stays resumable.
const BlockSize = 64

// StateSize is the size of a serialized chaining state (8 big-endian words).
const StateSize = 32

var initState = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var roundK = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var ErrNotBlockAligned = errors.New("data length is not a multiple of the SHA-256 block size")

// compress folds one 64-byte block into the chaining state h.
func compress(h *[8]uint32, block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
	for i := 0; i < 64; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := hh + s1 + ch + roundK[i] + w[i]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		hh, g, f, e, d, c, b, a = g, f, e, d+t1, c, b, a, t1+t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}

// marshalState serializes the chaining state as 8 big-endian words, the form
// the circuit consumes it in.
func marshalState(h [8]uint32) [StateSize]byte {
	var out [StateSize]byte
	for i, v := range h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func unmarshalState(state [StateSize]byte) [8]uint32 {
	var h [8]uint32
	for i := range h {
		h[i] = binary.BigEndian.Uint32(state[i*4:])
	}
	return h
}

// InitialState returns the serialized SHA-256 initial chaining state, i.e.
// the state before any block has been compressed.
func InitialState() [StateSize]byte {
	return marshalState(initState)
}

// Resume continues a SHA-256 computation from a serialized chaining state
// over block-aligned data (trailing MD padding must already be embedded) and
// returns the resulting digest.
func Resume(state [StateSize]byte, data []byte) ([StateSize]byte, error) {
	if len(data)%BlockSize != 0 {
		return [StateSize]byte{}, ErrNotBlockAligned
	}
	h := unmarshalState(state)
	for off := 0; off < len(data); off += BlockSize {
		compress(&h, data[off:off+BlockSize])
	}
	return marshalState(h), nil
}
