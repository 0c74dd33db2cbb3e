package models

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Witness generation parameters. NullifierSeed is the only required field;
// the rest default to the shipped circuit's dimensions.
type Params struct {
	// NullifierSeed is mixed into the circuit's nullifier computation. It is
	// a field element and must be strictly below the BN254 scalar field
	// modulus.
	NullifierSeed *big.Int

	// RevealStart and RevealEnd delimit an optional selective-disclosure
	// window inside the signed payload. The window is active only when both
	// markers are supplied.
	RevealStart string
	RevealEnd   string

	// MaxInputLength is the circuit's input capacity in bytes. It must be a
	// multiple of the SHA-256 block size (64).
	MaxInputLength int

	// RSA key limb encoding. A 2048-bit key fits in 17 limbs of 121 bits.
	RSAKeyBitsPerChunk int
	RSAKeyNumChunks    int
}

const (
	DefaultMaxInputLength     = 1280
	DefaultRSAKeyBitsPerChunk = 121
	DefaultRSAKeyNumChunks    = 17
)

var (
	ErrMissingSeed    = errors.New("nullifier seed is required")
	ErrSeedTooLarge   = errors.New("nullifier seed exceeds the field modulus")
	ErrBadInputLength = errors.New("max input length must be a positive multiple of 64")
)

// fieldModulus is the BN254 scalar field modulus; every scalar witness value
// must be representable below it.
var fieldModulus = fr.Modulus()

// Normalized returns a copy of p with defaults applied to unset fields.
func (p Params) Normalized() Params {
	if p.MaxInputLength == 0 {
		p.MaxInputLength = DefaultMaxInputLength
	}
	if p.RSAKeyBitsPerChunk == 0 {
		p.RSAKeyBitsPerChunk = DefaultRSAKeyBitsPerChunk
	}
	if p.RSAKeyNumChunks == 0 {
		p.RSAKeyNumChunks = DefaultRSAKeyNumChunks
	}
	return p
}

// Validate rejects parameter combinations the circuit cannot accept. It is
// called before any document parsing so that an oversized seed never reaches
// the pipeline.
func (p Params) Validate() error {
	if p.NullifierSeed == nil {
		return ErrMissingSeed
	}
	if p.NullifierSeed.Sign() < 0 {
		return fmt.Errorf("%w: negative value", ErrSeedTooLarge)
	}
	if p.NullifierSeed.Cmp(fieldModulus) >= 0 {
		return ErrSeedTooLarge
	}
	if p.MaxInputLength <= 0 || p.MaxInputLength%64 != 0 {
		return fmt.Errorf("%w: got %d", ErrBadInputLength, p.MaxInputLength)
	}
	if p.RSAKeyBitsPerChunk <= 0 || p.RSAKeyNumChunks <= 0 {
		return fmt.Errorf("rsa key chunking must be positive: %d bits x %d chunks",
			p.RSAKeyBitsPerChunk, p.RSAKeyNumChunks)
	}
	return nil
}

// FieldModulus returns the BN254 scalar field modulus.
func FieldModulus() *big.Int {
	return new(big.Int).Set(fieldModulus)
}
