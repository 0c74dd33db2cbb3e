package models

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
)

// PublicKey holds the raw RSA key material used for the independent
// signature re-check and the limb-encoded circuit input.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

var ErrBadKeyMaterial = errors.New("invalid RSA key material")

// PublicKeyFromRSA converts a parsed crypto/rsa key.
func PublicKeyFromRSA(key *rsa.PublicKey) *PublicKey {
	return &PublicKey{
		N: new(big.Int).Set(key.N),
		E: big.NewInt(int64(key.E)),
	}
}

// PublicKeyFromJWK builds a key from the base64url "n" and "e" members of an
// RSA JWK (RFC 7518 §6.3.1).
func PublicKeyFromJWK(n, e string) (*PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("%w: modulus: %v", ErrBadKeyMaterial, err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("%w: exponent: %v", ErrBadKeyMaterial, err)
	}
	if len(nBytes) == 0 || len(eBytes) == 0 {
		return nil, fmt.Errorf("%w: empty modulus or exponent", ErrBadKeyMaterial)
	}
	return &PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: new(big.Int).SetBytes(eBytes),
	}, nil
}

// ByteLen returns the modulus length in bytes (256 for a 2048-bit key).
func (pk *PublicKey) ByteLen() int {
	return (pk.N.BitLen() + 7) / 8
}
