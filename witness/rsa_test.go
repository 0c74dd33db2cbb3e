package witness

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"math/big"
	"testing"

	"github.com/firmazk/xmlwitness/models"
	"github.com/stretchr/testify/require"
)

func TestVerifyRSA(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pub := models.PublicKeyFromRSA(&key.PublicKey)

	signedInfo := []byte("<SignedInfo><Reference URI=\"\"/></SignedInfo>")
	h1 := sha1.Sum(signedInfo)
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA1, h1[:])
	require.NoError(t, err)

	require.NoError(t, verifyRSA(signedInfo, signature, pub))

	// Flipping any signature byte must fail the re-check.
	tampered := append([]byte{}, signature...)
	tampered[0] ^= 0x01
	require.ErrorIs(t, verifyRSA(signedInfo, tampered, pub), ErrRSAVerification)

	// Different SignedInfo bytes must fail too.
	require.ErrorIs(t, verifyRSA([]byte("<SignedInfo/>"), signature, pub), ErrRSAVerification)
}

func TestVerifyRSARejectsBadExponent(t *testing.T) {
	pub := &models.PublicKey{N: big.NewInt(3233), E: big.NewInt(1)}
	err := verifyRSA([]byte("x"), []byte{0x01}, pub)
	require.ErrorIs(t, err, ErrRSAVerification)
}
