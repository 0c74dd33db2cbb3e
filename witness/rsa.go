package witness

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"math/big"

	"github.com/firmazk/xmlwitness/models"
)

var ErrRSAVerification = errors.New("RSA verification failed")

// sha1DigestInfoPrefix is the fixed ASN.1 DER DigestInfo prefix for SHA-1:
//
//	SEQUENCE { AlgorithmIdentifier { OID sha1, NULL }, OCTET STRING (20) }
//
// i.e. 3021300906052b0e03021a05000414.
var sha1DigestInfoPrefix = []byte{
	0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a,
	0x05, 0x00,
	0x04, 0x14,
}

// verifyRSA re-checks the PKCS#1 v1.5 RSA-SHA1 signature over the
// canonicalized SignedInfo bytes, independently of the XML layer: it
// reconstructs the padded block and compares it against signature^e mod n.
func verifyRSA(signedInfo, signature []byte, pub *models.PublicKey) error {
	if pub.E == nil || pub.E.Cmp(big.NewInt(1)) <= 0 {
		return fmt.Errorf("%w: public exponent must exceed 1", ErrRSAVerification)
	}

	h1 := sha1.Sum(signedInfo)
	digestInfo := append(append([]byte{}, sha1DigestInfoPrefix...), h1[:]...)

	// EM = 0x00 0x01 || 0xFF... || 0x00 || DigestInfo, sized to the modulus.
	k := pub.ByteLen()
	if k < len(digestInfo)+11 {
		return fmt.Errorf("%w: modulus too short for padding", ErrRSAVerification)
	}
	em := make([]byte, k)
	em[1] = 0x01
	for i := 2; i < k-len(digestInfo)-1; i++ {
		em[i] = 0xff
	}
	copy(em[k-len(digestInfo):], digestInfo)

	m := new(big.Int).SetBytes(em)
	c := new(big.Int).Exp(new(big.Int).SetBytes(signature), pub.E, pub.N)
	if m.Cmp(c) != 0 {
		return ErrRSAVerification
	}
	return nil
}
