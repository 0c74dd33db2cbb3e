package models

// Witness is the circuit input record. Field names are a fixed wire contract
// with the deployed circuit: renaming any of them breaks proof generation.
// All values are decimal strings (snarkjs signal convention).
type Witness struct {
	// DataPadded is the post-split remainder of the SHA-padded signed
	// payload, one decimal byte value per entry, zero-filled to the
	// configured max input length.
	DataPadded       []string `json:"dataPadded"`
	DataPaddedLength string   `json:"dataPaddedLength"`

	// SignedInfo is the canonicalized SignedInfo byte stream.
	SignedInfo []string `json:"signedInfo"`

	// PrecomputedSHA is the 32-byte SHA-256 chaining state covering every
	// block before the split point.
	PrecomputedSHA []string `json:"precomputedSHA"`

	// DataHashIndex is the byte offset of the base64 payload digest inside
	// SignedInfo.
	DataHashIndex string `json:"dataHashIndex"`

	// CertificateDataNodeIndex and DocumentTypeLength locate the anchor
	// element and its type token inside DataPadded.
	CertificateDataNodeIndex string `json:"certificateDataNodeIndex"`
	DocumentTypeLength       string `json:"documentTypeLength"`

	// Signature and PubKey are little-endian limb encodings of the RSA
	// signature and modulus.
	Signature []string `json:"signature"`
	PubKey    []string `json:"pubKey"`

	IsRevealEnabled  string `json:"isRevealEnabled"`
	RevealStartIndex string `json:"revealStartIndex"`
	RevealEndIndex   string `json:"revealEndIndex"`

	NullifierSeed string `json:"nullifierSeed"`
}
