// Package witness turns a signed XML document into the fixed-shape numeric
// witness the hash-and-RSA circuit consumes: a re-verified signature, a
// partial SHA-256 split at the certificate data anchor, and the byte offsets
// the circuit cannot search for itself.
package witness

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/firmazk/xmlwitness/models"
	"github.com/firmazk/xmlwitness/partialsha"
	"github.com/firmazk/xmlwitness/xmldsig"
)

var ErrDataHashNotFound = errors.New("data hash not found in SignedInfo")

// Generate is the whole pipeline: one deterministic, side-effect-free
// transform from (XML, params) to a circuit witness. Every failure is fatal;
// there are no partial results.
func Generate(xmlText string, params models.Params) (*models.Witness, error) {
	p := params.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	doc, err := xmldsig.Extract(xmlText)
	if err != nil {
		return nil, err
	}

	// Defense in depth: re-verify the signature over the canonicalized
	// SignedInfo before trusting any byte for the circuit.
	if err := verifyRSA(doc.SignedInfo, doc.Signature, doc.PublicKey); err != nil {
		return nil, err
	}

	// The payload digest must appear verbatim (base64) inside SignedInfo;
	// its offset is a circuit input.
	digest := sha256.Sum256(doc.SignedPayload)
	dataHash := base64.StdEncoding.EncodeToString(digest[:])
	dataHashIndex := bytes.Index(doc.SignedInfo, []byte(dataHash))
	if dataHashIndex < 0 {
		return nil, ErrDataHashNotFound
	}

	buf, msgLen, err := partialsha.Pad(doc.SignedPayload, p.MaxInputLength)
	if err != nil {
		return nil, err
	}
	state, remainder, remainderLen, err := partialsha.Split(
		buf, msgLen, []byte(CertificateAnchor), p.MaxInputLength)
	if err != nil {
		if errors.Is(err, partialsha.ErrAnchorNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrAnchorNotFound, err)
		}
		return nil, err
	}

	offs, err := resolveOffsets(remainder, p.RevealStart, p.RevealEnd)
	if err != nil {
		return nil, err
	}

	return assemble(p, doc, state, remainder, remainderLen, dataHashIndex, offs)
}
