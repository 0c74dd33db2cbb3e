package witness

import (
	"math/big"
	"strconv"

	"github.com/firmazk/xmlwitness/common"
	"github.com/firmazk/xmlwitness/models"
	"github.com/firmazk/xmlwitness/partialsha"
	"github.com/firmazk/xmlwitness/xmldsig"
)

// assemble packs the pipeline's outputs into the circuit's fixed input
// schema. It has no side effects and performs no further validation beyond
// the limb-width checks.
func assemble(
	p models.Params,
	doc *xmldsig.SignedDocument,
	state [partialsha.StateSize]byte,
	remainder []byte,
	remainderLen int,
	dataHashIndex int,
	offs *offsets,
) (*models.Witness, error) {
	signature, err := common.SplitToWords(
		new(big.Int).SetBytes(doc.Signature), p.RSAKeyBitsPerChunk, p.RSAKeyNumChunks)
	if err != nil {
		return nil, err
	}
	pubKey, err := common.SplitToWords(doc.PublicKey.N, p.RSAKeyBitsPerChunk, p.RSAKeyNumChunks)
	if err != nil {
		return nil, err
	}

	w := &models.Witness{
		DataPadded:               common.BytesToDecimalStrings(common.PadBytes(remainder, p.MaxInputLength)),
		DataPaddedLength:         strconv.Itoa(remainderLen),
		SignedInfo:               common.BytesToDecimalStrings(doc.SignedInfo),
		PrecomputedSHA:           common.BytesToDecimalStrings(state[:]),
		DataHashIndex:            strconv.Itoa(dataHashIndex),
		CertificateDataNodeIndex: strconv.Itoa(offs.certificateDataNodeIndex),
		DocumentTypeLength:       strconv.Itoa(offs.documentTypeLength),
		Signature:                signature,
		PubKey:                   pubKey,
		IsRevealEnabled:          "0",
		RevealStartIndex:         strconv.Itoa(offs.revealStartIndex),
		RevealEndIndex:           strconv.Itoa(offs.revealEndIndex),
		NullifierSeed:            p.NullifierSeed.String(),
	}
	if offs.isRevealEnabled {
		w.IsRevealEnabled = "1"
	}
	return w, nil
}
