package witness_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/firmazk/xmlwitness/common"
	"github.com/firmazk/xmlwitness/models"
	"github.com/firmazk/xmlwitness/partialsha"
	"github.com/firmazk/xmlwitness/witness"
	"github.com/firmazk/xmlwitness/xmldsig"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

// signedTestDocument builds and signs a small identity document. The
// CertificateData content starts with the "X509Data" type token; SubjectName
// follows the anchor so it can serve as a reveal window.
func signedTestDocument(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	doc := etree.NewDocument()
	root := doc.CreateElement("IdentityDocument")
	root.CreateElement("Issuer").SetText("Registro Nacional de Certificadores")
	root.CreateElement("IssuedAt").SetText("2026-08-23T10:00:00Z")
	root.CreateElement("CertificateData").SetText("X509Data CN=PERSONA FISICA, O=BCCR")
	root.CreateElement("SubjectName").SetText("ADA LOVELACE QUIROS")

	signedXML, err := xmldsig.Sign(doc, key, nil)
	require.NoError(t, err)
	return signedXML
}

// decodeSignals turns a decimal-string signal array back into bytes.
func decodeSignals(t *testing.T, signals []string) []byte {
	t.Helper()
	out := make([]byte, len(signals))
	for i, s := range signals {
		v, err := strconv.Atoi(s)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0)
		require.LessOrEqual(t, v, 255)
		out[i] = byte(v)
	}
	return out
}

func TestGenerate(t *testing.T) {
	key := newTestKey(t)
	signedXML := signedTestDocument(t, key)

	w, err := witness.Generate(signedXML, models.Params{
		NullifierSeed: big.NewInt(12345),
	})
	require.NoError(t, err)

	require.Len(t, w.DataPadded, models.DefaultMaxInputLength)
	require.Len(t, w.PrecomputedSHA, 32)
	require.Len(t, w.Signature, models.DefaultRSAKeyNumChunks)
	require.Len(t, w.PubKey, models.DefaultRSAKeyNumChunks)
	require.Equal(t, "12345", w.NullifierSeed)
	require.Equal(t, "0", w.IsRevealEnabled)
	require.Equal(t, "0", w.RevealStartIndex)
	require.Equal(t, "0", w.RevealEndIndex)

	remainder := decodeSignals(t, w.DataPadded)
	remainderLen, err := strconv.Atoi(w.DataPaddedLength)
	require.NoError(t, err)
	require.Greater(t, remainderLen, 0)
	require.LessOrEqual(t, remainderLen, models.DefaultMaxInputLength)

	// The anchor sits where the witness says it does.
	anchorIndex, err := strconv.Atoi(w.CertificateDataNodeIndex)
	require.NoError(t, err)
	require.Equal(t, "<CertificateData",
		string(remainder[anchorIndex:anchorIndex+len("<CertificateData")]))

	// "X509Data" bounded by the first space.
	require.Equal(t, "8", w.DocumentTypeLength)

	// The modulus round-trips through the limb encoding.
	n, err := common.JoinWords(w.PubKey, models.DefaultRSAKeyBitsPerChunk)
	require.NoError(t, err)
	require.Zero(t, n.Cmp(key.N))
}

func TestGenerateMatchesExtractedStreams(t *testing.T) {
	key := newTestKey(t)
	signedXML := signedTestDocument(t, key)

	w, err := witness.Generate(signedXML, models.Params{NullifierSeed: big.NewInt(7)})
	require.NoError(t, err)

	doc, err := xmldsig.Extract(signedXML)
	require.NoError(t, err)

	// dataHashIndex points at the base64 payload digest inside SignedInfo.
	signedInfo := decodeSignals(t, w.SignedInfo)
	require.Equal(t, doc.SignedInfo, signedInfo)

	digest := sha256.Sum256(doc.SignedPayload)
	dataHash := base64.StdEncoding.EncodeToString(digest[:])
	dataHashIndex, err := strconv.Atoi(w.DataHashIndex)
	require.NoError(t, err)
	require.Equal(t, dataHash, string(signedInfo[dataHashIndex:dataHashIndex+len(dataHash)]))

	// Resuming the precomputed state over the used remainder reproduces the
	// payload digest bit for bit.
	remainder := decodeSignals(t, w.DataPadded)
	remainderLen, err := strconv.Atoi(w.DataPaddedLength)
	require.NoError(t, err)

	var state [partialsha.StateSize]byte
	copy(state[:], decodeSignals(t, w.PrecomputedSHA))
	resumed, err := partialsha.Resume(state, remainder[:remainderLen])
	require.NoError(t, err)
	require.Equal(t, digest[:], resumed[:])

	// The signature limbs reassemble to the raw SignatureValue integer.
	sig, err := common.JoinWords(w.Signature, models.DefaultRSAKeyBitsPerChunk)
	require.NoError(t, err)
	require.Zero(t, sig.Cmp(new(big.Int).SetBytes(doc.Signature)))
}

func TestGenerateRevealWindow(t *testing.T) {
	key := newTestKey(t)
	signedXML := signedTestDocument(t, key)

	w, err := witness.Generate(signedXML, models.Params{
		NullifierSeed: big.NewInt(1),
		RevealStart:   "<SubjectName>",
		RevealEnd:     "</SubjectName>",
	})
	require.NoError(t, err)
	require.Equal(t, "1", w.IsRevealEnabled)

	start, err := strconv.Atoi(w.RevealStartIndex)
	require.NoError(t, err)
	end, err := strconv.Atoi(w.RevealEndIndex)
	require.NoError(t, err)
	require.GreaterOrEqual(t, start, 0)
	require.Less(t, start, end)
}

func TestGenerateRevealStartNotFound(t *testing.T) {
	key := newTestKey(t)
	signedXML := signedTestDocument(t, key)

	_, err := witness.Generate(signedXML, models.Params{
		NullifierSeed: big.NewInt(1),
		RevealStart:   "<NoSuchNode>",
		RevealEnd:     "</NoSuchNode>",
	})
	require.ErrorIs(t, err, witness.ErrRevealStartNotFound)
}

func TestGenerateTamperedPayload(t *testing.T) {
	key := newTestKey(t)
	signedXML := signedTestDocument(t, key)

	// Same-length content change invalidates the embedded digest.
	tampered := strings.Replace(signedXML, "ADA LOVELACE QUIROS", "EVE LOVELACE QUIROS", 1)
	require.NotEqual(t, signedXML, tampered)

	_, err := witness.Generate(tampered, models.Params{NullifierSeed: big.NewInt(1)})
	require.ErrorIs(t, err, witness.ErrDataHashNotFound)
}

func TestGenerateTamperedSignature(t *testing.T) {
	key := newTestKey(t)
	signedXML := signedTestDocument(t, key)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(signedXML))
	sigValue := doc.FindElement("//SignatureValue")
	require.NotNil(t, sigValue)

	// Swap the first base64 character while keeping SignedInfo intact.
	text := sigValue.Text()
	if text[0] == 'A' {
		text = "B" + text[1:]
	} else {
		text = "A" + text[1:]
	}
	sigValue.SetText(text)
	tampered, err := doc.WriteToString()
	require.NoError(t, err)

	_, err = witness.Generate(tampered, models.Params{NullifierSeed: big.NewInt(1)})
	require.ErrorIs(t, err, witness.ErrRSAVerification)
}

func TestGenerateSeedValidationPrecedesParsing(t *testing.T) {
	// Garbage XML: the seed check must fire before any parsing is attempted.
	_, err := witness.Generate("this is not xml", models.Params{
		NullifierSeed: models.FieldModulus(),
	})
	require.ErrorIs(t, err, models.ErrSeedTooLarge)

	_, err = witness.Generate("this is not xml", models.Params{})
	require.ErrorIs(t, err, models.ErrMissingSeed)
}

func TestGenerateRejectsUnalignedInputLength(t *testing.T) {
	_, err := witness.Generate("<x/>", models.Params{
		NullifierSeed:  big.NewInt(1),
		MaxInputLength: 1000,
	})
	require.ErrorIs(t, err, models.ErrBadInputLength)
}

func TestGenerateCapacityOverflow(t *testing.T) {
	key := newTestKey(t)

	doc := etree.NewDocument()
	root := doc.CreateElement("IdentityDocument")
	root.CreateElement("Filler").SetText(strings.Repeat("z", 512))
	root.CreateElement("CertificateData").SetText("X509Data CN=X")

	signedXML, err := xmldsig.Sign(doc, key, nil)
	require.NoError(t, err)

	_, err = witness.Generate(signedXML, models.Params{
		NullifierSeed:  big.NewInt(1),
		MaxInputLength: 512,
	})
	require.ErrorIs(t, err, partialsha.ErrPayloadTooLarge)
}
