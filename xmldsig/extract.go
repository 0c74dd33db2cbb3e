package xmldsig

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/beevik/etree"
	"github.com/firmazk/xmlwitness/models"
)

// SignedDocument is the extractor's contract with the witness pipeline: the
// exact bytes the signature covers, plus the material to re-verify it.
type SignedDocument struct {
	PublicKey *models.PublicKey

	// SignedPayload is the canonicalized byte form of the single Reference
	// target, after its transforms. These are the bytes SHA-256 covers.
	SignedPayload []byte

	// SignedInfo is the canonicalized SignedInfo serialization, the bytes
	// the RSA signature covers.
	SignedInfo []byte

	// Signature is the raw (base64-decoded) SignatureValue.
	Signature []byte
}

var (
	ErrReferenceCount        = errors.New("XML must contain exactly one reference")
	ErrMissingSignature      = errors.New("document has no Signature element")
	ErrMissingSignedInfo     = errors.New("Signature has no SignedInfo element")
	ErrMissingSignatureValue = errors.New("Signature has no SignatureValue element")
	ErrMissingKeyInfo        = errors.New("Signature has no usable KeyInfo key material")
	ErrUnsupportedTransform  = errors.New("unsupported transform algorithm")
)

// Extract parses an enveloped XML-DSig document and returns the byte streams
// the witness pipeline consumes. It enforces the single-Reference invariant.
func Extract(xmlText string) (*SignedDocument, error) {
	Setup()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, fmt.Errorf("xmldsig: parse document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("xmldsig: document has no root element")
	}

	sig := root.FindElement(".//Signature")
	if sig == nil {
		return nil, ErrMissingSignature
	}
	signedInfo := sig.FindElement("SignedInfo")
	if signedInfo == nil {
		return nil, ErrMissingSignedInfo
	}

	refs := signedInfo.FindElements(".//Reference")
	if len(refs) != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrReferenceCount, len(refs))
	}

	payload, err := resolveReference(root, refs[0])
	if err != nil {
		return nil, err
	}

	signedInfoBytes, err := canonicalizeElement(signedInfo)
	if err != nil {
		return nil, err
	}

	sigValue := sig.FindElement("SignatureValue")
	if sigValue == nil {
		return nil, ErrMissingSignatureValue
	}
	signature, err := base64.StdEncoding.DecodeString(stripSpace(sigValue.Text()))
	if err != nil {
		return nil, fmt.Errorf("xmldsig: decode SignatureValue: %w", err)
	}

	pub, err := extractPublicKey(sig)
	if err != nil {
		return nil, err
	}

	return &SignedDocument{
		PublicKey:     pub,
		SignedPayload: payload,
		SignedInfo:    signedInfoBytes,
		Signature:     signature,
	}, nil
}

// resolveReference applies the Reference's transforms to its target and
// canonicalizes the result.
func resolveReference(root *etree.Element, ref *etree.Element) ([]byte, error) {
	uri := ref.SelectAttrValue("URI", "")

	var target *etree.Element
	switch {
	case uri == "":
		target = root
	case strings.HasPrefix(uri, "#"):
		target = findByID(root, uri[1:])
		if target == nil {
			return nil, fmt.Errorf("xmldsig: reference target %q not found", uri)
		}
	default:
		return nil, fmt.Errorf("xmldsig: external reference %q not supported", uri)
	}

	el := target.Copy()
	for _, t := range ref.FindElements("Transforms/Transform") {
		alg := t.SelectAttrValue("Algorithm", "")
		transform, ok := transforms[alg]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedTransform, alg)
		}
		var err error
		el, err = transform.ProcessElement(el)
		if err != nil {
			return nil, err
		}
	}
	return canonicalizeElement(el)
}

func findByID(el *etree.Element, id string) *etree.Element {
	for _, attr := range el.Attr {
		if (attr.Key == "Id" || attr.Key == "ID") && attr.Value == id {
			return el
		}
	}
	for _, child := range el.ChildElements() {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// extractPublicKey reads the signer's RSA key from KeyInfo, preferring an
// X509Certificate and falling back to a bare RSAKeyValue.
func extractPublicKey(sig *etree.Element) (*models.PublicKey, error) {
	keyInfo := sig.FindElement("KeyInfo")
	if keyInfo == nil {
		return nil, ErrMissingKeyInfo
	}

	if certEl := keyInfo.FindElement(".//X509Certificate"); certEl != nil {
		der, err := base64.StdEncoding.DecodeString(stripSpace(certEl.Text()))
		if err != nil {
			return nil, fmt.Errorf("xmldsig: decode X509Certificate: %w", err)
		}
		cert, err := x509.ParseCertificate(der)
		if err != nil {
			return nil, fmt.Errorf("xmldsig: parse X509Certificate: %w", err)
		}
		rsaKey, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: certificate key is not RSA", models.ErrBadKeyMaterial)
		}
		return models.PublicKeyFromRSA(rsaKey), nil
	}

	if kv := keyInfo.FindElement(".//RSAKeyValue"); kv != nil {
		modEl := kv.FindElement("Modulus")
		expEl := kv.FindElement("Exponent")
		if modEl == nil || expEl == nil {
			return nil, fmt.Errorf("%w: RSAKeyValue missing Modulus or Exponent", models.ErrBadKeyMaterial)
		}
		mod, err := base64.StdEncoding.DecodeString(stripSpace(modEl.Text()))
		if err != nil {
			return nil, fmt.Errorf("xmldsig: decode Modulus: %w", err)
		}
		exp, err := base64.StdEncoding.DecodeString(stripSpace(expEl.Text()))
		if err != nil {
			return nil, fmt.Errorf("xmldsig: decode Exponent: %w", err)
		}
		return &models.PublicKey{
			N: new(big.Int).SetBytes(mod),
			E: new(big.Int).SetBytes(exp),
		}, nil
	}

	return nil, ErrMissingKeyInfo
}

// stripSpace removes the whitespace XML pretty-printers insert into base64
// text nodes.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
