// Package xmldsig extracts the signature-relevant byte streams from an
// enveloped XML-DSig document: the canonicalized signed payload, the
// canonicalized SignedInfo, the raw signature, and the signer's RSA key.
package xmldsig

import (
	"errors"
	"sync"

	"github.com/beevik/etree"
)

// XML-DSig algorithm identifiers.
const (
	Namespace = "http://www.w3.org/2000/09/xmldsig#"

	AlgC14N               = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	AlgEnvelopedSignature = "http://www.w3.org/2000/09/xmldsig#enveloped-signature"
	AlgRSASHA1            = "http://www.w3.org/2000/09/xmldsig#rsa-sha1"
	AlgSHA256             = "http://www.w3.org/2001/04/xmlenc#sha256"
)

// Transform is a Reference transform applied to the target element before
// canonicalization.
type Transform interface {
	ProcessElement(el *etree.Element) (*etree.Element, error)
}

var (
	setupOnce  sync.Once
	transforms map[string]Transform
)

// Setup initializes the transform registry. It is idempotent and safe to
// call from multiple goroutines; Extract and Sign call it defensively, so an
// explicit call is only needed when hosts want the cost paid at startup.
func Setup() {
	setupOnce.Do(func() {
		transforms = map[string]Transform{
			AlgEnvelopedSignature: envelopedSignature{},
			AlgC14N:               identity{},
		}
	})
}

// envelopedSignature implements the enveloped-signature transform: the
// document is processed with its Signature element removed.
type envelopedSignature struct{}

func (envelopedSignature) ProcessElement(el *etree.Element) (*etree.Element, error) {
	sig := el.FindElement(".//Signature")
	if sig == nil {
		return nil, errors.New("xmldsig: unable to find Signature node")
	}
	if sig.Parent().RemoveChild(sig) == nil {
		return nil, errors.New("xmldsig: unable to remove Signature element")
	}
	return el, nil
}

// identity marks canonicalization transforms; the actual canonicalization is
// applied once, after all element-level transforms have run.
type identity struct{}

func (identity) ProcessElement(el *etree.Element) (*etree.Element, error) {
	return el, nil
}
