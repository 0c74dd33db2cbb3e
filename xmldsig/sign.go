package xmldsig

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	"github.com/beevik/etree"
)

// Sign appends an enveloped RSA-SHA1 signature (SHA-256 payload digest) to
// the document root and returns the signed serialization. When certDER is
// nil the key is embedded as a bare RSAKeyValue instead of an
// X509Certificate. The signing path shares Extract's canonicalization, so
// documents signed here always round-trip through Extract.
func Sign(doc *etree.Document, key *rsa.PrivateKey, certDER []byte) (string, error) {
	Setup()

	root := doc.Root()
	if root == nil {
		return "", errors.New("xmldsig: document has no root element")
	}
	if root.FindElement(".//Signature") != nil {
		return "", errors.New("xmldsig: document is already signed")
	}

	payload, err := canonicalizeElement(root)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(payload)

	sig := etree.NewElement("Signature")
	sig.CreateAttr("xmlns", Namespace)

	signedInfo := sig.CreateElement("SignedInfo")
	signedInfo.CreateElement("CanonicalizationMethod").CreateAttr("Algorithm", AlgC14N)
	signedInfo.CreateElement("SignatureMethod").CreateAttr("Algorithm", AlgRSASHA1)

	ref := signedInfo.CreateElement("Reference")
	ref.CreateAttr("URI", "")
	transforms := ref.CreateElement("Transforms")
	transforms.CreateElement("Transform").CreateAttr("Algorithm", AlgEnvelopedSignature)
	transforms.CreateElement("Transform").CreateAttr("Algorithm", AlgC14N)
	ref.CreateElement("DigestMethod").CreateAttr("Algorithm", AlgSHA256)
	ref.CreateElement("DigestValue").SetText(base64.StdEncoding.EncodeToString(digest[:]))

	signedInfoBytes, err := canonicalizeElement(signedInfo)
	if err != nil {
		return "", err
	}
	h1 := sha1.Sum(signedInfoBytes)
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA1, h1[:])
	if err != nil {
		return "", fmt.Errorf("xmldsig: sign SignedInfo: %w", err)
	}
	sig.CreateElement("SignatureValue").SetText(base64.StdEncoding.EncodeToString(signature))

	keyInfo := sig.CreateElement("KeyInfo")
	if certDER != nil {
		keyInfo.CreateElement("X509Data").
			CreateElement("X509Certificate").
			SetText(base64.StdEncoding.EncodeToString(certDER))
	} else {
		keyValue := keyInfo.CreateElement("KeyValue").CreateElement("RSAKeyValue")
		keyValue.CreateElement("Modulus").
			SetText(base64.StdEncoding.EncodeToString(key.N.Bytes()))
		keyValue.CreateElement("Exponent").
			SetText(base64.StdEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()))
	}

	root.AddChild(sig)
	return doc.WriteToString()
}
