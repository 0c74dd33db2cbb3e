package xmldsig

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
)

// canonicalizeElement serializes the element subtree and runs Canonical XML
// 1.0 over it. Both the signing and the extraction path go through this
// function, so the signed bytes are byte-identical on both sides.
func canonicalizeElement(el *etree.Element) ([]byte, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	serialized, err := doc.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("xmldsig: serialize element: %w", err)
	}

	decoder := xml.NewDecoder(strings.NewReader(serialized))
	canonical, err := c14n.Canonicalize(decoder)
	if err != nil {
		return nil, fmt.Errorf("xmldsig: canonicalize: %w", err)
	}
	return canonical, nil
}
