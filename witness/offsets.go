package witness

import (
	"errors"
	"fmt"

	"github.com/firmazk/xmlwitness/common"
)

// CertificateAnchor is the literal tag text the circuit anchors on. The
// split point and every resolved offset are defined relative to it.
const CertificateAnchor = "<CertificateData"

var (
	ErrAnchorNotFound         = errors.New("certificate data node not found")
	ErrTypeTerminatorNotFound = errors.New("document type token has no terminator")
	ErrRevealStartNotFound    = errors.New("reveal start not found")
	ErrRevealEndNotFound      = errors.New("reveal end not found")
)

// offsets are byte positions inside the post-split remainder buffer. The
// circuit cannot search strings, so it is told these as plain indices.
type offsets struct {
	certificateDataNodeIndex int
	documentTypeLength       int
	isRevealEnabled          bool
	revealStartIndex         int
	revealEndIndex           int
}

// resolveOffsets scans the remainder buffer for the anchor, the document
// type token, and the optional reveal window. All searches are literal
// first-occurrence substring scans over the fixed buffer; there is no XML
// parsing at this stage.
func resolveOffsets(remainder []byte, revealStart, revealEnd string) (*offsets, error) {
	anchorIndex := common.IndexFrom(remainder, []byte(CertificateAnchor), 0)
	if anchorIndex < 0 {
		return nil, ErrAnchorNotFound
	}

	// The document type token starts one byte past the anchor tag name and
	// runs to the nearer of the next space or '>'.
	tokenStart := anchorIndex + len(CertificateAnchor) + 1
	tokenEnd := common.MinIndex(
		common.IndexByteFrom(remainder, ' ', tokenStart),
		common.IndexByteFrom(remainder, '>', tokenStart),
	)
	if tokenEnd < 0 {
		return nil, ErrTypeTerminatorNotFound
	}

	out := &offsets{
		certificateDataNodeIndex: anchorIndex,
		documentTypeLength:       tokenEnd - tokenStart,
	}

	// Reveal mode is driven by whether the caller supplied both markers,
	// not by whether the window turns out to be useful.
	if revealStart == "" || revealEnd == "" {
		return out, nil
	}
	out.isRevealEnabled = true

	startAbs := common.IndexFrom(remainder, []byte(revealStart), anchorIndex)
	if startAbs < 0 {
		return nil, fmt.Errorf("%w: %q", ErrRevealStartNotFound, revealStart)
	}
	out.revealStartIndex = startAbs - anchorIndex

	endAbs := common.IndexFrom(remainder, []byte(revealEnd), startAbs+len(revealStart))
	if endAbs < 0 {
		return nil, fmt.Errorf("%w: %q", ErrRevealEndNotFound, revealEnd)
	}
	out.revealEndIndex = endAbs - anchorIndex

	return out, nil
}
