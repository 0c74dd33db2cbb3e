package partialsha

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

const anchor = "<CertificateData"

// payloadWithAnchor builds a payload with prefix bytes of filler before the
// anchor and a short tail after it.
func payloadWithAnchor(prefix int) []byte {
	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte("x"), prefix))
	buf.WriteString(anchor)
	buf.WriteString(">X509Data tail</CertificateData>")
	return buf.Bytes()
}

func TestPadMatchesSHA256(t *testing.T) {
	// Padding is correct iff compressing exactly msgLen bytes from the
	// initial state reproduces the stdlib digest.
	for _, size := range []int{0, 1, 54, 55, 56, 63, 64, 65, 119, 120, 128, 500} {
		payload := bytes.Repeat([]byte{0xa5}, size)

		buf, msgLen, err := Pad(payload, 1280)
		require.NoError(t, err, "size %d", size)
		require.Len(t, buf, 1280)
		require.Zero(t, msgLen%BlockSize)

		got, err := Resume(InitialState(), buf[:msgLen])
		require.NoError(t, err)

		want := sha256.Sum256(payload)
		require.Equal(t, want[:], got[:], "size %d", size)
	}
}

func TestPadCapacityOverflow(t *testing.T) {
	// 120 payload bytes need 128 padded bytes; a 64-byte cap must fail.
	_, _, err := Pad(bytes.Repeat([]byte{1}, 120), 64)
	require.ErrorIs(t, err, ErrPayloadTooLarge)

	// 55 bytes still fit a single block.
	_, _, err = Pad(bytes.Repeat([]byte{1}, 55), 64)
	require.NoError(t, err)
}

func TestPadRejectsUnalignedCapacity(t *testing.T) {
	_, _, err := Pad([]byte("abc"), 100)
	require.ErrorIs(t, err, ErrNotBlockAligned)
}

func TestSplitResumeInvariant(t *testing.T) {
	// Anchor below and above one block boundary; the resumed hash must equal
	// a direct SHA-256 of the full payload either way.
	for _, prefix := range []int{0, 10, 63, 64, 65, 130, 400} {
		payload := payloadWithAnchor(prefix)

		buf, msgLen, err := Pad(payload, 1280)
		require.NoError(t, err)

		state, remainder, remainderLen, err := Split(buf, msgLen, []byte(anchor), 1280)
		require.NoError(t, err, "prefix %d", prefix)

		cut := 1280 - len(remainder)
		require.Zero(t, cut%BlockSize, "split point off block boundary")
		require.LessOrEqual(t, cut, prefix, "split point past the anchor")
		require.Equal(t, msgLen-cut, remainderLen)

		got, err := Resume(state, remainder[:remainderLen])
		require.NoError(t, err)

		want := sha256.Sum256(payload)
		require.Equal(t, want[:], got[:], "prefix %d", prefix)
	}
}

func TestSplitPrecomputedStateIsInitialForEarlyAnchor(t *testing.T) {
	// Anchor inside the first block: nothing can be precomputed.
	payload := payloadWithAnchor(5)
	buf, msgLen, err := Pad(payload, 1280)
	require.NoError(t, err)

	state, remainder, _, err := Split(buf, msgLen, []byte(anchor), 1280)
	require.NoError(t, err)
	require.Equal(t, InitialState(), state)
	require.Len(t, remainder, 1280)
}

func TestSplitAnchorNotFound(t *testing.T) {
	buf, msgLen, err := Pad([]byte("no anchor here"), 1280)
	require.NoError(t, err)

	_, _, _, err = Split(buf, msgLen, []byte(anchor), 1280)
	require.ErrorIs(t, err, ErrAnchorNotFound)
}

func TestSplitRemainderCapacity(t *testing.T) {
	payload := payloadWithAnchor(10)
	buf, msgLen, err := Pad(payload, 1280)
	require.NoError(t, err)

	// Anchor is in block 0, so the whole message must fit maxRemaining.
	_, _, _, err = Split(buf, msgLen, []byte(anchor), BlockSize)
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestResumeRejectsUnalignedData(t *testing.T) {
	_, err := Resume(InitialState(), make([]byte, 65))
	require.ErrorIs(t, err, ErrNotBlockAligned)
}
