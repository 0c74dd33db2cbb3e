package partialsha

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrPayloadTooLarge = errors.New("input too large for the configured max input length")
	ErrAnchorNotFound  = errors.New("anchor selector not found in padded buffer")
)

// Pad applies SHA-256 Merkle-Damgard padding (0x80, zero fill, 8-byte
// big-endian bit length) and zero-extends the buffer to maxLen bytes. It
// returns the buffer and the padded message length, i.e. the number of bytes
// the hash computation actually covers. maxLen must be a multiple of 64.
func Pad(payload []byte, maxLen int) ([]byte, int, error) {
	if maxLen%BlockSize != 0 {
		return nil, 0, fmt.Errorf("max length %d: %w", maxLen, ErrNotBlockAligned)
	}

	// 1 byte for 0x80, 8 for the length, rounded up to a block.
	msgLen := ((len(payload) + 9 + BlockSize - 1) / BlockSize) * BlockSize
	if msgLen > maxLen {
		return nil, 0, fmt.Errorf("%w: padded payload is %d bytes, capacity %d",
			ErrPayloadTooLarge, msgLen, maxLen)
	}

	buf := make([]byte, maxLen)
	copy(buf, payload)
	buf[len(payload)] = 0x80
	binary.BigEndian.PutUint64(buf[msgLen-8:msgLen], uint64(len(payload))*8)
	return buf, msgLen, nil
}

// Split cuts a padded buffer at the SHA block boundary preceding the first
// occurrence of anchor. It returns the chaining state over the blocks before
// the cut, the remainder of the buffer, and the number of remainder bytes the
// hash still covers. Resuming the state over remainder[:remainderLen]
// reproduces the digest of the original payload.
func Split(buf []byte, msgLen int, anchor []byte, maxRemaining int) ([StateSize]byte, []byte, int, error) {
	anchorIndex := bytes.Index(buf, anchor)
	if anchorIndex < 0 {
		return [StateSize]byte{}, nil, 0, fmt.Errorf("%w: %q", ErrAnchorNotFound, anchor)
	}

	cut := (anchorIndex / BlockSize) * BlockSize
	remainderLen := msgLen - cut
	if remainderLen > maxRemaining {
		return [StateSize]byte{}, nil, 0, fmt.Errorf("%w: %d remainder bytes, capacity %d",
			ErrPayloadTooLarge, remainderLen, maxRemaining)
	}

	h := initState
	for off := 0; off < cut; off += BlockSize {
		compress(&h, buf[off:off+BlockSize])
	}
	return marshalState(h), buf[cut:], remainderLen, nil
}
