package common

import "bytes"

// IndexFrom returns the offset of the first occurrence of sub in buf at or
// after from, or -1 if absent. Offsets are absolute within buf.
func IndexFrom(buf, sub []byte, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(buf) {
		return -1
	}
	i := bytes.Index(buf[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}

// IndexByteFrom is IndexFrom for a single byte.
func IndexByteFrom(buf []byte, b byte, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(buf) {
		return -1
	}
	i := bytes.IndexByte(buf[from:], b)
	if i < 0 {
		return -1
	}
	return from + i
}

// MinIndex returns the smaller of two scan results, treating -1 as "not
// found". Returns -1 only when both are absent.
func MinIndex(a, b int) int {
	switch {
	case a < 0:
		return b
	case b < 0:
		return a
	case a < b:
		return a
	default:
		return b
	}
}
