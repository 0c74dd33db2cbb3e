package common

import "strconv"

// BytesToDecimalStrings renders bytes as per-byte decimal strings, the form
// the circuit expects signal arrays in.
func BytesToDecimalStrings(b []byte) []string {
	out := make([]string, len(b))
	for i, v := range b {
		out[i] = strconv.Itoa(int(v))
	}
	return out
}

// PadBytes returns b zero-extended to size. b longer than size is returned
// unchanged.
func PadBytes(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	padded := make([]byte, size)
	copy(padded, b)
	return padded
}
