package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexFrom(t *testing.T) {
	buf := []byte("abcabcabc")

	require.Equal(t, 0, IndexFrom(buf, []byte("abc"), 0))
	require.Equal(t, 3, IndexFrom(buf, []byte("abc"), 1))
	require.Equal(t, 6, IndexFrom(buf, []byte("abc"), 4))
	require.Equal(t, -1, IndexFrom(buf, []byte("abc"), 7))
	require.Equal(t, -1, IndexFrom(buf, []byte("xyz"), 0))
	require.Equal(t, 0, IndexFrom(buf, []byte("abc"), -5))
	require.Equal(t, -1, IndexFrom(buf, []byte("abc"), len(buf)+1))
}

func TestIndexByteFrom(t *testing.T) {
	buf := []byte("a b>c")

	require.Equal(t, 1, IndexByteFrom(buf, ' ', 0))
	require.Equal(t, 3, IndexByteFrom(buf, '>', 0))
	require.Equal(t, -1, IndexByteFrom(buf, ' ', 2))
}

func TestMinIndex(t *testing.T) {
	require.Equal(t, 3, MinIndex(3, 7))
	require.Equal(t, 3, MinIndex(7, 3))
	require.Equal(t, 7, MinIndex(-1, 7))
	require.Equal(t, 7, MinIndex(7, -1))
	require.Equal(t, -1, MinIndex(-1, -1))
}
