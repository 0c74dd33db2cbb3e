package common

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitToWordsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value *big.Int
	}{
		{"zero", big.NewInt(0)},
		{"one", big.NewInt(1)},
		{"f4", big.NewInt(0x10001)},
		{"word boundary", new(big.Int).Lsh(big.NewInt(1), 121)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := SplitToWords(tt.value, 121, 17)
			require.NoError(t, err)
			require.Len(t, words, 17)

			back, err := JoinWords(words, 121)
			require.NoError(t, err)
			require.Zero(t, back.Cmp(tt.value), "reassembled value differs")
		})
	}
}

func TestSplitToWordsRandom2048(t *testing.T) {
	max := new(big.Int).Lsh(big.NewInt(1), 2048)
	for i := 0; i < 16; i++ {
		v, err := rand.Int(rand.Reader, max)
		require.NoError(t, err)

		words, err := SplitToWords(v, 121, 17)
		require.NoError(t, err)

		back, err := JoinWords(words, 121)
		require.NoError(t, err)
		require.Zero(t, back.Cmp(v))
	}
}

func TestSplitToWordsLittleEndianOrder(t *testing.T) {
	// 1 << 121 lands exactly in the second limb.
	words, err := SplitToWords(new(big.Int).Lsh(big.NewInt(1), 121), 121, 17)
	require.NoError(t, err)
	require.Equal(t, "0", words[0])
	require.Equal(t, "1", words[1])
}

func TestSplitToWordsTooWide(t *testing.T) {
	v := new(big.Int).Lsh(big.NewInt(1), 121*17)
	_, err := SplitToWords(v, 121, 17)
	require.ErrorIs(t, err, ErrWordTooWide)

	_, err = SplitToWords(big.NewInt(-1), 121, 17)
	require.ErrorIs(t, err, ErrWordTooWide)
}
