package common

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrWordTooWide = errors.New("value does not fit into the requested words")

// SplitToWords decomposes x into numWords limbs of bitsPerWord bits each, in
// little-endian limb order, rendered as decimal strings for the circuit.
// A 2048-bit RSA integer fits into 17 words of 121 bits.
func SplitToWords(x *big.Int, bitsPerWord, numWords int) ([]string, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value", ErrWordTooWide)
	}
	if x.BitLen() > bitsPerWord*numWords {
		return nil, fmt.Errorf("%w: %d bits > %d x %d", ErrWordTooWide,
			x.BitLen(), numWords, bitsPerWord)
	}

	mask := new(big.Int).Lsh(big.NewInt(1), uint(bitsPerWord))
	mask.Sub(mask, big.NewInt(1))

	words := make([]string, numWords)
	rest := new(big.Int).Set(x)
	word := new(big.Int)
	for i := 0; i < numWords; i++ {
		word.And(rest, mask)
		words[i] = word.String()
		rest.Rsh(rest, uint(bitsPerWord))
	}
	return words, nil
}

// JoinWords reassembles a little-endian limb encoding produced by
// SplitToWords: sum of word_i << (i*bitsPerWord).
func JoinWords(words []string, bitsPerWord int) (*big.Int, error) {
	out := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		word, ok := new(big.Int).SetString(words[i], 10)
		if !ok {
			return nil, fmt.Errorf("word %d is not a decimal integer: %q", i, words[i])
		}
		out.Lsh(out, uint(bitsPerWord))
		out.Add(out, word)
	}
	return out, nil
}
