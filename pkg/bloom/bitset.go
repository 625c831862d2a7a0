package bloom

import (
	"math/bits"
)

// Bitset is a Bloom filter parsed into packed 64-bit words. The
// '0'/'1' string representation stays on disk for interoperability;
// comparisons run on the packed form.
type Bitset struct {
	words []uint64
	size  int
}

// ParseBitset converts a '0'/'1' string into a packed bitset.
func ParseBitset(s string) (*Bitset, error) {
	b := &Bitset{
		words: make([]uint64, (len(s)+63)/64),
		size:  len(s),
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			b.words[i/64] |= 1 << (i % 64)
		case '0':
		default:
			return nil, BitstringParseError(s[i], i)
		}
	}
	return b, nil
}

// Size returns the filter length in bits.
func (b *Bitset) Size() int { return b.size }

// PopCount returns the number of set bits.
func (b *Bitset) PopCount() int {
	var res int
	for _, w := range b.words {
		res += bits.OnesCount64(w)
	}
	return res
}

// Dice returns the Dice coefficient of two equally sized filters:
// 2*|a AND b| / (|a| + |b|). Two empty filters score 0.
func Dice(a, b *Bitset) (float64, error) {
	if a.size != b.size {
		return 0, BitstringSizeError(a.size, b.size)
	}
	var common int
	for i := range a.words {
		common += bits.OnesCount64(a.words[i] & b.words[i])
	}
	total := a.PopCount() + b.PopCount()
	if total == 0 {
		return 0, nil
	}
	return 2 * float64(common) / float64(total), nil
}
