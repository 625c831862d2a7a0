package bloom_test

import (
	"strings"
	"testing"

	"github.com/recordlink/pprl/pkg/bloom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigrams(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "regular word",
			value: "SMITH",
			want:  []string{" S", "SM", "MI", "IT", "TH", "H "},
		},
		{
			name:  "single char",
			value: "A",
			want:  []string{" A", "A "},
		},
		{
			name:  "empty is missing",
			value: "",
			want:  []string{"0"},
		},
		{
			name:  "nan is missing",
			value: "nan",
			want:  []string{"0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bloom.Bigrams(tt.value)
			assert.Equal(t, tt.want, got)
			if !bloom.IsMissing(tt.value) {
				assert.Len(t, got, len(tt.value)+1)
			}
		})
	}
}

func TestEncoderParams(t *testing.T) {
	_, err := bloom.NewEncoder(0, 10, []byte("k"))
	assert.Error(t, err)
	_, err = bloom.NewEncoder(500, 0, []byte("k"))
	assert.Error(t, err)

	enc, err := bloom.NewEncoder(500, 10, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, 500, enc.Size)
}

func TestEncodeDeterministic(t *testing.T) {
	enc, err := bloom.NewEncoder(500, 10, []byte("secret_key"))
	require.NoError(t, err)

	first := enc.Encode("SMITH")
	second := enc.Encode("SMITH")
	assert.Equal(t, first, second)
	assert.Len(t, first, 500)
	assert.Equal(t, 500,
		strings.Count(first, "0")+strings.Count(first, "1"))

	// a different key moves the bits
	other, err := bloom.NewEncoder(500, 10, []byte("another_key"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other.Encode("SMITH"))
}

func TestEncodeSetsAtMostNumHashPerToken(t *testing.T) {
	enc, err := bloom.NewEncoder(1000, 5, []byte("secret_key"))
	require.NoError(t, err)

	// 2 bigrams, 5 positions each, minus collisions
	encoded := enc.Encode("A")
	ones := strings.Count(encoded, "1")
	assert.LessOrEqual(t, ones, 10)
	assert.Greater(t, ones, 0)
}

func dice(t *testing.T, a, b string) float64 {
	t.Helper()
	ba, err := bloom.ParseBitset(a)
	require.NoError(t, err)
	bb, err := bloom.ParseBitset(b)
	require.NoError(t, err)
	d, err := bloom.Dice(ba, bb)
	require.NoError(t, err)
	return d
}

func TestDiceOnEncodedNames(t *testing.T) {
	enc, err := bloom.NewEncoder(200, 5, []byte("secret_key"))
	require.NoError(t, err)

	smith := enc.Encode("SMITH")
	smyth := enc.Encode("SMYTH")

	assert.InDelta(t, 1.0, dice(t, smith, smith), 1e-9)

	similar := dice(t, smith, smyth)
	assert.Greater(t, similar, 0.6)
	assert.Less(t, similar, 0.95)
}

func TestDiceBounds(t *testing.T) {
	a := "110100"
	inverse := "001011"
	zero := "000000"

	assert.InDelta(t, 1.0, dice(t, a, a), 1e-9)
	assert.InDelta(t, 0.0, dice(t, a, inverse), 1e-9)
	// both empty scores 0 by definition
	assert.InDelta(t, 0.0, dice(t, zero, zero), 1e-9)

	d := dice(t, a, "010010")
	assert.GreaterOrEqual(t, d, 0.0)
	assert.LessOrEqual(t, d, 1.0)
}

func TestDiceSizeMismatch(t *testing.T) {
	a, err := bloom.ParseBitset("1010")
	require.NoError(t, err)
	b, err := bloom.ParseBitset("10")
	require.NoError(t, err)

	_, err = bloom.Dice(a, b)
	assert.Error(t, err)
}

func TestParseBitset(t *testing.T) {
	b, err := bloom.ParseBitset("10110")
	require.NoError(t, err)
	assert.Equal(t, 5, b.Size())
	assert.Equal(t, 3, b.PopCount())

	_, err = bloom.ParseBitset("10x10")
	assert.Error(t, err)
}

func TestLongBitsetCrossesWordBoundary(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 130; i++ {
		if i%3 == 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	b, err := bloom.ParseBitset(sb.String())
	require.NoError(t, err)
	assert.Equal(t, 44, b.PopCount())

	d, err := bloom.Dice(b, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 1e-9)
}
