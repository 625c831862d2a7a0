// Package bloom implements the keyed Bloom-filter encoding of
// identifier strings and the Dice-coefficient comparison of the
// resulting bit sequences.
//
// A value is tokenized into bigrams over the space-padded string and
// every bigram is inserted with double hashing: the two base hashes
// are HMAC-SHA1 and HMAC-MD5 under a shared secret key, combined as
// g_i = (h1 + i*h2) mod size. The two HMACs act as independent keyed
// pseudo-random functions; no claim of cryptographic strength is made
// beyond keying.
package bloom

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"math/big"
	"strings"
)

// MissingToken is hashed in place of a missing value. Empty strings
// and the literal "nan" produced by upstream tooling both count as
// missing.
const MissingToken = "0"

// Bigrams returns the 2-grams of the space-padded value. A value of
// length L yields L+1 bigrams. Missing values yield the single
// MissingToken.
func Bigrams(value string) []string {
	if IsMissing(value) {
		return []string{MissingToken}
	}
	padded := " " + value + " "
	res := make([]string, 0, len(padded)-1)
	for i := 0; i+2 <= len(padded); i++ {
		res = append(res, padded[i:i+2])
	}
	return res
}

// IsMissing reports whether a value counts as absent for encoding.
func IsMissing(value string) bool {
	return value == "" || strings.EqualFold(value, "nan")
}

// Encoder turns strings into Bloom-filter bit strings.
type Encoder struct {
	// Size is the filter length in bits.
	Size int
	// NumHash is the number of hash functions per token.
	NumHash int
	// Key is the shared HMAC secret.
	Key []byte
}

// NewEncoder validates the parameters and returns an Encoder.
func NewEncoder(size, numHash int, key []byte) (*Encoder, error) {
	if size < 1 {
		return nil, ParamError("bloom size", size)
	}
	if numHash < 1 {
		return nil, ParamError("hash number", numHash)
	}
	return &Encoder{Size: size, NumHash: numHash, Key: key}, nil
}

// Encode returns the filter for one value as a '0'/'1' string of
// length Size. Given identical parameters the result is a pure
// function of the value.
func (e *Encoder) Encode(value string) string {
	bits := make([]byte, e.Size)
	for i := range bits {
		bits[i] = '0'
	}
	for _, token := range Bigrams(value) {
		h1, h2 := e.baseHashes(token)
		for i := 0; i < e.NumHash; i++ {
			pos := (h1 + i*h2) % e.Size
			bits[pos] = '1'
		}
	}
	return string(bits)
}

// baseHashes returns both base hash values reduced modulo Size. The
// digests are interpreted as big-endian unsigned integers; reducing
// them first keeps the position arithmetic in machine words without
// changing (h1 + i*h2) mod size.
func (e *Encoder) baseHashes(token string) (int, int) {
	size := big.NewInt(int64(e.Size))

	mac := hmac.New(sha1.New, e.Key)
	mac.Write([]byte(token))
	h1 := new(big.Int).SetBytes(mac.Sum(nil))
	h1.Mod(h1, size)

	mac = hmac.New(md5.New, e.Key)
	mac.Write([]byte(token))
	h2 := new(big.Int).SetBytes(mac.Sum(nil))
	h2.Mod(h2, size)

	return int(h1.Int64()), int(h2.Int64())
}
