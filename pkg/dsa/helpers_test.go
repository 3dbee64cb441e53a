package dsa

import (
	"errors"
	"math/big"
)

// zeroReader yields endless zero bytes, pinning every candidate sampled
// through it to the bottom of its range.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// constReader yields the same byte forever, making crypto/rand.Int
// deterministic for small ranges.
type constReader struct{ b byte }

func (r constReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
	}
	return len(p), nil
}

// brokenReader fails every Read, proving whether a code path consults the
// source it was handed.
type brokenReader struct{}

func (brokenReader) Read(p []byte) (int, error) {
	return 0, errors.New("randomness source is broken")
}

// toyParams is the worked example used across the tests: p = 23, q = 11,
// g = 2 (order 11 mod 23). Private key 5 gives public key 2^5 mod 23 = 9.
func toyParams() *Parameters {
	return &Parameters{
		P: big.NewInt(23),
		Q: big.NewInt(11),
		G: big.NewInt(2),
	}
}

// testMessages is a pool of fixed messages the tests draw from when a
// specific digest relation (distinct digests, nonzero s) is needed; the
// relation is checked at runtime since digests are opaque.
var testMessages = [][]byte{
	[]byte("the quick brown fox"),
	[]byte("jumps over the lazy dog"),
	[]byte("pack my box with five dozen liquor jugs"),
	[]byte("sphinx of black quartz, judge my vow"),
	[]byte("how vexingly quick daft zebras jump"),
	[]byte("bright vixens jump; dozy fowl quack"),
	[]byte("jackdaws love my big sphinx of quartz"),
	[]byte("the five boxing wizards jump quickly"),
}

// smallGenConfig keeps parameter generation fast in tests.
func smallGenConfig() GenConfig {
	return GenConfig{
		QBits:       24,
		PBits:       48,
		MRRounds:    16,
		MaxAttempts: 8192,
	}
}
