package dsa

import (
	"crypto/sha256"
	"math/big"
	"testing"
)

func TestHashMessage(t *testing.T) {
	q := big.NewInt(11)

	for _, msg := range testMessages {
		got := HashMessage(msg, q)
		if got.Sign() < 0 || got.Cmp(q) >= 0 {
			t.Errorf("HashMessage(%q) = %s, out of [0, q)", msg, got)
		}

		sum := sha256.Sum256(msg)
		want := new(big.Int).SetBytes(sum[:])
		want.Mod(want, q)
		if got.Cmp(want) != 0 {
			t.Errorf("HashMessage(%q) = %s, want %s", msg, got, want)
		}

		// Stable across calls.
		if got.Cmp(HashMessage(msg, q)) != 0 {
			t.Errorf("HashMessage(%q) not deterministic", msg)
		}
	}
}
