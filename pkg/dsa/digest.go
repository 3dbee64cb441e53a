package dsa

import (
	"crypto/sha256"
	"math/big"
)

// HashMessage computes the canonical message digest: SHA-256 of the message
// bytes, interpreted as a big-endian integer and reduced mod q.
//
// Every component that touches a digest (signing, verification, nonce-reuse
// recovery) must go through this one procedure; mixing digest schemes breaks
// the recovery equations.
func HashMessage(message []byte, q *big.Int) *big.Int {
	h := sha256.Sum256(message)
	z := new(big.Int).SetBytes(h[:])
	return z.Mod(z, q)
}
