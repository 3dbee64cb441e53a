package ecdsanonce

import (
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// curveOrder is the order of the secp256k1 group.
var curveOrder = secp256k1.S256().N

// Signature is a secp256k1 ECDSA signature together with the digest it
// signs.
type Signature struct {
	Z *big.Int // Message hash mod n
	R *big.Int // r component of the signature
	S *big.Int // s component of the signature
}

// HashMessage hashes a message with SHA-256 and reduces it mod the curve
// order.
func HashMessage(message []byte) *big.Int {
	h := sha256.Sum256(message)
	z := new(big.Int).SetBytes(h[:])
	return z.Mod(z, curveOrder)
}

// Sign produces a textbook ECDSA signature over secp256k1 with a
// caller-chosen nonce. Deliberately unsafe: fixing the nonce across two
// messages is how the vulnerable transcripts this package attacks come to
// exist.
func Sign(priv, nonce, z *big.Int) (*Signature, error) {
	n := curveOrder
	if priv == nil || priv.Sign() <= 0 || priv.Cmp(n) >= 0 {
		return nil, errors.New("private key out of range (0, n)")
	}
	if nonce == nil || nonce.Sign() <= 0 || nonce.Cmp(n) >= 0 {
		return nil, errors.New("nonce out of range (0, n)")
	}

	// r = x-coordinate of nonce*G, mod n
	kx, _ := secp256k1.S256().ScalarBaseMult(nonce.Bytes())
	r := new(big.Int).Mod(kx, n)
	if r.Sign() == 0 {
		return nil, errors.New("degenerate nonce: r = 0")
	}

	kInv := new(big.Int).ModInverse(nonce, n)
	if kInv == nil {
		return nil, errors.New("nonce is not invertible")
	}

	// s = k^-1 * (z + priv*r) mod n
	s := new(big.Int).Mul(priv, r)
	s.Add(s, new(big.Int).Mod(z, n))
	s.Mul(s, kInv)
	s.Mod(s, n)
	if s.Sign() == 0 {
		return nil, errors.New("degenerate nonce: s = 0")
	}

	return &Signature{Z: new(big.Int).Mod(z, n), R: r, S: s}, nil
}
