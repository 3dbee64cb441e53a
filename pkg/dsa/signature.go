package dsa

import "math/big"

// Signature represents a DSA signature.
type Signature struct {
	R *big.Int // r component of the signature
	S *big.Int // s component of the signature
}

// InRange reports whether both components lie in the open interval (0, q).
// A well-formed signature never carries r = 0 or s = 0.
func (sig *Signature) InRange(q *big.Int) bool {
	if sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	if sig.R.Sign() <= 0 || sig.R.Cmp(q) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(q) >= 0 {
		return false
	}
	return true
}

// SignedMessage is a (message, signature) record as read from a transcript
// file. Either the raw message bytes or a precomputed digest integer Z is
// present; Z takes precedence when both are set.
type SignedMessage struct {
	Message []byte   // Raw message bytes (hashed on demand)
	Z       *big.Int // Precomputed digest integer, reduced mod q on use
	R       *big.Int // r component of the signature
	S       *big.Int // s component of the signature
}

// Digest returns the working digest of the record modulo q.
func (m *SignedMessage) Digest(q *big.Int) *big.Int {
	if m.Z != nil {
		return new(big.Int).Mod(m.Z, q)
	}
	return HashMessage(m.Message, q)
}

// Sig returns the signature components of the record.
func (m *SignedMessage) Sig() *Signature {
	return &Signature{R: m.R, S: m.S}
}
