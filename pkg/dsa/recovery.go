package dsa

import (
	"fmt"
	"math/big"
)

// RecoveryResult is the outcome of a successful nonce-reuse attack.
type RecoveryResult struct {
	PrivateKey *big.Int // Recovered private key x
	Nonce      *big.Int // Recovered nonce k
	Verified   bool     // Whether g^x mod p was checked against a public key
}

// RecoverPrivateKey recovers the private key from two signatures produced
// under the same nonce. Reuse is detectable because both signatures carry
// the same r; from there:
//
//	k = (h1 - h2) * (s1 - s2)^-1 mod q
//	x = (s1*k - h1) * r^-1 mod q
//
// Both digests go through HashMessage, the same procedure the signer uses;
// the equations only hold when the two paths hash identically.
//
// Unmet preconditions (differing r values, identical signatures) return
// ErrNotRecoverable: a negative result, not a malfunction.
func RecoverPrivateKey(msg1 []byte, sig1 *Signature, msg2 []byte, sig2 *Signature, params *Parameters) (*RecoveryResult, error) {
	if err := checkRecoveryParams(params); err != nil {
		return nil, err
	}
	q := params.Q
	return recoverFromDigests(HashMessage(msg1, q), sig1, HashMessage(msg2, q), sig2, q)
}

// RecoverFromRecords runs the nonce-reuse recovery on two parsed transcript
// records, hashing messages or reducing precomputed digests as each record
// requires.
func RecoverFromRecords(rec1, rec2 *SignedMessage, params *Parameters) (*RecoveryResult, error) {
	if err := checkRecoveryParams(params); err != nil {
		return nil, err
	}
	q := params.Q
	return recoverFromDigests(rec1.Digest(q), rec1.Sig(), rec2.Digest(q), rec2.Sig(), q)
}

func checkRecoveryParams(params *Parameters) error {
	if params == nil || params.Q == nil {
		return fmt.Errorf("%w: missing q", ErrInvalidParameters)
	}
	if params.Q.Cmp(bigTwo) <= 0 {
		return fmt.Errorf("%w: q must be greater than 2", ErrInvalidParameters)
	}
	return nil
}

func recoverFromDigests(h1 *big.Int, sig1 *Signature, h2 *big.Int, sig2 *Signature, q *big.Int) (*RecoveryResult, error) {
	if !sig1.InRange(q) || !sig2.InRange(q) {
		return nil, fmt.Errorf("%w: signature values out of range", ErrNotRecoverable)
	}

	if sig1.R.Cmp(sig2.R) != 0 {
		return nil, fmt.Errorf("%w: r values differ, nonces were not reused", ErrNotRecoverable)
	}

	// Same nonce and same digest means the signatures are identical:
	// duplicate input, nothing to recover.
	sDiff := new(big.Int).Sub(sig1.S, sig2.S)
	sDiff.Mod(sDiff, q)
	if sDiff.Sign() == 0 {
		return nil, fmt.Errorf("%w: s values are equal, signatures are duplicates", ErrNotRecoverable)
	}

	sDiffInv, err := ModInverse(sDiff, q)
	if err != nil {
		return nil, fmt.Errorf("%w: s1 - s2 is not invertible mod q", ErrNotRecoverable)
	}

	k := new(big.Int).Sub(h1, h2)
	k.Mod(k, q) // normalize the negative intermediate before multiplying
	k.Mul(k, sDiffInv)
	k.Mod(k, q)
	if k.Sign() == 0 {
		return nil, fmt.Errorf("%w: recovered nonce is zero", ErrNotRecoverable)
	}

	rInv, err := ModInverse(sig1.R, q)
	if err != nil {
		return nil, fmt.Errorf("%w: r is not invertible mod q", ErrNotRecoverable)
	}

	x := new(big.Int).Mul(sig1.S, k)
	x.Sub(x, h1)
	x.Mod(x, q)
	x.Mul(x, rInv)
	x.Mod(x, q)

	return &RecoveryResult{PrivateKey: x, Nonce: k}, nil
}

// VerifyRecoveredKey reports whether a recovered private key matches the
// given public key, i.e. g^x mod p == y.
func VerifyRecoveredKey(x *big.Int, params *Parameters, y *big.Int) (bool, error) {
	if params == nil || params.P == nil || params.G == nil || params.Q == nil {
		return false, fmt.Errorf("%w: missing p, q or g", ErrInvalidParameters)
	}
	if x == nil || x.Sign() <= 0 || x.Cmp(params.Q) >= 0 {
		return false, fmt.Errorf("%w: private key out of range (0, q)", ErrInvalidParameters)
	}

	derived, err := ModPow(params.G, x, params.P)
	if err != nil {
		return false, err
	}
	return derived.Cmp(y) == 0, nil
}
