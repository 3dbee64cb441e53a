package dsa

import "math/big"

// VerificationResult reports the outcome of a signature check together with
// every intermediate value, for display by a caller walking through the
// equations. A malformed signature is an invalid result with a reason, not
// an error.
type VerificationResult struct {
	Valid  bool
	W      *big.Int // s^-1 mod q
	U1     *big.Int // h*w mod q
	U2     *big.Int // r*w mod q
	V      *big.Int // (g^u1 * y^u2 mod p) mod q
	R      *big.Int // The signature's r, for comparison against v
	Reason string
}

func invalidResult(sig *Signature, reason string) *VerificationResult {
	res := &VerificationResult{Valid: false, Reason: reason}
	if sig != nil {
		res.R = sig.R
	}
	return res
}

// Verify checks a signature against a message and public key. It never
// returns an error: every failure mode is a first-class invalid result.
func Verify(message []byte, sig *Signature, params *Parameters, y *big.Int) *VerificationResult {
	if params == nil || params.P == nil || params.Q == nil || params.G == nil {
		return invalidResult(sig, "missing domain parameters")
	}
	if y == nil {
		return invalidResult(sig, "missing public key")
	}
	q := params.Q
	if q.Cmp(bigTwo) <= 0 {
		return invalidResult(sig, "q must be greater than 2")
	}
	if !sig.InRange(q) {
		return invalidResult(sig, "signature values out of range")
	}

	h := HashMessage(message, q)

	// Cannot fail for s in (0, q) with q prime, but a non-prime q smuggled
	// in through the parameters must still surface as an invalid result.
	w, err := ModInverse(sig.S, q)
	if err != nil {
		return invalidResult(sig, "s is not invertible modulo q")
	}

	u1 := new(big.Int).Mul(h, w)
	u1.Mod(u1, q)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, q)

	gu1, err := ModPow(params.G, u1, params.P)
	if err != nil {
		return invalidResult(sig, "modular exponentiation failed: "+err.Error())
	}
	yu2, err := ModPow(y, u2, params.P)
	if err != nil {
		return invalidResult(sig, "modular exponentiation failed: "+err.Error())
	}

	v := new(big.Int).Mul(gu1, yu2)
	v.Mod(v, params.P)
	v.Mod(v, q)

	res := &VerificationResult{
		W:  w,
		U1: u1,
		U2: u2,
		V:  v,
		R:  sig.R,
	}
	if v.Cmp(sig.R) == 0 {
		res.Valid = true
		res.Reason = "signature valid: v equals r"
	} else {
		res.Reason = "signature invalid: v does not equal r"
	}
	return res
}
