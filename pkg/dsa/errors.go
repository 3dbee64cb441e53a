package dsa

import "errors"

var (
	// ErrInvalidParameters indicates domain parameters (or a key derived
	// from them) that violate the (p, q, g) invariants
	ErrInvalidParameters = errors.New("dsa: invalid domain parameters")

	// ErrGenerationExhausted indicates a bounded search (prime candidate,
	// parameter multiplier, or signing nonce) hit its attempt cap
	ErrGenerationExhausted = errors.New("dsa: generation attempt cap exhausted")

	// ErrInvalidNonce indicates an externally supplied nonce that is out of
	// range or produces a degenerate signature component
	ErrInvalidNonce = errors.New("dsa: invalid nonce")

	// ErrNotInvertible indicates a modular inverse was requested for a
	// non-coprime pair
	ErrNotInvertible = errors.New("dsa: value is not invertible")

	// ErrNotRecoverable indicates the nonce-reuse recovery preconditions are
	// not met; this is a negative result, not a malfunction
	ErrNotRecoverable = errors.New("dsa: signatures do not permit key recovery")
)
