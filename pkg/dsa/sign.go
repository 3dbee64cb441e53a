package dsa

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// defaultSignRetries caps nonce resampling when a randomly drawn nonce
// produces a degenerate r or s.
const defaultSignRetries = 64

// SignOptions controls how the signing nonce is obtained.
type SignOptions struct {
	// Nonce fixes the nonce k. nil means a fresh nonce is drawn uniformly
	// from (0, q) per attempt. A fixed nonce that is out of range or yields
	// r = 0 or s = 0 fails with ErrInvalidNonce: retrying a fixed value
	// would recompute the same degenerate result forever.
	Nonce *big.Int

	// MaxRetries caps resampling for random nonces (0 = default).
	MaxRetries int

	// Rand is the randomness source (defaults to crypto/rand).
	Rand io.Reader
}

// SigningResult carries the signature together with the intermediate values
// of the computation. The intermediates exist for display; the signature
// alone is the cryptographic output.
type SigningResult struct {
	Signature Signature
	Digest    *big.Int // Message digest reduced mod q
	Nonce     *big.Int // The nonce k that was used
	NonceInv  *big.Int // k^-1 mod q
}

// Sign produces a DSA signature for the message under the private key x:
//
//	r = (g^k mod p) mod q
//	s = k^-1 * (h + x*r) mod q
//
// A randomly drawn nonce that yields r = 0 or s = 0 is resampled up to
// opts.MaxRetries times before ErrGenerationExhausted; a fixed nonce fails
// immediately with ErrInvalidNonce in the same situation.
func Sign(message []byte, params *Parameters, x *big.Int, opts SignOptions) (*SigningResult, error) {
	if params == nil || params.P == nil || params.Q == nil || params.G == nil {
		return nil, fmt.Errorf("%w: missing p, q or g", ErrInvalidParameters)
	}
	q := params.Q
	if q.Cmp(bigTwo) <= 0 {
		return nil, fmt.Errorf("%w: q must be greater than 2", ErrInvalidParameters)
	}
	if x == nil || x.Sign() <= 0 || x.Cmp(q) >= 0 {
		return nil, fmt.Errorf("%w: private key out of range (0, q)", ErrInvalidParameters)
	}

	fixed := opts.Nonce != nil
	if fixed && (opts.Nonce.Sign() <= 0 || opts.Nonce.Cmp(q) >= 0) {
		return nil, fmt.Errorf("%w: nonce out of range (0, q)", ErrInvalidNonce)
	}

	randSrc := opts.Rand
	if randSrc == nil {
		randSrc = rand.Reader
	}

	attempts := opts.MaxRetries
	if attempts <= 0 {
		attempts = defaultSignRetries
	}
	if fixed {
		attempts = 1
	}

	h := HashMessage(message, q)
	qMinusOne := new(big.Int).Sub(q, bigOne)

	for attempt := 0; attempt < attempts; attempt++ {
		var k *big.Int
		if fixed {
			k = new(big.Int).Set(opts.Nonce)
		} else {
			sample, err := rand.Int(randSrc, qMinusOne)
			if err != nil {
				return nil, fmt.Errorf("reading nonce: %w", err)
			}
			k = sample.Add(sample, bigOne) // k in [1, q-1]
		}

		gk, err := ModPow(params.G, k, params.P)
		if err != nil {
			return nil, err
		}
		r := gk.Mod(gk, q)
		if r.Sign() == 0 {
			if fixed {
				return nil, fmt.Errorf("%w: fixed nonce yields r = 0", ErrInvalidNonce)
			}
			continue
		}

		kInv, err := ModInverse(k, q)
		if err != nil {
			return nil, err
		}

		// s = k^-1 * (h + x*r) mod q
		s := new(big.Int).Mul(x, r)
		s.Add(s, h)
		s.Mul(s, kInv)
		s.Mod(s, q)
		if s.Sign() == 0 {
			if fixed {
				return nil, fmt.Errorf("%w: fixed nonce yields s = 0", ErrInvalidNonce)
			}
			continue
		}

		return &SigningResult{
			Signature: Signature{R: r, S: s},
			Digest:    h,
			Nonce:     k,
			NonceInv:  kInv,
		}, nil
	}

	return nil, fmt.Errorf("%w: no usable nonce in %d attempts", ErrGenerationExhausted, attempts)
}
