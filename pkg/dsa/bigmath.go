package dsa

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// ModPow computes base^exponent mod modulus using binary square-and-multiply.
// The base is reduced modulo the modulus first and a zero exponent yields 1.
//
// Args:
//   - base: Base of the exponentiation (any sign).
//   - exponent: Non-negative exponent.
//   - modulus: Modulus, must be positive.
//
// Returns:
//   - base^exponent mod modulus, or an error for a non-positive modulus.
func ModPow(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidParameters)
	}
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: exponent must be non-negative", ErrInvalidParameters)
	}
	if modulus.Cmp(bigOne) == 0 {
		return big.NewInt(0), nil
	}

	b := new(big.Int).Mod(base, modulus)
	result := big.NewInt(1)

	for i := exponent.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, modulus)
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
	}

	return result, nil
}

// ModInverse computes the multiplicative inverse of a modulo m using the
// extended Euclidean algorithm. The result is normalized to [0, m).
//
// Returns ErrNotInvertible when gcd(a, m) != 1; callers must handle that
// case instead of receiving a meaningless value.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidParameters)
	}

	// Remainder sequence (g, r) and the Bezout coefficients of a (x, y).
	g := new(big.Int).Mod(a, m)
	r := new(big.Int).Set(m)
	x := big.NewInt(1)
	y := big.NewInt(0)

	for r.Sign() != 0 {
		q, rem := new(big.Int).DivMod(g, r, new(big.Int))
		g, r = r, rem
		x, y = y, new(big.Int).Sub(x, new(big.Int).Mul(q, y))
	}

	if g.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNotInvertible, a, m, g)
	}

	return x.Mod(x, m), nil
}

// IsPrime runs a Miller-Rabin primality test with the given number of
// independently chosen random witnesses. The false-positive probability is
// bounded by 4^-rounds; a false result is always correct.
func IsPrime(n *big.Int, rounds int) bool {
	if n.Cmp(bigTwo) < 0 {
		return false
	}
	if n.Cmp(bigTwo) == 0 || n.Cmp(bigThree) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	// Write n-1 = 2^r * d with d odd.
	d := new(big.Int).Sub(n, bigOne)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	nMinusOne := new(big.Int).Sub(n, bigOne)
	witnessRange := new(big.Int).Sub(n, bigThree)

	for i := 0; i < rounds; i++ {
		a, err := rand.Int(rand.Reader, witnessRange)
		if err != nil {
			// A witness we failed to draw cannot vouch for n.
			return false
		}
		a.Add(a, bigTwo) // a in [2, n-2]

		x, err := ModPow(a, d, n)
		if err != nil {
			return false
		}
		if x.Cmp(bigOne) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		composite := true
		for j := 0; j < r-1; j++ {
			x.Mul(x, x)
			x.Mod(x, n)
			if x.Cmp(nMinusOne) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}

	return true
}

// GeneratePrime searches for a probable prime of exactly the requested bit
// length by sampling random odd candidates from randSrc and testing each
// with IsPrime. The search is capped at maxAttempts candidates; exhausting
// the cap returns ErrGenerationExhausted rather than falling back to a
// fixed constant.
func GeneratePrime(randSrc io.Reader, bits, rounds, maxAttempts int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: bit length %d is too small for a prime", ErrInvalidParameters, bits)
	}
	if randSrc == nil {
		randSrc = rand.Reader
	}

	// Candidates are drawn as half + [0, half) so the top bit is always set.
	half := new(big.Int).Lsh(bigOne, uint(bits-1))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := rand.Int(randSrc, half)
		if err != nil {
			return nil, fmt.Errorf("reading prime candidate: %w", err)
		}
		candidate.Add(candidate, half)
		candidate.SetBit(candidate, 0, 1)

		if IsPrime(candidate, rounds) {
			return candidate, nil
		}
	}

	return nil, fmt.Errorf("%w: no %d-bit prime in %d attempts", ErrGenerationExhausted, bits, maxAttempts)
}
