package dsa

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
)

// Parameters is a DSA domain-parameter triple shared by every key derived
// under it: p and q prime, q divides p-1, and g generates the order-q
// subgroup of the multiplicative group mod p.
type Parameters struct {
	P *big.Int // Prime modulus
	Q *big.Int // Prime divisor of p-1
	G *big.Int // Generator of the order-q subgroup mod p
}

// validateRounds is the Miller-Rabin round count used by Validate.
const validateRounds = 20

// Validate checks the relational invariants of the triple. Primality and
// the order of G are only ever established probabilistically, with error
// bounded by the Miller-Rabin false-positive rate.
func (p *Parameters) Validate() error {
	if p == nil || p.P == nil || p.Q == nil || p.G == nil {
		return fmt.Errorf("%w: missing p, q or g", ErrInvalidParameters)
	}
	if p.Q.Cmp(bigTwo) <= 0 {
		return fmt.Errorf("%w: q must be greater than 2", ErrInvalidParameters)
	}
	if !IsPrime(p.Q, validateRounds) {
		return fmt.Errorf("%w: q is not prime", ErrInvalidParameters)
	}
	if !IsPrime(p.P, validateRounds) {
		return fmt.Errorf("%w: p is not prime", ErrInvalidParameters)
	}

	pMinusOne := new(big.Int).Sub(p.P, bigOne)
	if new(big.Int).Mod(pMinusOne, p.Q).Sign() != 0 {
		return fmt.Errorf("%w: q does not divide p-1", ErrInvalidParameters)
	}

	if p.G.Cmp(bigOne) <= 0 || p.G.Cmp(p.P) >= 0 {
		return fmt.Errorf("%w: g must lie in (1, p)", ErrInvalidParameters)
	}
	gq, err := ModPow(p.G, p.Q, p.P)
	if err != nil {
		return err
	}
	if gq.Cmp(bigOne) != 0 {
		return fmt.Errorf("%w: g does not have order q", ErrInvalidParameters)
	}

	return nil
}

// parametersJSON is the decimal-string wire form of Parameters.
type parametersJSON struct {
	P string `json:"p"`
	Q string `json:"q"`
	G string `json:"g"`
}

// MarshalJSON encodes the parameters as decimal strings so arbitrary sizes
// survive JSON round-trips.
func (p *Parameters) MarshalJSON() ([]byte, error) {
	if p.P == nil || p.Q == nil || p.G == nil {
		return nil, fmt.Errorf("%w: missing p, q or g", ErrInvalidParameters)
	}
	return json.Marshal(parametersJSON{
		P: p.P.String(),
		Q: p.Q.String(),
		G: p.G.String(),
	})
}

// UnmarshalJSON decodes decimal or 0x-hex strings, rejecting negative or
// malformed values before they reach the arithmetic layer.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	var raw parametersJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if p.P, err = ParseBigInt(raw.P); err != nil {
		return fmt.Errorf("parsing p: %w", err)
	}
	if p.Q, err = ParseBigInt(raw.Q); err != nil {
		return fmt.Errorf("parsing q: %w", err)
	}
	if p.G, err = ParseBigInt(raw.G); err != nil {
		return fmt.Errorf("parsing g: %w", err)
	}
	return nil
}

// GenConfig configures domain-parameter generation.
type GenConfig struct {
	// QBits is the bit length of the prime q.
	QBits int

	// PBits is the target bit length of the prime p.
	PBits int

	// MRRounds is the Miller-Rabin round count per primality test.
	MRRounds int

	// MaxAttempts caps each of the three candidate searches (q, p, g).
	MaxAttempts int

	// Rand is the randomness source (defaults to crypto/rand).
	Rand io.Reader
}

// DefaultGenConfig returns the toy-sized defaults. The sizes are deliberate:
// the point of the module is demonstrating the algebra, not resisting
// discrete-log attacks.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		QBits:       32,
		PBits:       64,
		MRRounds:    20,
		MaxAttempts: 4096,
		Rand:        rand.Reader,
	}
}

func (cfg GenConfig) withDefaults() GenConfig {
	def := DefaultGenConfig()
	if cfg.QBits == 0 {
		cfg.QBits = def.QBits
	}
	if cfg.PBits == 0 {
		cfg.PBits = def.PBits
	}
	if cfg.MRRounds == 0 {
		cfg.MRRounds = def.MRRounds
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.Rand == nil {
		cfg.Rand = def.Rand
	}
	return cfg
}

// GenerateParameters produces a fresh (p, q, g) triple:
//
//  1. Generate a prime q of cfg.QBits bits.
//  2. Search for a prime p = k*q + 1 over random multipliers k sized so p
//     lands near cfg.PBits bits.
//  3. Pick random h in [2, p-2] and set g = h^((p-1)/q) mod p, retrying
//     while g = 1.
//
// Every search is capped at cfg.MaxAttempts and surfaces
// ErrGenerationExhausted on exhaustion. The context is checked inside the
// loops so a host can cancel long generations cooperatively.
func GenerateParameters(ctx context.Context, cfg GenConfig) (*Parameters, error) {
	cfg = cfg.withDefaults()
	if cfg.PBits < cfg.QBits+2 {
		return nil, fmt.Errorf("%w: p must be at least 2 bits longer than q", ErrInvalidParameters)
	}

	q, err := GeneratePrime(cfg.Rand, cfg.QBits, cfg.MRRounds, cfg.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("generating q: %w", err)
	}

	p, err := searchModulus(ctx, cfg, q)
	if err != nil {
		return nil, err
	}

	g, err := searchGenerator(ctx, cfg, p, q)
	if err != nil {
		return nil, err
	}

	return &Parameters{P: p, Q: q, G: g}, nil
}

// searchModulus looks for a prime p = k*q + 1 with k random of the width
// that brings p to cfg.PBits bits. Odd multipliers are snapped down to even
// ones; an odd k makes p even and the attempt would always be wasted.
func searchModulus(ctx context.Context, cfg GenConfig, q *big.Int) (*big.Int, error) {
	kBits := cfg.PBits - cfg.QBits
	kHalf := new(big.Int).Lsh(bigOne, uint(kBits-1))

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		k, err := rand.Int(cfg.Rand, kHalf)
		if err != nil {
			return nil, fmt.Errorf("reading multiplier candidate: %w", err)
		}
		k.Add(k, kHalf)
		k.SetBit(k, 0, 0)

		p := new(big.Int).Mul(k, q)
		p.Add(p, bigOne)

		if IsPrime(p, cfg.MRRounds) {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: no prime p = k*q+1 in %d attempts", ErrGenerationExhausted, cfg.MaxAttempts)
}

// searchGenerator picks h in [2, p-2] and returns g = h^((p-1)/q) mod p,
// retrying while g = 1 so the result generates a nontrivial subgroup.
func searchGenerator(ctx context.Context, cfg GenConfig, p, q *big.Int) (*big.Int, error) {
	exp := new(big.Int).Sub(p, bigOne)
	exp.Div(exp, q)

	hRange := new(big.Int).Sub(p, bigThree) // |[2, p-2]|

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		h, err := rand.Int(cfg.Rand, hRange)
		if err != nil {
			return nil, fmt.Errorf("reading generator candidate: %w", err)
		}
		h.Add(h, bigTwo)

		g, err := ModPow(h, exp, p)
		if err != nil {
			return nil, err
		}
		if g.Cmp(bigOne) != 0 {
			return g, nil
		}
	}

	return nil, fmt.Errorf("%w: no generator in %d attempts", ErrGenerationExhausted, cfg.MaxAttempts)
}
