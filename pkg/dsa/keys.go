package dsa

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
)

// KeyPair is a DSA key pair under some domain parameters: a private key x
// in (0, q) and the public key y = g^x mod p.
type KeyPair struct {
	X *big.Int // Private key
	Y *big.Int // Public key
}

// GenerateKeyPair samples a private key uniformly from [1, q-1] and derives
// the matching public key. Pure function of the parameters and the
// randomness source; no retries are needed.
func GenerateKeyPair(params *Parameters, randSrc io.Reader) (*KeyPair, error) {
	if params == nil || params.P == nil || params.Q == nil || params.G == nil {
		return nil, fmt.Errorf("%w: missing p, q or g", ErrInvalidParameters)
	}
	if params.Q.Cmp(bigTwo) <= 0 {
		return nil, fmt.Errorf("%w: q must be greater than 2", ErrInvalidParameters)
	}
	if randSrc == nil {
		randSrc = rand.Reader
	}

	qMinusOne := new(big.Int).Sub(params.Q, bigOne)
	x, err := rand.Int(randSrc, qMinusOne)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	x.Add(x, bigOne) // x in [1, q-1]

	y, err := ModPow(params.G, x, params.P)
	if err != nil {
		return nil, err
	}

	return &KeyPair{X: x, Y: y}, nil
}

type keyPairJSON struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// MarshalJSON encodes the key pair as decimal strings.
func (kp *KeyPair) MarshalJSON() ([]byte, error) {
	if kp.X == nil || kp.Y == nil {
		return nil, fmt.Errorf("%w: missing x or y", ErrInvalidParameters)
	}
	return json.Marshal(keyPairJSON{X: kp.X.String(), Y: kp.Y.String()})
}

// UnmarshalJSON decodes decimal or 0x-hex strings.
func (kp *KeyPair) UnmarshalJSON(data []byte) error {
	var raw keyPairJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if kp.X, err = ParseBigInt(raw.X); err != nil {
		return fmt.Errorf("parsing x: %w", err)
	}
	if kp.Y, err = ParseBigInt(raw.Y); err != nil {
		return fmt.Errorf("parsing y: %w", err)
	}
	return nil
}
