package ecdsanonce

import (
	"bytes"
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// RecoverPrivateKey recovers the private key from two ECDSA signatures that
// reused a nonce, detectable because both carry the same r.
//
//	k = (z1 - z2) * (s1 - s2)^-1 mod n
//	priv = (s1*k - z1) * r^-1 mod n
//
// Returns an error when the r values differ (no reuse to exploit) or the
// signatures are identical (duplicate input).
func RecoverPrivateKey(sig1, sig2 *Signature) (*big.Int, error) {
	n := curveOrder

	if sig1.R.Cmp(sig2.R) != 0 {
		return nil, errors.New("r values differ: nonces were not reused")
	}

	sDiff := new(big.Int).Sub(sig1.S, sig2.S)
	sDiff.Mod(sDiff, n)
	if sDiff.Sign() == 0 {
		return nil, errors.New("s values are equal: signatures are duplicates")
	}

	sDiffInv := new(big.Int).ModInverse(sDiff, n)
	if sDiffInv == nil {
		return nil, errors.New("failed to invert s1 - s2")
	}

	k := new(big.Int).Sub(sig1.Z, sig2.Z)
	k.Mod(k, n)
	k.Mul(k, sDiffInv)
	k.Mod(k, n)

	rInv := new(big.Int).ModInverse(sig1.R, n)
	if rInv == nil {
		return nil, errors.New("failed to invert r")
	}

	priv := new(big.Int).Mul(sig1.S, k)
	priv.Sub(priv, sig1.Z)
	priv.Mod(priv, n)
	priv.Mul(priv, rInv)
	priv.Mod(priv, n)

	return priv, nil
}

// VerifyRecoveredKey reports whether a recovered private key matches the
// given public key in compressed form (33 bytes).
func VerifyRecoveredKey(priv *big.Int, publicKeyBytes []byte) (bool, error) {
	if len(publicKeyBytes) != 33 {
		return false, errors.New("public key must be 33 bytes (compressed format)")
	}
	if priv == nil || priv.Sign() <= 0 || priv.Cmp(curveOrder) >= 0 {
		return false, errors.New("private key out of valid range")
	}

	privBytes := priv.Bytes()
	if len(privBytes) < 32 {
		padded := make([]byte, 32)
		copy(padded[32-len(privBytes):], privBytes)
		privBytes = padded
	}

	pub := secp256k1.PrivKeyFromBytes(privBytes).PubKey().SerializeCompressed()
	return bytes.Equal(pub, publicKeyBytes), nil
}
