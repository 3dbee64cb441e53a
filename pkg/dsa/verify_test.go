package dsa

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyToyVector(t *testing.T) {
	params := toyParams()
	y := big.NewInt(9) // 2^5 mod 23
	x := big.NewInt(5)

	res, err := Sign(testMessages[0], params, x, SignOptions{})
	require.NoError(t, err)

	verdict := Verify(testMessages[0], &res.Signature, params, y)
	require.True(t, verdict.Valid, verdict.Reason)
	require.NotNil(t, verdict.W)
	require.NotNil(t, verdict.U1)
	require.NotNil(t, verdict.U2)
	require.Zero(t, verdict.V.Cmp(verdict.R), "a valid verdict carries v == r")

	// w really is s^-1: s*w mod q == 1.
	sw := new(big.Int).Mul(res.Signature.S, verdict.W)
	sw.Mod(sw, params.Q)
	require.Zero(t, sw.Cmp(bigOne))
}

// verifyTestKey generates parameters large enough that accidental
// v == r collisions in the negative tests are out of the picture.
func verifyTestKey(t *testing.T) (*Parameters, *KeyPair) {
	t.Helper()
	params, err := GenerateParameters(context.Background(), smallGenConfig())
	require.NoError(t, err)
	kp, err := GenerateKeyPair(params, nil)
	require.NoError(t, err)
	return params, kp
}

func TestVerifyWrongMessage(t *testing.T) {
	params, kp := verifyTestKey(t)

	res, err := Sign(testMessages[0], params, kp.X, SignOptions{})
	require.NoError(t, err)

	wrong := Verify(testMessages[1], &res.Signature, params, kp.Y)
	require.False(t, wrong.Valid)
	require.NotZero(t, wrong.V.Cmp(wrong.R))
}

func TestVerifyBitFlip(t *testing.T) {
	params, kp := verifyTestKey(t)

	res, err := Sign(testMessages[3], params, kp.X, SignOptions{})
	require.NoError(t, err)

	for bit := 0; bit < params.Q.BitLen(); bit++ {
		flippedR := &Signature{
			R: new(big.Int).Xor(res.Signature.R, new(big.Int).Lsh(bigOne, uint(bit))),
			S: res.Signature.S,
		}
		require.False(t, Verify(testMessages[3], flippedR, params, kp.Y).Valid,
			"flipping bit %d of r must invalidate", bit)

		flippedS := &Signature{
			R: res.Signature.R,
			S: new(big.Int).Xor(res.Signature.S, new(big.Int).Lsh(bigOne, uint(bit))),
		}
		require.False(t, Verify(testMessages[3], flippedS, params, kp.Y).Valid,
			"flipping bit %d of s must invalidate", bit)
	}
}

func TestVerifyWrongPublicKey(t *testing.T) {
	params, kp := verifyTestKey(t)

	res, err := Sign(testMessages[4], params, kp.X, SignOptions{})
	require.NoError(t, err)

	otherY := new(big.Int).Exp(params.G, new(big.Int).Add(kp.X, bigOne), params.P)
	verdict := Verify(testMessages[4], &res.Signature, params, otherY)
	require.False(t, verdict.Valid)
}

func TestVerifyOutOfRangeSignature(t *testing.T) {
	params := toyParams()
	y := big.NewInt(9)

	cases := []*Signature{
		{R: big.NewInt(0), S: big.NewInt(5)},
		{R: big.NewInt(5), S: big.NewInt(0)},
		{R: big.NewInt(11), S: big.NewInt(5)},
		{R: big.NewInt(5), S: big.NewInt(11)},
		{R: big.NewInt(-1), S: big.NewInt(5)},
		{R: big.NewInt(5), S: nil},
		nil,
	}
	for _, sig := range cases {
		verdict := Verify(testMessages[0], sig, params, y)
		require.False(t, verdict.Valid)
		require.Equal(t, "signature values out of range", verdict.Reason)
		require.Nil(t, verdict.W, "no equations computed past the range check")
	}
}

func TestVerifyMissingInputs(t *testing.T) {
	sig := &Signature{R: big.NewInt(5), S: big.NewInt(5)}

	verdict := Verify(testMessages[0], sig, nil, big.NewInt(9))
	require.False(t, verdict.Valid)
	require.Equal(t, "missing domain parameters", verdict.Reason)

	verdict = Verify(testMessages[0], sig, toyParams(), nil)
	require.False(t, verdict.Valid)
	require.Equal(t, "missing public key", verdict.Reason)
}
