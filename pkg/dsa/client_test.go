package dsa

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestClientEndToEnd(t *testing.T) {
	ctx := context.Background()
	client := NewClient().
		WithGenConfig(smallGenConfig()).
		WithLogger(zaptest.NewLogger(t))

	params, err := client.GenerateParameters(ctx)
	require.NoError(t, err)
	require.NoError(t, params.Validate())

	kp, err := client.GenerateKeyPair(params)
	require.NoError(t, err)

	res, err := client.Sign(testMessages[0], params, kp.X, SignOptions{})
	require.NoError(t, err)

	verdict := client.Verify(testMessages[0], &res.Signature, params, kp.Y)
	require.True(t, verdict.Valid, verdict.Reason)

	// Reuse a nonce deliberately and take the key back.
	k := big.NewInt(424242)
	sig1, err := client.Sign(testMessages[1], params, kp.X, SignOptions{Nonce: k})
	require.NoError(t, err)
	sig2, err := client.Sign(testMessages[2], params, kp.X, SignOptions{Nonce: k})
	require.NoError(t, err)

	rec, err := client.RecoverKey(testMessages[1], &sig1.Signature, testMessages[2], &sig2.Signature, params, kp.Y)
	require.NoError(t, err)
	require.Zero(t, rec.PrivateKey.Cmp(kp.X))
	require.True(t, rec.Verified)
}

func TestClientRecoverKeyFromFileJSON(t *testing.T) {
	client := NewClient()

	rec, err := client.RecoverKeyFromFile(context.Background(),
		"../../fixtures/signatures_reused_nonce.json", toyParams(), big.NewInt(9))
	require.NoError(t, err)
	require.EqualValues(t, 5, rec.PrivateKey.Int64())
	require.EqualValues(t, 3, rec.Nonce.Int64())
	require.True(t, rec.Verified)
}

func TestClientRecoverKeyFromFileCSV(t *testing.T) {
	client := NewClient().WithParser(&CSVParser{})

	rec, err := client.RecoverKeyFromFile(context.Background(),
		"../../fixtures/signatures_reused_nonce.csv", toyParams(), nil)
	require.NoError(t, err)
	require.EqualValues(t, 5, rec.PrivateKey.Int64())
	require.False(t, rec.Verified, "no public key was supplied")
}

func TestClientRecoverKeyFromFileNoPair(t *testing.T) {
	path := writeTempFile(t, "sigs.json",
		`[{"z": "1", "r": "8", "s": "10"}, {"z": "7", "r": "5", "s": "8"}]`)

	_, err := NewClient().RecoverKeyFromFile(context.Background(), path, toyParams(), nil)
	require.ErrorIs(t, err, ErrNotRecoverable)
}

func TestClientRecoverKeyFromFileTooFewRecords(t *testing.T) {
	path := writeTempFile(t, "sigs.json", `[{"z": "1", "r": "8", "s": "10"}]`)

	_, err := NewClient().RecoverKeyFromFile(context.Background(), path, toyParams(), nil)
	require.Error(t, err)
}

func TestClientRecoverKeyFromFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().RecoverKeyFromFile(ctx,
		"../../fixtures/signatures_reused_nonce.json", toyParams(), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClientGenerateParametersUsesClientRand(t *testing.T) {
	// A source that fails every Read can only surface as an error if
	// parameter generation actually consults it.
	_, err := NewClient().
		WithRand(brokenReader{}).
		GenerateParameters(context.Background())
	require.Error(t, err)

	// Same when a generation config without its own source is layered on
	// after the rand source.
	cfg := smallGenConfig()
	cfg.Rand = nil
	_, err = NewClient().
		WithRand(brokenReader{}).
		WithGenConfig(cfg).
		GenerateParameters(context.Background())
	require.Error(t, err)
}

func TestClientSignUsesClientRand(t *testing.T) {
	// A client pinned to a constant randomness source signs
	// deterministically, which is exactly what a rigged source is for.
	client := NewClient().WithRand(constReader{b: 0x02})
	params := toyParams()

	msg, _ := toyReusableMessages(t)
	first, err := client.Sign(msg, params, big.NewInt(5), SignOptions{})
	require.NoError(t, err)
	second, err := client.Sign(msg, params, big.NewInt(5), SignOptions{})
	require.NoError(t, err)
	require.Zero(t, first.Signature.S.Cmp(second.Signature.S))
	require.EqualValues(t, 3, first.Nonce.Int64())
}
