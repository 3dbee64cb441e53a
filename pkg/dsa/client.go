package dsa

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"go.uber.org/zap"
)

// Client provides a high-level API over the DSA core: parameter and key
// generation, signing, verification and nonce-reuse recovery.
type Client struct {
	cfg     GenConfig
	parser  SignatureParser
	randSrc io.Reader
	log     *zap.Logger
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		cfg:     DefaultGenConfig(),
		parser:  &JSONParser{},
		randSrc: rand.Reader,
		log:     zap.NewNop(),
	}
}

// WithGenConfig sets the parameter-generation configuration.
func (c *Client) WithGenConfig(cfg GenConfig) *Client {
	c.cfg = cfg
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithRand sets the randomness source for every sampling operation,
// including parameter generation.
func (c *Client) WithRand(randSrc io.Reader) *Client {
	c.randSrc = randSrc
	c.cfg.Rand = randSrc
	return c
}

// WithLogger sets the progress logger (zap.NewNop by default).
func (c *Client) WithLogger(log *zap.Logger) *Client {
	c.log = log
	return c
}

// GenerateParameters produces a fresh domain-parameter triple.
func (c *Client) GenerateParameters(ctx context.Context) (*Parameters, error) {
	cfg := c.cfg
	if cfg.Rand == nil {
		cfg.Rand = c.randSrc
	}

	c.log.Debug("generating domain parameters",
		zap.Int("qbits", cfg.QBits),
		zap.Int("pbits", cfg.PBits),
		zap.Int("mr_rounds", cfg.MRRounds))

	params, err := GenerateParameters(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c.log.Debug("domain parameters generated",
		zap.String("p", params.P.String()),
		zap.String("q", params.Q.String()),
		zap.String("g", params.G.String()))
	return params, nil
}

// GenerateKeyPair derives a fresh key pair under the given parameters.
func (c *Client) GenerateKeyPair(params *Parameters) (*KeyPair, error) {
	kp, err := GenerateKeyPair(params, c.randSrc)
	if err != nil {
		return nil, err
	}
	c.log.Debug("key pair generated", zap.String("y", kp.Y.String()))
	return kp, nil
}

// Sign signs a message with the client's randomness source unless the
// options fix a nonce or supply their own source.
func (c *Client) Sign(message []byte, params *Parameters, x *big.Int, opts SignOptions) (*SigningResult, error) {
	if opts.Rand == nil {
		opts.Rand = c.randSrc
	}
	return Sign(message, params, x, opts)
}

// Verify checks a signature. It never errors; see VerificationResult.
func (c *Client) Verify(message []byte, sig *Signature, params *Parameters, y *big.Int) *VerificationResult {
	return Verify(message, sig, params, y)
}

// RecoverKey runs the nonce-reuse attack on two signed messages. When a
// public key is supplied the recovered key is checked against it and the
// result's Verified flag is set.
func (c *Client) RecoverKey(msg1 []byte, sig1 *Signature, msg2 []byte, sig2 *Signature, params *Parameters, y *big.Int) (*RecoveryResult, error) {
	result, err := RecoverPrivateKey(msg1, sig1, msg2, sig2, params)
	if err != nil {
		return nil, err
	}
	return c.verifyResult(result, params, y)
}

// RecoverKeyFromFile parses a signature transcript from disk and scans every
// pair of records for equal r values, running the recovery on each candidate
// pair. When a public key is supplied, only a pair whose recovered key
// matches it is accepted.
func (c *Client) RecoverKeyFromFile(ctx context.Context, source string, params *Parameters, y *big.Int) (*RecoveryResult, error) {
	records, err := c.parser.ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("need at least 2 signatures, got %d", len(records))
	}
	if err := checkRecoveryParams(params); err != nil {
		return nil, err
	}

	c.log.Debug("scanning for reused nonces", zap.Int("records", len(records)))

	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			if records[i].R == nil || records[j].R == nil || records[i].R.Cmp(records[j].R) != 0 {
				continue
			}

			c.log.Debug("candidate pair found", zap.Int("i", i), zap.Int("j", j))

			result, err := RecoverFromRecords(records[i], records[j], params)
			if err != nil {
				continue
			}
			result, err = c.verifyResult(result, params, y)
			if err != nil {
				continue
			}
			if y != nil && !result.Verified {
				continue
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("%w: no reused-nonce pair in %d records", ErrNotRecoverable, len(records))
}

func (c *Client) verifyResult(result *RecoveryResult, params *Parameters, y *big.Int) (*RecoveryResult, error) {
	if y == nil {
		return result, nil
	}
	verified, err := VerifyRecoveredKey(result.PrivateKey, params, y)
	if err != nil {
		return nil, err
	}
	result.Verified = verified
	return result, nil
}
