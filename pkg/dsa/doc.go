// Package dsa implements a toy-sized Digital Signature Algorithm engine:
// domain-parameter generation, key derivation, signing, verification, and a
// nonce-reuse private-key-recovery attack.
//
// The package exists to demonstrate the algebra, including the classic
// failure mode where two signatures sharing a nonce leak the private key.
// Parameter sizes default to values far below anything secure; nothing here
// is timing-safe or side-channel hardened, and nothing should be.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/dsa-nonce/pkg/dsa"
//
//	client := dsa.NewClient()
//
//	params, err := client.GenerateParameters(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	key, err := client.GenerateKeyPair(params)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Sign([]byte("hello"), params, key.X, dsa.SignOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(client.Verify([]byte("hello"), &res.Signature, params, key.Y).Valid)
//
// # Nonce reuse
//
// Signing two distinct messages with the same explicit nonce hands the
// private key to anyone holding both signatures:
//
//	k := big.NewInt(12345)
//	r1, _ := client.Sign([]byte("first"), params, key.X, dsa.SignOptions{Nonce: k})
//	r2, _ := client.Sign([]byte("second"), params, key.X, dsa.SignOptions{Nonce: k})
//
//	rec, err := client.RecoverKey([]byte("first"), &r1.Signature,
//	    []byte("second"), &r2.Signature, params, key.Y)
//	// rec.PrivateKey equals key.X exactly
//
// Signature transcripts can also be read from JSON or CSV files via
// SignatureParser and scanned for reused nonces with
// Client.RecoverKeyFromFile.
package dsa
