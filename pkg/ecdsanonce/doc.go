// Package ecdsanonce demonstrates the reused-nonce key-recovery attack on
// secp256k1 ECDSA: the same algebra the dsa package applies to classic DSA,
// run against a real curve.
//
// Two signatures produced under one key with the same nonce k share their
// r component; from (z1, s1) and (z2, s2) the attacker computes
//
//	k = (z1 - z2) * (s1 - s2)^-1 mod n
//	priv = (s1*k - z1) * r^-1 mod n
//
// Sign exists so a vulnerable transcript can be built deliberately; it
// accepts the nonce as an argument, which is the entire point and the
// entire problem.
package ecdsanonce
