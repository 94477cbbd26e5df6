// Package weierstrass provides elliptic-curve arithmetic on short-Weierstrass
// curves y² = x³ + ax + b over a prime field, together with ECDSA signatures
// and ECDH key agreement on top of it.
//
// Any curve can be used: build one from its domain parameters with NewCurve,
// or use one of the presets (Secp256k1, P256, P384).
//
//	c := weierstrass.Secp256k1()
//	kp, _ := weierstrass.GenerateKeyPair(c, nil)
//	sig, _ := weierstrass.Sign(c, kp.Private, msg, nil)
//	ok := weierstrass.Verify(c, kp.Public, msg, sig)
//
// Functions taking an ecc.RandomSource use crypto/rand when it is nil.
//
// The arithmetic is variable time. It is meant for education, testing and
// interoperability checks, not for handling long-lived secrets on shared
// hardware.
package weierstrass
