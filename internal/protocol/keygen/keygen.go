// Package keygen creates and checks ECDSA/ECDH key pairs.
package keygen

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/crypto/rng"
	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// GenerateKeyPair draws a private key uniformly from [1, n-1] and derives
// the public point. The only failure is an error from src.
func GenerateKeyPair(c *curves.Curve, src ecc.RandomSource) (*KeyPair, error) {
	// 1. Private key d in [1, n-1]
	d, err := rng.Scalar(src, c.N())
	if err != nil {
		return nil, fmt.Errorf("keygen: drawing private key: %w", err)
	}

	// 2. Public key Q = d * G
	return &KeyPair{
		Private: d,
		Public:  c.ScalarBaseMult(d),
	}, nil
}

// NewKeyPair rebuilds a key pair from an existing private scalar.
func NewKeyPair(c *curves.Curve, priv *big.Int) (*KeyPair, error) {
	if err := CheckPrivateKey(c, priv); err != nil {
		return nil, err
	}
	d := new(big.Int).Set(priv)
	return &KeyPair{
		Private: d,
		Public:  c.ScalarBaseMult(d),
	}, nil
}

// CheckPrivateKey returns ecc.ErrInvalidPrivateKey unless priv is in
// [1, n-1].
func CheckPrivateKey(c *curves.Curve, priv *big.Int) error {
	if priv == nil || priv.Sign() <= 0 || priv.Cmp(c.N()) >= 0 {
		return ecc.NewError(ecc.ErrInvalidPrivateKey, "keygen: private key must be in [1, n-1]")
	}
	return nil
}

// CheckPublicKey rejects the point at infinity and points off the curve.
func CheckPublicKey(c *curves.Curve, pub curves.Point) error {
	if pub.IsInfinity() {
		return ecc.NewError(ecc.ErrPointNotOnCurve, "keygen: public key is the point at infinity")
	}
	if !c.IsOnCurve(pub) {
		return ecc.NewError(ecc.ErrPointNotOnCurve, "keygen: public key is not on the curve")
	}
	return nil
}

// Validate checks both halves of the pair and that they belong together.
func (kp *KeyPair) Validate(c *curves.Curve) error {
	if err := CheckPrivateKey(c, kp.Private); err != nil {
		return err
	}
	if err := CheckPublicKey(c, kp.Public); err != nil {
		return err
	}
	if !c.ScalarBaseMult(kp.Private).Equal(kp.Public) {
		return ecc.NewError(ecc.ErrInvalidPrivateKey, "keygen: public key does not match private key")
	}
	return nil
}
