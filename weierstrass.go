package weierstrass

import (
	"math/big"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/crypto/rng"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdh"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdsa"
	"github.com/smallyu/go-weierstrass/internal/protocol/keygen"
	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

type (
	// Curve is a validated short-Weierstrass curve.
	Curve = curves.Curve
	// Params are the domain parameters a, b, p, G and n.
	Params = curves.Params
	// Point is an affine point or the point at infinity.
	Point = curves.Point
	// KeyPair is a private scalar and its public point.
	KeyPair = keygen.KeyPair
	// Signature is an ECDSA (r, s) pair.
	Signature = ecdsa.Signature
)

// NewCurve validates params and builds a curve.
func NewCurve(params *Params) (*Curve, error) { return curves.New(params) }

// Secp256k1 returns the secp256k1 curve.
func Secp256k1() *Curve { return curves.Secp256k1() }

// P256 returns NIST P-256.
func P256() *Curve { return curves.P256() }

// P384 returns NIST P-384.
func P384() *Curve { return curves.P384() }

// Infinity returns the point at infinity.
func Infinity() Point { return curves.Infinity() }

// NewPoint returns the affine point (x, y). It is not checked against any
// curve.
func NewPoint(x, y *big.Int) Point { return curves.NewPoint(x, y) }

// IsOnCurve reports whether pt is the point at infinity or satisfies the
// curve equation.
func IsOnCurve(c *Curve, pt Point) bool { return c.IsOnCurve(pt) }

// Add returns p1 + p2.
func Add(c *Curve, p1, p2 Point) Point { return c.Add(p1, p2) }

// ScalarMult returns k·pt.
func ScalarMult(c *Curve, k *big.Int, pt Point) Point { return c.ScalarMult(k, pt) }

// GenerateKeyPair draws a private key in [1, n-1] and derives its public
// point.
func GenerateKeyPair(c *Curve, src ecc.RandomSource) (*KeyPair, error) {
	return keygen.GenerateKeyPair(c, source(src))
}

// Sign returns an ECDSA signature of the SHA-256 digest of msg.
func Sign(c *Curve, priv *big.Int, msg []byte, src ecc.RandomSource) (*Signature, error) {
	return ecdsa.Sign(c, priv, msg, source(src))
}

// Verify reports whether sig is a valid signature of msg under pub.
func Verify(c *Curve, pub Point, msg []byte, sig *Signature) bool {
	return ecdsa.Verify(c, pub, msg, sig)
}

// SharedPoint returns priv·pub, failing with ecc.ErrInvalidKeyAgreement when
// that is the point at infinity.
func SharedPoint(c *Curve, priv *big.Int, pub Point) (Point, error) {
	return ecdh.SharedPoint(c, priv, pub)
}

// SharedKey returns SHA-256 of the shared point's x-coordinate.
func SharedKey(c *Curve, priv *big.Int, pub Point) ([]byte, error) {
	return ecdh.SharedKey(c, priv, pub)
}

func source(src ecc.RandomSource) ecc.RandomSource {
	if src == nil {
		return rng.Default()
	}
	return src
}
