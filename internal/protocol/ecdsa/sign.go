// Package ecdsa implements ECDSA signing and verification over any curve
// built by the curves package.
package ecdsa

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/crypto/digest"
	"github.com/smallyu/go-weierstrass/internal/crypto/rng"
	"github.com/smallyu/go-weierstrass/internal/protocol/keygen"
	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// MaxSignAttempts bounds the nonce rejection loop. A nonce is rejected only
// when r or s comes out as zero, which for a sound random source on a real
// curve does not happen in practice; hitting the bound means the source is
// broken.
const MaxSignAttempts = 64

// HashMessage returns the SHA-256 digest of msg as a big-endian integer.
// The full 256-bit value is used; it is reduced mod n by the arithmetic.
func HashMessage(msg []byte) *big.Int {
	return digest.SHA256.Int(msg)
}

// Sign signs msg with priv, drawing nonces from src.
func Sign(c *curves.Curve, priv *big.Int, msg []byte, src ecc.RandomSource) (*Signature, error) {
	return SignDigest(c, priv, HashMessage(msg), src)
}

// SignDigest signs a message that has already been hashed to the integer z.
func SignDigest(c *curves.Curve, priv, z *big.Int, src ecc.RandomSource) (*Signature, error) {
	if err := keygen.CheckPrivateKey(c, priv); err != nil {
		return nil, err
	}
	if z == nil {
		return nil, ecc.NewError(ecc.ErrInvalidEncoding, "ecdsa: missing message digest")
	}
	fn := c.ScalarField()
	n := c.N()

	for attempt := 0; attempt < MaxSignAttempts; attempt++ {
		// 1. Nonce k in [1, n-1]
		k, err := rng.Scalar(src, n)
		if err != nil {
			return nil, fmt.Errorf("ecdsa: drawing nonce: %w", err)
		}

		// 2. r = x(k * G) mod n
		R := c.ScalarBaseMult(k)
		if R.IsInfinity() {
			// Only possible when N is not the order of G.
			continue
		}
		r := fn.Reduce(R.X())
		if r.Sign() == 0 {
			continue
		}

		// 3. s = k^-1 * (z + r * d) mod n
		kInv, err := fn.Inverse(k)
		if err != nil {
			return nil, err
		}
		s := fn.Mul(kInv, fn.Add(z, fn.Mul(r, priv)))
		if s.Sign() == 0 {
			continue
		}

		return &Signature{R: r, S: s}, nil
	}

	return nil, ecc.Errorf(ecc.ErrRandomSourceExhausted,
		"ecdsa: no usable nonce after %d attempts", MaxSignAttempts)
}
