package schnorr

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/crypto/digest"
	"github.com/smallyu/go-weierstrass/internal/crypto/rng"
	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// Proof represents a Schnorr proof of knowledge of a discrete logarithm.
// Proves knowledge of d such that Q = d * G.
type Proof struct {
	R curves.Point // Commitment R = k * G
	S *big.Int     // Response s = k + e * d
}

// Prove generates a Schnorr proof for the secret d, public key Q = d*G.
func Prove(c *curves.Curve, d *big.Int, Q curves.Point, src ecc.RandomSource) (*Proof, error) {
	if d == nil {
		return nil, errors.New("schnorr: secret cannot be nil")
	}
	if Q.IsInfinity() || !c.IsOnCurve(Q) {
		return nil, ecc.NewError(ecc.ErrPointNotOnCurve, "schnorr: public key is not a curve point")
	}

	fn := c.ScalarField()

	// 1. Generate random nonce k
	k, err := rng.Scalar(src, c.N())
	if err != nil {
		return nil, fmt.Errorf("schnorr: drawing nonce: %w", err)
	}

	// 2. Compute R = k * G
	R := c.ScalarBaseMult(k)

	// 3. Compute challenge e = H(G, Q, R)
	e := challenge(c, Q, R)

	// 4. Compute s = k + e * d mod n
	s := fn.Add(k, fn.Mul(e, d))

	return &Proof{R: R, S: s}, nil
}

// Verify checks the validity of the Schnorr proof for public key Q.
func (p *Proof) Verify(c *curves.Curve, Q curves.Point) bool {
	if p == nil || p.S == nil {
		return false
	}
	if Q.IsInfinity() || !c.IsOnCurve(Q) || !c.IsOnCurve(p.R) {
		return false
	}

	// Check if s is in [0, n-1]
	if !c.ScalarField().InRange(p.S) {
		return false
	}

	// 1. Compute challenge e = H(G, Q, R)
	e := challenge(c, Q, p.R)

	// 2. Check s*G = R + e*Q
	lhs := c.ScalarBaseMult(p.S)
	rhs := c.Add(p.R, c.ScalarMult(e, Q))
	return lhs.Equal(rhs)
}

// challenge computes H(enc(G) || enc(Q) || enc(R)) mod n with compressed
// SEC1 encodings.
func challenge(c *curves.Curve, Q, R curves.Point) *big.Int {
	h := digest.SHA256.Sum(
		c.MarshalCompressed(c.Generator()),
		c.MarshalCompressed(Q),
		c.MarshalCompressed(R),
	)
	return c.ScalarField().Reduce(new(big.Int).SetBytes(h))
}
