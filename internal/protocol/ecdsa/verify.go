package ecdsa

import (
	"math/big"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/protocol/keygen"
)

// Verify reports whether sig is a valid signature of msg under pub.
// Malformed input of any kind yields false, never an error.
func Verify(c *curves.Curve, pub curves.Point, msg []byte, sig *Signature) bool {
	return VerifyDigest(c, pub, HashMessage(msg), sig)
}

// VerifyDigest is Verify for a message already hashed to the integer z.
func VerifyDigest(c *curves.Curve, pub curves.Point, z *big.Int, sig *Signature) bool {
	if sig == nil || sig.R == nil || sig.S == nil || z == nil {
		return false
	}
	n := c.N()

	// 1. r, s in [1, n-1]
	if !inScalarRange(sig.R, n) || !inScalarRange(sig.S, n) {
		return false
	}
	if keygen.CheckPublicKey(c, pub) != nil {
		return false
	}

	// 2. w = s^-1, u1 = z*w, u2 = r*w (mod n)
	fn := c.ScalarField()
	w, err := fn.Inverse(sig.S)
	if err != nil {
		return false
	}
	u1 := fn.Mul(z, w)
	u2 := fn.Mul(sig.R, w)

	// 3. X = u1*G + u2*Q
	X := c.Add(c.ScalarBaseMult(u1), c.ScalarMult(u2, pub))
	if X.IsInfinity() {
		return false
	}

	// 4. valid iff x(X) mod n == r
	return fn.Reduce(X.X()).Cmp(sig.R) == 0
}

func inScalarRange(v, n *big.Int) bool {
	return v.Sign() > 0 && v.Cmp(n) < 0
}
