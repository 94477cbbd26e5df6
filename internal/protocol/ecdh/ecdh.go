// Package ecdh derives shared secrets from one party's private scalar and the
// other party's public point.
package ecdh

import (
	"fmt"
	"io"
	"math/big"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/hkdf"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/crypto/digest"
	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// KeySize is the length of a key returned by SharedKey.
const KeySize = 32

// SharedPoint returns priv·pub. A degenerate agreement, where the result is
// the point at infinity, fails with ecc.ErrInvalidKeyAgreement. This covers a
// zero private key, a peer key at infinity, and a peer key in a small
// subgroup.
func SharedPoint(c *curves.Curve, priv *big.Int, pub curves.Point) (curves.Point, error) {
	if priv == nil || priv.Sign() < 0 || priv.Cmp(c.N()) >= 0 {
		return curves.Infinity(), ecc.NewError(ecc.ErrInvalidPrivateKey,
			"ecdh: private key must be in [0, n-1]")
	}
	if !c.IsOnCurve(pub) {
		return curves.Infinity(), ecc.NewError(ecc.ErrPointNotOnCurve,
			"ecdh: peer public key is not on the curve")
	}

	S := c.ScalarMult(priv, pub)
	if S.IsInfinity() {
		return curves.Infinity(), ecc.NewError(ecc.ErrInvalidKeyAgreement,
			"ecdh: shared point is the point at infinity")
	}
	return S, nil
}

// SharedKey returns the SHA-256 digest of the shared point's x-coordinate in
// minimal big-endian form. Both parties arrive at the same key.
func SharedKey(c *curves.Curve, priv *big.Int, pub curves.Point) ([]byte, error) {
	S, err := SharedPoint(c, priv, pub)
	if err != nil {
		return nil, err
	}
	return digest.SHA256.Sum(S.X().Bytes()), nil
}

// ExpandKey stretches secret into size bytes with HKDF-SHA256. Distinct info
// strings give independent keys from one secret.
func ExpandKey(secret, salt, info []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ecdh: invalid key size %d", size)
	}
	out := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256simd.New, secret, salt, info), out); err != nil {
		return nil, fmt.Errorf("ecdh: expanding key: %w", err)
	}
	return out, nil
}
