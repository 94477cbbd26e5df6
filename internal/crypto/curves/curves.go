package curves

import (
	"crypto/elliptic"
	"math/big"
	"strings"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Built-in curves. These are convenience constructors for well-known domain
// parameters; any other curve is built with New.
var (
	secp256k1Curve = sync.OnceValue(func() *Curve {
		params := secp256k1.S256().Params()
		return mustNew(&Params{
			Name: "secp256k1",
			A:    big.NewInt(0),
			B:    params.B,
			P:    params.P,
			Gx:   params.Gx,
			Gy:   params.Gy,
			N:    params.N,
		})
	})
	p256Curve = sync.OnceValue(func() *Curve { return fromStdlib(elliptic.P256()) })
	p384Curve = sync.OnceValue(func() *Curve { return fromStdlib(elliptic.P384()) })
)

// Secp256k1 returns the secp256k1 curve, using the domain parameters
// published by the decred secp256k1 package.
func Secp256k1() *Curve {
	return secp256k1Curve()
}

// P256 returns NIST P-256.
func P256() *Curve {
	return p256Curve()
}

// P384 returns NIST P-384.
func P384() *Curve {
	return p384Curve()
}

// ByName looks up a built-in curve. Matching ignores case, and the common
// aliases NIST_P256, prime256v1, secp256r1, NIST_P384 and secp384r1 are
// accepted.
func ByName(name string) (*Curve, bool) {
	switch strings.ToLower(name) {
	case "secp256k1":
		return Secp256k1(), true
	case "p-256", "p256", "nist_p256", "prime256v1", "secp256r1":
		return P256(), true
	case "p-384", "p384", "nist_p384", "secp384r1":
		return P384(), true
	}
	return nil, false
}

// Names lists the canonical names of the built-in curves.
func Names() []string {
	return []string{"secp256k1", "P-256", "P-384"}
}

// fromStdlib converts a crypto/elliptic curve, which fixes a = -3.
func fromStdlib(curve elliptic.Curve) *Curve {
	params := curve.Params()
	return mustNew(&Params{
		Name: params.Name,
		A:    new(big.Int).Sub(params.P, three),
		B:    params.B,
		P:    params.P,
		Gx:   params.Gx,
		Gy:   params.Gy,
		N:    params.N,
	})
}

func mustNew(params *Params) *Curve {
	c, err := New(params)
	if err != nil {
		panic(err)
	}
	return c
}
