package curves

import (
	"math/big"

	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// Params holds the domain parameters of a short-Weierstrass curve
// y² = x³ + a·x + b over GF(p) with base point G of order N.
type Params struct {
	Name   string   // optional, for display only
	A, B   *big.Int // curve coefficients
	P      *big.Int // prime modulus of the underlying field
	Gx, Gy *big.Int // base point (generator)
	N      *big.Int // order of the base point
}

// Clone returns a deep copy of the parameters.
func (p *Params) Clone() *Params {
	return &Params{
		Name: p.Name,
		A:    cloneInt(p.A),
		B:    cloneInt(p.B),
		P:    cloneInt(p.P),
		Gx:   cloneInt(p.Gx),
		Gy:   cloneInt(p.Gy),
		N:    cloneInt(p.N),
	}
}

// Validate performs the checks done by New and additionally confirms that
// N·G is the point at infinity. It does not compare the parameters against
// any published standard.
func (p *Params) Validate() error {
	c, err := New(p)
	if err != nil {
		return err
	}
	if !c.ScalarBaseMult(c.params.N).IsInfinity() {
		return ecc.NewError(ecc.ErrInvalidParams, "curves: N·G is not the point at infinity")
	}
	return nil
}

func (p *Params) missing() bool {
	return p.A == nil || p.B == nil || p.P == nil || p.Gx == nil || p.Gy == nil || p.N == nil
}

func cloneInt(x *big.Int) *big.Int {
	if x == nil {
		return nil
	}
	return new(big.Int).Set(x)
}
