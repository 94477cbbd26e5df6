package curves

import (
	"fmt"
	"math/big"
)

// Point is an element of the curve group: either an affine coordinate pair
// or the point at infinity.
//
// The zero value is the point at infinity. Affine points can only be built
// with NewPoint, so a point never carries a single coordinate. Points are
// immutable values; accessors return copies.
type Point struct {
	x, y   *big.Int
	affine bool
}

// Infinity returns the group identity.
func Infinity() Point {
	return Point{}
}

// NewPoint returns the affine point (x, y). The coordinates are copied; no
// curve membership check is made here (see Curve.IsOnCurve).
func NewPoint(x, y *big.Int) Point {
	return Point{
		x:      new(big.Int).Set(x),
		y:      new(big.Int).Set(y),
		affine: true,
	}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return !p.affine
}

// Coords returns copies of the affine coordinates. ok is false for the
// point at infinity, in which case x and y are nil.
func (p Point) Coords() (x, y *big.Int, ok bool) {
	if !p.affine {
		return nil, nil, false
	}
	return new(big.Int).Set(p.x), new(big.Int).Set(p.y), true
}

// X returns a copy of the x-coordinate, or nil for the point at infinity.
func (p Point) X() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y-coordinate, or nil for the point at infinity.
func (p Point) Y() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal reports whether p and q are the same group element.
func (p Point) Equal(q Point) bool {
	if p.affine != q.affine {
		return false
	}
	if !p.affine {
		return true
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p Point) String() string {
	if !p.affine {
		return "infinity"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}
