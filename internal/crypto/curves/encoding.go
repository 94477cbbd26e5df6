package curves

import (
	"math/big"

	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// SEC 1 point encoding prefixes.
const (
	prefixInfinity     = 0x00
	prefixCompressedEv = 0x02
	prefixCompressedOd = 0x03
	prefixUncompressed = 0x04
)

// Marshal encodes pt in SEC 1 uncompressed form, 04 || X || Y. The point at
// infinity is encoded as the single byte 00.
func (c *Curve) Marshal(pt Point) []byte {
	if pt.IsInfinity() {
		return []byte{prefixInfinity}
	}
	byteLen := c.ByteLen()
	out := make([]byte, 1+2*byteLen)
	out[0] = prefixUncompressed
	c.fp.Reduce(pt.x).FillBytes(out[1 : 1+byteLen])
	c.fp.Reduce(pt.y).FillBytes(out[1+byteLen:])
	return out
}

// MarshalCompressed encodes pt in SEC 1 compressed form, 02/03 || X, where
// the prefix carries the parity of Y.
func (c *Curve) MarshalCompressed(pt Point) []byte {
	if pt.IsInfinity() {
		return []byte{prefixInfinity}
	}
	byteLen := c.ByteLen()
	out := make([]byte, 1+byteLen)
	out[0] = prefixCompressedEv | byte(c.fp.Reduce(pt.y).Bit(0))
	c.fp.Reduce(pt.x).FillBytes(out[1:])
	return out
}

// Unmarshal decodes a point produced by Marshal or MarshalCompressed.
// Decoded affine points are checked to lie on the curve.
func (c *Curve) Unmarshal(data []byte) (Point, error) {
	byteLen := c.ByteLen()

	switch {
	case len(data) == 1 && data[0] == prefixInfinity:
		return Infinity(), nil

	case len(data) == 1+2*byteLen && data[0] == prefixUncompressed:
		x := new(big.Int).SetBytes(data[1 : 1+byteLen])
		y := new(big.Int).SetBytes(data[1+byteLen:])
		pt := Point{x: x, y: y, affine: true}
		if !c.IsOnCurve(pt) {
			return Point{}, ecc.NewError(ecc.ErrPointNotOnCurve, "curves: decoded point is not on the curve")
		}
		return pt, nil

	case len(data) == 1+byteLen && (data[0] == prefixCompressedEv || data[0] == prefixCompressedOd):
		x := new(big.Int).SetBytes(data[1:])
		if !c.fp.InRange(x) {
			return Point{}, ecc.NewError(ecc.ErrPointNotOnCurve, "curves: x-coordinate out of range")
		}
		y := new(big.Int).ModSqrt(c.Polynomial(x), c.params.P)
		if y == nil {
			return Point{}, ecc.NewError(ecc.ErrPointNotOnCurve, "curves: x-coordinate has no matching y")
		}
		wantOdd := uint(data[0] & 1)
		if y.Bit(0) != wantOdd {
			if y.Sign() == 0 {
				return Point{}, ecc.NewError(ecc.ErrInvalidEncoding, "curves: odd prefix for y = 0")
			}
			y = c.fp.Neg(y)
		}
		return Point{x: x, y: y, affine: true}, nil

	default:
		return Point{}, ecc.Errorf(ecc.ErrInvalidEncoding, "curves: invalid point encoding of length %d", len(data))
	}
}
