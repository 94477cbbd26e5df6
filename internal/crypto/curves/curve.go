package curves

import (
	"math/big"

	"github.com/smallyu/go-weierstrass/internal/crypto/field"
	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

var (
	three = big.NewInt(3)
	four  = big.NewInt(4)
	v27   = big.NewInt(27)
)

// Curve is a short-Weierstrass curve built from a set of Params.
//
// A Curve is immutable after New returns and is safe for concurrent use.
// Every operation takes its operands by value and returns new values.
type Curve struct {
	params *Params
	fp     *field.Field // arithmetic mod P
	fn     *field.Field // arithmetic mod N
	g      Point
}

// New builds a Curve from params. The parameters are copied and a and b are
// reduced mod p, so callers may write a = -3.
//
// It rejects parameters where p is not prime or is at most 3, N is not
// greater than 1, the curve is singular (4a³ + 27b² ≡ 0), or G is not a
// point on the curve.
func New(params *Params) (*Curve, error) {
	if params == nil || params.missing() {
		return nil, ecc.NewError(ecc.ErrInvalidParams, "curves: missing domain parameter")
	}
	pr := params.Clone()

	fp, err := field.New(pr.P)
	if err != nil {
		return nil, err
	}
	if !fp.IsPrime() || pr.P.Cmp(three) <= 0 {
		return nil, ecc.Errorf(ecc.ErrInvalidParams, "curves: p = %s is not a prime greater than 3", pr.P)
	}
	fn, err := field.New(pr.N)
	if err != nil {
		return nil, err
	}

	pr.A = fp.Reduce(pr.A)
	pr.B = fp.Reduce(pr.B)

	// 4a³ + 27b² != 0 (mod p)
	disc := fp.Add(fp.Mul(four, fp.Mul(pr.A, fp.Square(pr.A))), fp.Mul(v27, fp.Square(pr.B)))
	if disc.Sign() == 0 {
		return nil, ecc.NewError(ecc.ErrInvalidParams, "curves: singular curve")
	}

	c := &Curve{
		params: pr,
		fp:     fp,
		fn:     fn,
		g:      NewPoint(pr.Gx, pr.Gy),
	}
	if !c.IsOnCurve(c.g) {
		return nil, ecc.NewError(ecc.ErrInvalidParams, "curves: generator is not on the curve")
	}
	return c, nil
}

// Params returns a copy of the curve's domain parameters.
func (c *Curve) Params() *Params {
	return c.params.Clone()
}

// Name returns the display name of the curve.
func (c *Curve) Name() string {
	return c.params.Name
}

// P returns a copy of the field modulus.
func (c *Curve) P() *big.Int {
	return c.fp.Modulus()
}

// N returns a copy of the order of the base point.
func (c *Curve) N() *big.Int {
	return c.fn.Modulus()
}

// Generator returns the base point G.
func (c *Curve) Generator() Point {
	return c.g
}

// BaseField returns arithmetic mod P.
func (c *Curve) BaseField() *field.Field {
	return c.fp
}

// ScalarField returns arithmetic mod N.
func (c *Curve) ScalarField() *field.Field {
	return c.fn
}

// ByteLen returns the length in bytes of an encoded field element.
func (c *Curve) ByteLen() int {
	return (c.params.P.BitLen() + 7) / 8
}

// Polynomial returns x³ + ax + b mod p.
func (c *Curve) Polynomial(x *big.Int) *big.Int {
	fp := c.fp
	x3 := fp.Mul(fp.Square(x), x)
	return fp.Add(fp.Add(x3, fp.Mul(c.params.A, x)), c.params.B)
}

// IsOnCurve reports whether pt is the point at infinity or an affine point
// with coordinates in [0, p) satisfying y² = x³ + ax + b (mod p).
func (c *Curve) IsOnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return true
	}
	if !c.fp.InRange(pt.x) || !c.fp.InRange(pt.y) {
		return false
	}
	return c.fp.Square(pt.y).Cmp(c.Polynomial(pt.x)) == 0
}

// Neg returns -pt = (x, -y mod p).
func (c *Curve) Neg(pt Point) Point {
	if pt.IsInfinity() {
		return pt
	}
	return Point{x: c.fp.Reduce(pt.x), y: c.fp.Neg(pt.y), affine: true}
}

// Add returns p1 + p2 under the group law.
func (c *Curve) Add(p1, p2 Point) Point {
	if p1.IsInfinity() {
		return p2
	}
	if p2.IsInfinity() {
		return p1
	}

	fp := c.fp
	x1, y1 := fp.Reduce(p1.x), fp.Reduce(p1.y)
	x2, y2 := fp.Reduce(p2.x), fp.Reduce(p2.y)

	var m *big.Int
	if x1.Cmp(x2) == 0 {
		// Either p2 = -p1, or p1 = p2 with y = 0, which is its own negation.
		if y1.Cmp(y2) != 0 || y1.Sign() == 0 {
			return Infinity()
		}
		// Doubling: m = (3x1² + a) / 2y1
		num := fp.Add(fp.Mul(three, fp.Square(x1)), c.params.A)
		m = fp.Mul(num, c.inverse(fp.Add(y1, y1)))
	} else {
		// m = (y2 - y1) / (x2 - x1)
		m = fp.Mul(fp.Sub(y2, y1), c.inverse(fp.Sub(x2, x1)))
	}

	x3 := fp.Sub(fp.Sub(fp.Square(m), x1), x2)
	y3 := fp.Sub(fp.Mul(m, fp.Sub(x1, x3)), y1)
	return Point{x: x3, y: y3, affine: true}
}

// Double returns 2·pt.
func (c *Curve) Double(pt Point) Point {
	return c.Add(pt, pt)
}

// ScalarMult returns k·pt using double-and-add over the bits of k, least
// significant first. Branches depend only on the bits of k, never on the
// coordinates of pt; the arithmetic itself is not constant time.
//
// A nil or zero k yields the point at infinity. A negative k multiplies the
// negated point.
func (c *Curve) ScalarMult(k *big.Int, pt Point) Point {
	if k == nil {
		return Infinity()
	}
	if k.Sign() < 0 {
		return c.ScalarMult(new(big.Int).Neg(k), c.Neg(pt))
	}

	result := Infinity()
	addend := pt
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = c.Add(result, addend)
		}
		addend = c.Double(addend)
	}
	return result
}

// ScalarBaseMult returns k·G.
func (c *Curve) ScalarBaseMult(k *big.Int) Point {
	return c.ScalarMult(k, c.g)
}

// inverse returns v⁻¹ mod p. Add only calls it with v ≢ 0 and New has
// established that p is prime, so a failure means the Curve was not built
// by New.
func (c *Curve) inverse(v *big.Int) *big.Int {
	inv, err := c.fp.Inverse(v)
	if err != nil {
		panic("curves: " + err.Error())
	}
	return inv
}
