// Package field implements arithmetic modulo an arbitrary-precision integer.
//
// Every operation allocates and returns a fresh value in [0, m-1], so a Field
// may be shared freely between goroutines.
package field

import (
	"math/big"

	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// primalityRounds is the number of Miller-Rabin rounds used when deciding
// whether an inverse can be computed with Fermat's little theorem.
const primalityRounds = 20

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Field holds a modulus together with facts precomputed about it.
type Field struct {
	m      *big.Int
	mMinus *big.Int // m - 2, the Fermat exponent
	prime  bool
}

// New returns a Field for the given modulus, which must be greater than 1.
func New(modulus *big.Int) (*Field, error) {
	if modulus == nil || modulus.Cmp(one) <= 0 {
		return nil, ecc.NewError(ecc.ErrInvalidParams, "field: modulus must be greater than 1")
	}
	m := new(big.Int).Set(modulus)
	return &Field{
		m:      m,
		mMinus: new(big.Int).Sub(m, two),
		prime:  m.ProbablyPrime(primalityRounds),
	}, nil
}

// Modulus returns a copy of the modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.m)
}

// IsPrime reports whether the modulus passed the primality test.
func (f *Field) IsPrime() bool {
	return f.prime
}

// Reduce returns x mod m in [0, m-1], also for negative x.
func (f *Field) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, f.m)
}

// InRange reports whether 0 <= x < m.
func (f *Field) InRange(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(f.m) < 0
}

// Add returns x + y mod m.
func (f *Field) Add(x, y *big.Int) *big.Int {
	r := new(big.Int).Add(x, y)
	return r.Mod(r, f.m)
}

// Sub returns x - y mod m.
func (f *Field) Sub(x, y *big.Int) *big.Int {
	r := new(big.Int).Sub(x, y)
	return r.Mod(r, f.m)
}

// Mul returns x * y mod m.
func (f *Field) Mul(x, y *big.Int) *big.Int {
	r := new(big.Int).Mul(x, y)
	return r.Mod(r, f.m)
}

// Square returns x² mod m.
func (f *Field) Square(x *big.Int) *big.Int {
	return f.Mul(x, x)
}

// Neg returns -x mod m.
func (f *Field) Neg(x *big.Int) *big.Int {
	r := new(big.Int).Neg(x)
	return r.Mod(r, f.m)
}

// Equal reports whether x ≡ y (mod m).
func (f *Field) Equal(x, y *big.Int) bool {
	return f.Reduce(x).Cmp(f.Reduce(y)) == 0
}

// Inverse returns k⁻¹ mod m.
//
// A prime modulus uses Fermat's little theorem, k^(m-2) mod m. Any other
// modulus falls back to the extended Euclidean algorithm. It fails with
// ecc.ErrDivisionByZero when k ≡ 0 and with ecc.ErrNotInvertible when k
// shares a factor with a composite modulus.
func (f *Field) Inverse(k *big.Int) (*big.Int, error) {
	r := f.Reduce(k)
	if r.Sign() == 0 {
		return nil, ecc.Errorf(ecc.ErrDivisionByZero, "field: inverse of %s mod %s", k, f.m)
	}
	if f.prime {
		return r.Exp(r, f.mMinus, f.m), nil
	}
	inv := new(big.Int).ModInverse(r, f.m)
	if inv == nil {
		return nil, ecc.Errorf(ecc.ErrNotInvertible, "field: %s has no inverse mod %s", k, f.m)
	}
	return inv, nil
}

// InverseMod returns k⁻¹ mod modulus without keeping a Field around.
// Callers inverting repeatedly under the same modulus should use New, which
// runs the primality test once.
func InverseMod(k, modulus *big.Int) (*big.Int, error) {
	f, err := New(modulus)
	if err != nil {
		return nil, err
	}
	return f.Inverse(k)
}
