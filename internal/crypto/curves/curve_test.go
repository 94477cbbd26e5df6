package curves

import (
	"crypto/elliptic"
	"errors"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// toyCurve is y² = x³ + 2x + 2 over GF(17) with G = (5, 1) of order 19.
func toyCurve(t testing.TB) *Curve {
	t.Helper()
	c, err := New(&Params{
		Name: "toy17",
		A:    big.NewInt(2),
		B:    big.NewInt(2),
		P:    big.NewInt(17),
		Gx:   big.NewInt(5),
		Gy:   big.NewInt(1),
		N:    big.NewInt(19),
	})
	require.NoError(t, err)
	return c
}

func pt(x, y int64) Point {
	return NewPoint(big.NewInt(x), big.NewInt(y))
}

// toyMultiples[k] is k·G on the toy curve.
var toyMultiples = []Point{
	Infinity(),
	pt(5, 1), pt(6, 3), pt(10, 6), pt(3, 1), pt(9, 16), pt(16, 13),
	pt(0, 6), pt(13, 7), pt(7, 6), pt(7, 11), pt(13, 10), pt(0, 11),
	pt(16, 4), pt(9, 1), pt(3, 16), pt(10, 11), pt(6, 14), pt(5, 16),
	Infinity(),
}

func TestNew(t *testing.T) {
	valid := func() *Params {
		return &Params{
			A: big.NewInt(2), B: big.NewInt(2), P: big.NewInt(17),
			Gx: big.NewInt(5), Gy: big.NewInt(1), N: big.NewInt(19),
		}
	}

	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"missing coefficient", func(p *Params) { p.A = nil }},
		{"missing order", func(p *Params) { p.N = nil }},
		{"composite modulus", func(p *Params) { p.P = big.NewInt(21) }},
		{"modulus too small", func(p *Params) { p.P = big.NewInt(3) }},
		{"order too small", func(p *Params) { p.N = big.NewInt(1) }},
		{"generator off curve", func(p *Params) { p.Gy = big.NewInt(2) }},
		{"generator out of range", func(p *Params) { p.Gx = big.NewInt(22) }},
		{"singular curve", func(p *Params) { p.A = big.NewInt(0); p.B = big.NewInt(0); p.Gx = big.NewInt(0); p.Gy = big.NewInt(0) }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			params := valid()
			test.mutate(params)
			_, err := New(params)
			assert.True(t, errors.Is(err, ecc.ErrInvalidParams), "got %v", err)
		})
	}

	t.Run("nil params", func(t *testing.T) {
		_, err := New(nil)
		assert.True(t, errors.Is(err, ecc.ErrInvalidParams))
	})

	t.Run("negative coefficient is reduced", func(t *testing.T) {
		params := valid()
		params.A = big.NewInt(-15) // ≡ 2 mod 17
		c, err := New(params)
		require.NoError(t, err)
		assert.Equal(t, int64(2), c.Params().A.Int64())
	})

	t.Run("params are copied", func(t *testing.T) {
		params := valid()
		c, err := New(params)
		require.NoError(t, err)
		params.Gx.SetInt64(99)
		assert.True(t, c.Generator().Equal(pt(5, 1)))
		c.Params().N.SetInt64(0)
		assert.Equal(t, int64(19), c.N().Int64())
	})
}

func TestParamsValidate(t *testing.T) {
	c := toyCurve(t)
	require.NoError(t, c.Params().Validate())

	wrong := c.Params()
	wrong.N = big.NewInt(23)
	err := wrong.Validate()
	assert.True(t, errors.Is(err, ecc.ErrInvalidParams))
}

func TestToyMultiples(t *testing.T) {
	c := toyCurve(t)
	for k, want := range toyMultiples {
		got := c.ScalarBaseMult(big.NewInt(int64(k)))
		assert.True(t, want.Equal(got), "%d·G = %s, want %s", k, got, want)
		assert.True(t, c.IsOnCurve(got))
	}
	// The sequence repeats with period n.
	assert.True(t, c.ScalarBaseMult(big.NewInt(20)).Equal(toyMultiples[1]))
}

func TestIsOnCurve(t *testing.T) {
	c := toyCurve(t)
	assert.True(t, c.IsOnCurve(Infinity()))
	assert.True(t, c.IsOnCurve(pt(5, 1)))
	assert.False(t, c.IsOnCurve(pt(5, 2)))
	// (5, 18) ≡ (5, 1) mod 17 but is not a canonical encoding.
	assert.False(t, c.IsOnCurve(pt(5, 18)))
	assert.False(t, c.IsOnCurve(pt(-12, 1)))
}

func TestAddIdentity(t *testing.T) {
	c := toyCurve(t)
	for _, p := range toyMultiples {
		assert.True(t, c.Add(p, Infinity()).Equal(p))
		assert.True(t, c.Add(Infinity(), p).Equal(p))
	}
}

func TestAddInverse(t *testing.T) {
	c := toyCurve(t)
	for k, p := range toyMultiples {
		if p.IsInfinity() {
			continue
		}
		neg := c.Neg(p)
		assert.True(t, c.IsOnCurve(neg))
		assert.True(t, c.Add(p, neg).IsInfinity(), "%d·G + -%d·G", k, k)
		assert.True(t, neg.Equal(toyMultiples[19-k]))
	}
	assert.True(t, c.Neg(Infinity()).IsInfinity())
}

func TestAddMatchesScalarMult(t *testing.T) {
	c := toyCurve(t)
	for i := 0; i < len(toyMultiples); i++ {
		for j := 0; j < len(toyMultiples); j++ {
			got := c.Add(toyMultiples[i], toyMultiples[j])
			want := toyMultiples[(i+j)%19]
			assert.True(t, want.Equal(got), "%dG + %dG = %s, want %s", i, j, got, want)
		}
	}
}

func TestDoubleZeroY(t *testing.T) {
	// y² = x³ + x over GF(23); (0, 0) is a point of order 2.
	c, err := New(&Params{
		A: big.NewInt(1), B: big.NewInt(0), P: big.NewInt(23),
		Gx: big.NewInt(0), Gy: big.NewInt(0), N: big.NewInt(2),
	})
	require.NoError(t, err)

	g := c.Generator()
	assert.True(t, c.Double(g).IsInfinity())
	assert.True(t, c.Add(g, g).IsInfinity())
	assert.True(t, c.ScalarBaseMult(big.NewInt(2)).IsInfinity())
	assert.True(t, c.ScalarBaseMult(big.NewInt(3)).Equal(g))
	require.NoError(t, c.Params().Validate())
}

func TestScalarMultEdgeCases(t *testing.T) {
	c := toyCurve(t)
	g := c.Generator()

	assert.True(t, c.ScalarMult(big.NewInt(0), g).IsInfinity())
	assert.True(t, c.ScalarMult(nil, g).IsInfinity())
	assert.True(t, c.ScalarMult(big.NewInt(7), Infinity()).IsInfinity())
	assert.True(t, c.ScalarMult(big.NewInt(-1), g).Equal(toyMultiples[18]))
	assert.True(t, c.ScalarMult(big.NewInt(-7), g).Equal(toyMultiples[12]))

	k := big.NewInt(7)
	c.ScalarMult(k, g)
	assert.Equal(t, int64(7), k.Int64(), "scalar must not be mutated")
}

func TestScalarMultOrder(t *testing.T) {
	for _, c := range []*Curve{toyCurve(t), Secp256k1(), P256(), P384()} {
		t.Run(c.Name(), func(t *testing.T) {
			assert.True(t, c.ScalarBaseMult(c.N()).IsInfinity())
			nMinus1 := new(big.Int).Sub(c.N(), big.NewInt(1))
			assert.True(t, c.ScalarBaseMult(nMinus1).Equal(c.Neg(c.Generator())))
		})
	}
}

func TestScalarMultComposes(t *testing.T) {
	c := Secp256k1()
	a := big.NewInt(0xdeadbeef)
	b := big.NewInt(0x12345)
	ab := new(big.Int).Mul(a, b)

	lhs := c.ScalarMult(a, c.ScalarBaseMult(b))
	rhs := c.ScalarBaseMult(ab)
	assert.True(t, lhs.Equal(rhs))
	assert.True(t, c.IsOnCurve(lhs))
}

func TestSecp256k1MatchesDecred(t *testing.T) {
	c := Secp256k1()
	for _, hex := range []string{
		"1",
		"2",
		"aa5e28d6a97a2479a65527f7290311a3624d4cc0fa1578598ee3c2613bf99522",
		"7e2b897b8cebc6361663ad410835639826d590f393d90a9538881735256dfae3",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
	} {
		k, ok := new(big.Int).SetString(hex, 16)
		require.True(t, ok)

		wantX, wantY := secp256k1.S256().ScalarBaseMult(k.Bytes())
		got := c.ScalarBaseMult(k)
		x, y, ok := got.Coords()
		require.True(t, ok)
		assert.Equal(t, 0, wantX.Cmp(x), "x mismatch for k = %s", hex)
		assert.Equal(t, 0, wantY.Cmp(y), "y mismatch for k = %s", hex)
	}
}

func TestP256MatchesStdlib(t *testing.T) {
	c := P256()
	k, _ := new(big.Int).SetString("c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f6721", 16)
	wantX, wantY := elliptic.P256().ScalarBaseMult(k.Bytes())
	got := c.ScalarBaseMult(k)
	assert.Equal(t, 0, wantX.Cmp(got.X()))
	assert.Equal(t, 0, wantY.Cmp(got.Y()))
}

func TestPoint(t *testing.T) {
	var zero Point
	assert.True(t, zero.IsInfinity())
	assert.True(t, zero.Equal(Infinity()))
	assert.Equal(t, "infinity", zero.String())

	x, y, ok := zero.Coords()
	assert.False(t, ok)
	assert.Nil(t, x)
	assert.Nil(t, y)
	assert.Nil(t, zero.X())
	assert.Nil(t, zero.Y())

	p := pt(5, 1)
	assert.False(t, p.IsInfinity())
	assert.False(t, p.Equal(Infinity()))
	assert.False(t, Infinity().Equal(p))
	assert.False(t, p.Equal(pt(5, 16)))
	assert.Equal(t, "(5, 1)", p.String())

	// Accessors hand out copies.
	p.X().SetInt64(42)
	x, _, _ = p.Coords()
	x.SetInt64(42)
	assert.True(t, p.Equal(pt(5, 1)))

	// NewPoint copies its inputs.
	bx := big.NewInt(6)
	q := NewPoint(bx, big.NewInt(3))
	bx.SetInt64(0)
	assert.True(t, q.Equal(pt(6, 3)))
}

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want *Curve
	}{
		{"secp256k1", Secp256k1()},
		{"SECP256K1", Secp256k1()},
		{"P-256", P256()},
		{"NIST_P256", P256()},
		{"prime256v1", P256()},
		{"p384", P384()},
		{"secp384r1", P384()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := ByName(test.name)
			require.True(t, ok)
			assert.Same(t, test.want, got)
		})
	}

	_, ok := ByName("curve25519")
	assert.False(t, ok)

	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}
}
