package curves

import (
	"crypto/ecdh"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

// randomScalar returns a uniform integer in [1, n-1].
func randomScalar(t testing.TB, n *big.Int) *big.Int {
	k, err := rand.Int(rand.Reader, new(big.Int).Sub(n, big.NewInt(1)))
	require.NoError(t, err)
	return k.Add(k, big.NewInt(1))
}

func randomPoint(t testing.TB, c *Curve) Point {
	pt, err := c.ScalarBaseMult(randomScalar(t, c.N()))
	require.NoError(t, err)
	return pt
}

func TestP256Params(t *testing.T) {
	c := P256()
	assert.Same(t, c, P256())
	assert.Equal(t, "P-256", c.Name())
	assert.Equal(t, 256, c.BitSize())
	assert.Equal(t, 32, c.ByteLen())
	assert.Equal(t, big.NewInt(1), c.H())
	assert.Equal(t, new(big.Int).Sub(c.P(), big.NewInt(3)), c.A())
	assert.True(t, c.IsOnCurve(c.BasePoint()))

	// accessors hand out copies
	c.N().SetInt64(7)
	assert.Equal(t, P256Params().N, c.N())
}

func TestNewCurveRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"missing b", func(p *Params) { p.B = nil }},
		{"composite p", func(p *Params) { p.P = new(big.Int).Add(p.P, big.NewInt(1)) }},
		{"composite n", func(p *Params) { p.N = new(big.Int).Add(p.N, big.NewInt(1)) }},
		{"zero cofactor", func(p *Params) { p.H = big.NewInt(0) }},
		{"base point off curve", func(p *Params) { p.Gy = new(big.Int).Add(p.Gy, big.NewInt(1)) }},
		{"singular", func(p *Params) { p.A = big.NewInt(0); p.B = big.NewInt(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := P256Params()
			tt.mutate(params)
			_, err := NewCurve(params)
			assert.True(t, errors.Is(err, ecc.ErrInvalidParameters), "got %v", err)
		})
	}

	_, err := NewCurve(nil)
	assert.True(t, errors.Is(err, ecc.ErrInvalidParameters))
}

func TestScalarMultKnownValues(t *testing.T) {
	c := P256()
	g := c.BasePoint()

	one, err := c.ScalarBaseMult(big.NewInt(1))
	require.NoError(t, err)
	assert.True(t, one.Equal(g))
	assert.Equal(t, P256Params().Gx, one.X())
	assert.Equal(t, P256Params().Gy, one.Y())

	zero, err := c.ScalarBaseMult(big.NewInt(0))
	require.NoError(t, err)
	assert.True(t, zero.IsInfinity())

	order, err := c.ScalarBaseMult(c.N())
	require.NoError(t, err)
	assert.True(t, order.IsInfinity())

	minusOne, err := c.ScalarBaseMult(new(big.Int).Sub(c.N(), big.NewInt(1)))
	require.NoError(t, err)
	negG, err := c.Negate(g)
	require.NoError(t, err)
	assert.True(t, minusOne.Equal(negG))

	zeroInf, err := c.ScalarMult(big.NewInt(0), Infinity())
	require.NoError(t, err)
	assert.True(t, zeroInf.IsInfinity())

	someInf, err := c.ScalarMult(big.NewInt(12345), Infinity())
	require.NoError(t, err)
	assert.True(t, someInf.IsInfinity())
}

func TestScalarMultMatchesStdlib(t *testing.T) {
	c := P256()
	for i := 0; i < 4; i++ {
		k := randomScalar(t, c.N())
		priv, err := ecdh.P256().NewPrivateKey(k.FillBytes(make([]byte, 32)))
		require.NoError(t, err)

		pub, err := c.ScalarBaseMult(k)
		require.NoError(t, err)
		assert.Equal(t, priv.PublicKey().Bytes(), c.Marshal(pub))
	}
}

func TestNegate(t *testing.T) {
	c := P256()

	inf, err := c.Negate(Infinity())
	require.NoError(t, err)
	assert.True(t, inf.IsInfinity())

	for i := 0; i < 3; i++ {
		pt := randomPoint(t, c)
		neg, err := c.Negate(pt)
		require.NoError(t, err)
		assert.True(t, c.IsOnCurve(neg))
		assert.Equal(t, pt.X(), neg.X())

		sum, err := c.Add(pt, neg)
		require.NoError(t, err)
		assert.True(t, sum.IsInfinity())
	}
}

func TestAddIdentity(t *testing.T) {
	c := P256()
	pt := randomPoint(t, c)

	r, err := c.Add(pt, Infinity())
	require.NoError(t, err)
	assert.True(t, r.Equal(pt))

	r, err = c.Add(Infinity(), pt)
	require.NoError(t, err)
	assert.True(t, r.Equal(pt))

	r, err = c.Add(Infinity(), Infinity())
	require.NoError(t, err)
	assert.True(t, r.IsInfinity())
}

func TestGroupLaws(t *testing.T) {
	c := P256()
	p, q, r := randomPoint(t, c), randomPoint(t, c), randomPoint(t, c)

	pq, err := c.Add(p, q)
	require.NoError(t, err)
	qp, err := c.Add(q, p)
	require.NoError(t, err)
	assert.True(t, pq.Equal(qp), "commutativity")

	left, err := c.Add(pq, r)
	require.NoError(t, err)
	qr, err := c.Add(q, r)
	require.NoError(t, err)
	right, err := c.Add(p, qr)
	require.NoError(t, err)
	assert.True(t, left.Equal(right), "associativity")

	doubled, err := c.Double(p)
	require.NoError(t, err)
	viaScalar, err := c.ScalarMult(big.NewInt(2), p)
	require.NoError(t, err)
	assert.True(t, doubled.Equal(viaScalar))
}

func TestScalarDistributes(t *testing.T) {
	c := P256()
	n := c.N()
	a, b := randomScalar(t, n), randomScalar(t, n)

	sum := new(big.Int).Add(a, b)
	sum.Mod(sum, n)
	lhs, err := c.ScalarBaseMult(sum)
	require.NoError(t, err)

	aG, err := c.ScalarBaseMult(a)
	require.NoError(t, err)
	bG, err := c.ScalarBaseMult(b)
	require.NoError(t, err)
	rhs, err := c.Add(aG, bG)
	require.NoError(t, err)

	assert.True(t, lhs.Equal(rhs))
}

func TestNegativeScalar(t *testing.T) {
	c := P256()
	k := randomScalar(t, c.N())

	kG, err := c.ScalarBaseMult(k)
	require.NoError(t, err)
	minusKG, err := c.ScalarBaseMult(new(big.Int).Neg(k))
	require.NoError(t, err)

	want, err := c.Negate(kG)
	require.NoError(t, err)
	assert.True(t, minusKG.Equal(want))
}

func TestOffCurveOperandsFault(t *testing.T) {
	c := P256()
	g := c.BasePoint()
	bad := NewPoint(g.X(), new(big.Int).Add(g.Y(), big.NewInt(1)))
	outOfRange := NewPoint(new(big.Int).Add(g.X(), c.P()), g.Y())

	assert.False(t, c.IsOnCurve(bad))
	assert.False(t, c.IsOnCurve(outOfRange))

	_, err := c.Negate(bad)
	assert.True(t, ecc.IsFault(err))
	assert.True(t, errors.Is(err, ecc.ErrInvariantViolation))

	_, err = c.Add(g, bad)
	assert.True(t, errors.Is(err, ecc.ErrInvariantViolation))

	_, err = c.Add(bad, g)
	assert.True(t, errors.Is(err, ecc.ErrInvariantViolation))

	_, err = c.ScalarMult(big.NewInt(2), outOfRange)
	assert.True(t, errors.Is(err, ecc.ErrInvariantViolation))
}

func TestDoublingOrderTwoPointFaults(t *testing.T) {
	// y² = x³ + 2x + 94 over F_97 contains (1, 0), a point of order two.
	c, err := NewCurve(&Params{
		Name: "toy",
		P:    big.NewInt(97),
		A:    big.NewInt(2),
		B:    big.NewInt(94),
		Gx:   big.NewInt(1),
		Gy:   big.NewInt(0),
		N:    big.NewInt(2),
		H:    big.NewInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, c.BitSize())

	_, err = c.Double(c.BasePoint())
	require.Error(t, err)
	assert.True(t, ecc.IsFault(err))
	assert.True(t, errors.Is(err, ecc.ErrNotInvertible))

	_, err = c.ScalarBaseMult(big.NewInt(2))
	assert.True(t, errors.Is(err, ecc.ErrNotInvertible))
}

func secp256k1Curve(t *testing.T) *Curve {
	sp := secp256k1.S256().Params()
	c, err := NewCurve(&Params{
		Name:    "secp256k1",
		P:       sp.P,
		A:       big.NewInt(0),
		B:       sp.B,
		Gx:      sp.Gx,
		Gy:      sp.Gy,
		N:       sp.N,
		H:       big.NewInt(1),
		BitSize: sp.BitSize,
	})
	require.NoError(t, err)
	return c
}

func TestArithmeticIsParameterDriven(t *testing.T) {
	c := secp256k1Curve(t)
	oracle := secp256k1.S256()

	for i := 0; i < 3; i++ {
		k := randomScalar(t, c.N())
		pt, err := c.ScalarBaseMult(k)
		require.NoError(t, err)

		x, y := oracle.ScalarBaseMult(k.Bytes())
		assert.Equal(t, x, pt.X())
		assert.Equal(t, y, pt.Y())

		priv := secp256k1.PrivKeyFromBytes(k.Bytes())
		assert.Equal(t, priv.PubKey().SerializeUncompressed(), c.Marshal(pt))
		assert.Equal(t, priv.PubKey().SerializeCompressed(), c.MarshalCompressed(pt))
	}

	order, err := c.ScalarBaseMult(c.N())
	require.NoError(t, err)
	assert.True(t, order.IsInfinity())
}

func TestPoint(t *testing.T) {
	x, y := big.NewInt(5), big.NewInt(7)
	pt := NewPoint(x, y)
	x.SetInt64(100)
	assert.Equal(t, big.NewInt(5), pt.X(), "constructor copies")

	pt.Y().SetInt64(100)
	assert.Equal(t, big.NewInt(7), pt.Y(), "accessor copies")

	assert.True(t, Infinity().IsInfinity())
	assert.True(t, Point{}.Equal(Infinity()))
	assert.False(t, pt.Equal(Infinity()))
	assert.Nil(t, Infinity().X())
	assert.Equal(t, "infinity", Infinity().String())
	assert.Equal(t, "(5, 7)", pt.String())

	assert.Panics(t, func() { NewPoint(nil, y) })
}
