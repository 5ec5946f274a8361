package modular

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

func TestBasicOps(t *testing.T) {
	m := big.NewInt(97)

	t.Run("add wraps", func(t *testing.T) {
		assert.Equal(t, big.NewInt(3), Add(big.NewInt(50), big.NewInt(50), m))
	})

	t.Run("sub is non-negative", func(t *testing.T) {
		assert.Equal(t, big.NewInt(87), Sub(big.NewInt(5), big.NewInt(15), m))
	})

	t.Run("mul", func(t *testing.T) {
		assert.Equal(t, big.NewInt(3), Mul(big.NewInt(10), big.NewInt(10), m))
	})

	t.Run("neg", func(t *testing.T) {
		assert.Equal(t, big.NewInt(96), Neg(big.NewInt(1), m))
		assert.Equal(t, 0, Neg(big.NewInt(0), m).Sign())
		assert.Equal(t, big.NewInt(3), Neg(big.NewInt(-3), m))
	})

	t.Run("mod of negative", func(t *testing.T) {
		assert.Equal(t, big.NewInt(94), Mod(big.NewInt(-3), m))
	})
}

func TestArgumentsUntouched(t *testing.T) {
	m := big.NewInt(97)
	x := big.NewInt(-200)
	y := big.NewInt(300)

	Add(x, y, m)
	Sub(x, y, m)
	Mul(x, y, m)
	Neg(x, m)
	_, _ = Invert(y, m)

	assert.Equal(t, big.NewInt(-200), x)
	assert.Equal(t, big.NewInt(300), y)
	assert.Equal(t, big.NewInt(97), m)
}

func TestPow(t *testing.T) {
	m := big.NewInt(97)

	r, err := Pow(big.NewInt(3), big.NewInt(4), m)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(81), r)

	r, err = Pow(big.NewInt(5), big.NewInt(0), m)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), r)

	// Fermat: a^(p-1) = 1 mod p
	r, err = Pow(big.NewInt(12345), big.NewInt(96), m)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), r)

	_, err = Pow(big.NewInt(3), big.NewInt(-1), m)
	assert.Equal(t, ErrNegativeExponent, err)
}

func TestInvert(t *testing.T) {
	m := big.NewInt(97)

	for _, v := range []int64{1, 2, 3, 50, 96, -5, 1000} {
		x := big.NewInt(v)
		inv, err := Invert(x, m)
		require.NoError(t, err, "invert %d", v)
		assert.Equal(t, big.NewInt(1), Mul(x, inv, m), "x * x^-1 for %d", v)
		assert.True(t, inv.Sign() >= 0 && inv.Cmp(m) < 0)
	}

	t.Run("zero", func(t *testing.T) {
		_, err := Invert(big.NewInt(0), m)
		assert.True(t, errors.Is(err, ecc.ErrNotInvertible))
	})

	t.Run("multiple of modulus", func(t *testing.T) {
		_, err := Invert(big.NewInt(194), m)
		assert.True(t, errors.Is(err, ecc.ErrNotInvertible))
	})

	t.Run("shared factor", func(t *testing.T) {
		_, err := Invert(big.NewInt(6), big.NewInt(9))
		assert.True(t, errors.Is(err, ecc.ErrNotInvertible))
	})
}

func TestSqrt(t *testing.T) {
	// 103 = 3 mod 4
	p := big.NewInt(103)

	for x := int64(1); x < 103; x++ {
		sq := Mul(big.NewInt(x), big.NewInt(x), p)
		root, err := Sqrt(sq, p)
		require.NoError(t, err)
		assert.Equal(t, sq, Mul(root, root, p))
	}

	// -1 is a non-residue for p = 3 mod 4
	_, err := Sqrt(big.NewInt(102), p)
	assert.Equal(t, ErrNoSquareRoot, err)

	_, err = Sqrt(big.NewInt(4), big.NewInt(97))
	assert.Error(t, err)
}

func TestNonPositiveModulusPanics(t *testing.T) {
	assert.Panics(t, func() { Add(big.NewInt(1), big.NewInt(1), big.NewInt(0)) })
	assert.Panics(t, func() { Mod(big.NewInt(1), big.NewInt(-7)) })
	assert.Panics(t, func() { _, _ = Invert(big.NewInt(1), nil) })
}
