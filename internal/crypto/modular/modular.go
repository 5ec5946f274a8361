// Package modular implements big-integer arithmetic reduced modulo an
// explicit modulus. Every function returns a freshly allocated value in
// [0, m) and never mutates its arguments.
package modular

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

var (
	one   = big.NewInt(1)
	three = big.NewInt(3)
	four  = big.NewInt(4)

	// ErrNegativeExponent is returned by Pow for e < 0.
	ErrNegativeExponent = errors.New("modular: negative exponent")
	// ErrNoSquareRoot is returned by Sqrt for quadratic non-residues.
	ErrNoSquareRoot = errors.New("modular: no square root")
)

func checkModulus(m *big.Int) {
	if m == nil || m.Sign() <= 0 {
		panic("modular: modulus must be positive")
	}
}

// Mod reduces x into [0, m).
func Mod(x, m *big.Int) *big.Int {
	checkModulus(m)
	return new(big.Int).Mod(x, m)
}

// Add returns x + y mod m.
func Add(x, y, m *big.Int) *big.Int {
	checkModulus(m)
	r := new(big.Int).Add(x, y)
	return r.Mod(r, m)
}

// Sub returns x - y mod m.
func Sub(x, y, m *big.Int) *big.Int {
	checkModulus(m)
	r := new(big.Int).Sub(x, y)
	return r.Mod(r, m)
}

// Mul returns x * y mod m.
func Mul(x, y, m *big.Int) *big.Int {
	checkModulus(m)
	r := new(big.Int).Mul(x, y)
	return r.Mod(r, m)
}

// Neg returns -x mod m.
func Neg(x, m *big.Int) *big.Int {
	checkModulus(m)
	r := new(big.Int).Neg(x)
	return r.Mod(r, m)
}

// Pow returns x^e mod m for e >= 0.
func Pow(x, e, m *big.Int) (*big.Int, error) {
	checkModulus(m)
	if e.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	base := new(big.Int).Mod(x, m)
	return base.Exp(base, e, m), nil
}

// Invert returns the multiplicative inverse of x mod m. It fails with
// ecc.ErrNotInvertible when gcd(x, m) != 1.
func Invert(x, m *big.Int) (*big.Int, error) {
	checkModulus(m)
	r := new(big.Int).Mod(x, m)
	if r.Sign() == 0 || r.ModInverse(r, m) == nil {
		return nil, errors.Wrapf(ecc.ErrNotInvertible, "%s mod %s", x.Text(16), m.Text(16))
	}
	return r, nil
}

// Sqrt returns a square root of x mod p for a prime p ≡ 3 (mod 4), using
// x^((p+1)/4). The returned root is the one the exponentiation yields; the
// other root is p minus it.
func Sqrt(x, p *big.Int) (*big.Int, error) {
	checkModulus(p)
	if new(big.Int).Mod(p, four).Cmp(three) != 0 {
		return nil, errors.Errorf("modular: sqrt needs p = 3 mod 4, got p mod 4 = %s",
			new(big.Int).Mod(p, four))
	}
	e := new(big.Int).Add(p, one)
	e.Rsh(e, 2)
	root, err := Pow(x, e, p)
	if err != nil {
		return nil, err
	}
	if Mul(root, root, p).Cmp(Mod(x, p)) != 0 {
		return nil, ErrNoSquareRoot
	}
	return root, nil
}
