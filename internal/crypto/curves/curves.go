// Package curves implements affine point arithmetic on short Weierstrass
// curves, with the NIST P-256 parameters as the fixed production curve.
//
// Every operation checks that its operands lie on the curve and that its
// result does too. A failed check is returned as an *ecc.Fault: it means the
// arithmetic is broken or the caller skipped validation, not that an input
// was merely unusual.
//
// The arithmetic is not constant time.
package curves

import (
	"math/big"

	"github.com/smallyu/go-ecc-p256/internal/crypto/modular"
	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

var three = big.NewInt(3)

// IsOnCurve reports whether pt satisfies y² = x³ + a·x + b (mod p) with both
// coordinates in [0, p). The point at infinity is on every curve.
func (c *Curve) IsOnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return true
	}
	if !c.inField(pt.x) || !c.inField(pt.y) {
		return false
	}
	return modular.Mul(pt.y, pt.y, c.p).Cmp(c.polynomial(pt.x)) == 0
}

// polynomial returns x³ + a·x + b mod p.
func (c *Curve) polynomial(x *big.Int) *big.Int {
	r := new(big.Int).Mul(x, x)
	r.Add(r, c.a) // x² + a
	r.Mul(r, x)   // x³ + a·x
	r.Add(r, c.b) // x³ + a·x + b
	return r.Mod(r, c.p)
}

func (c *Curve) inField(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(c.p) < 0
}

func offCurve(op, which string) *ecc.Fault {
	return ecc.NewFault(op, which+" is not on the curve", ecc.ErrInvariantViolation)
}

// Negate returns -pt.
func (c *Curve) Negate(pt Point) (Point, error) {
	if !c.IsOnCurve(pt) {
		return Point{}, offCurve("Negate", "operand")
	}
	if pt.IsInfinity() {
		return pt, nil
	}

	res := Point{x: new(big.Int).Set(pt.x), y: modular.Neg(pt.y, c.p)}
	if !c.IsOnCurve(res) {
		return Point{}, offCurve("Negate", "result")
	}
	return res, nil
}

// Add returns p1 + p2 under the group law.
func (c *Curve) Add(p1, p2 Point) (Point, error) {
	if !c.IsOnCurve(p1) {
		return Point{}, offCurve("Add", "first operand")
	}
	if !c.IsOnCurve(p2) {
		return Point{}, offCurve("Add", "second operand")
	}

	if p1.IsInfinity() {
		return p2, nil
	}
	if p2.IsInfinity() {
		return p1, nil
	}

	x1, y1 := p1.x, p1.y
	x2, y2 := p2.x, p2.y

	// p2 == -p1
	if x1.Cmp(x2) == 0 && y1.Cmp(y2) != 0 {
		return Infinity(), nil
	}

	var m *big.Int
	if x1.Cmp(x2) == 0 {
		// Doubling: m = (3·x1² + a) / (2·y1). Fails for y1 = 0, a point of
		// order two, which a prime-order subgroup cannot contain.
		num := modular.Add(modular.Mul(three, modular.Mul(x1, x1, c.p), c.p), c.a, c.p)
		inv, err := modular.Invert(new(big.Int).Lsh(y1, 1), c.p)
		if err != nil {
			return Point{}, ecc.NewFault("Add", "doubling a point of order two", err)
		}
		m = modular.Mul(num, inv, c.p)
	} else {
		// Chord: m = (y1 - y2) / (x1 - x2).
		inv, err := modular.Invert(new(big.Int).Sub(x1, x2), c.p)
		if err != nil {
			return Point{}, ecc.NewFault("Add", "chord slope", err)
		}
		m = modular.Mul(new(big.Int).Sub(y1, y2), inv, c.p)
	}

	// x3 = m² - x1 - x2
	x3 := new(big.Int).Mul(m, m)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	x3.Mod(x3, c.p)

	// y3 = -(y1 + m·(x3 - x1))
	y3 := new(big.Int).Sub(x3, x1)
	y3.Mul(y3, m)
	y3.Add(y3, y1)
	y3.Neg(y3)
	y3.Mod(y3, c.p)

	res := Point{x: x3, y: y3}
	if !c.IsOnCurve(res) {
		return Point{}, offCurve("Add", "result")
	}
	return res, nil
}

// Double returns 2·pt.
func (c *Curve) Double(pt Point) (Point, error) {
	return c.Add(pt, pt)
}

// ScalarMult returns k·pt using double-and-add over the bits of k from the
// least significant end. A negative k multiplies -pt by -k, and k = 0 gives
// the point at infinity. The running time depends on k.
func (c *Curve) ScalarMult(k *big.Int, pt Point) (Point, error) {
	if !c.IsOnCurve(pt) {
		return Point{}, offCurve("ScalarMult", "operand")
	}

	if k.Sign() < 0 {
		neg, err := c.Negate(pt)
		if err != nil {
			return Point{}, err
		}
		return c.ScalarMult(new(big.Int).Neg(k), neg)
	}

	var err error
	result := Infinity()
	addend := pt
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			if result, err = c.Add(result, addend); err != nil {
				return Point{}, err
			}
		}
		if addend, err = c.Add(addend, addend); err != nil {
			return Point{}, err
		}
	}

	if !c.IsOnCurve(result) {
		return Point{}, offCurve("ScalarMult", "result")
	}
	return result, nil
}

// ScalarBaseMult returns k·G.
func (c *Curve) ScalarBaseMult(k *big.Int) (Point, error) {
	return c.ScalarMult(k, c.g)
}
