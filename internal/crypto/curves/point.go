package curves

import (
	"fmt"
	"math/big"
)

// Point is an affine curve point or the point at infinity. The zero value is
// the point at infinity. Points are immutable: constructors copy their inputs
// and accessors return copies.
type Point struct {
	x, y *big.Int // nil for the point at infinity
}

// Infinity returns the group identity.
func Infinity() Point {
	return Point{}
}

// NewPoint returns the affine point (x, y). It does not check curve
// membership; use Curve.IsOnCurve for that.
func NewPoint(x, y *big.Int) Point {
	if x == nil || y == nil {
		panic("curves: nil coordinate")
	}
	return Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.x == nil
}

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (p Point) X() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (p Point) Y() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p Point) String() string {
	if p.IsInfinity() {
		return "infinity"
	}
	return fmt.Sprintf("(%s, %s)", p.x.Text(16), p.y.Text(16))
}
