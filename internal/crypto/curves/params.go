package curves

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc-p256/internal/crypto/modular"
	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

// Params describes a short Weierstrass curve y² = x³ + a·x + b over F_p
// together with a base point G of prime order N and cofactor H.
type Params struct {
	Name    string
	P       *big.Int // prime field size
	A, B    *big.Int // curve coefficients
	Gx, Gy  *big.Int // base point
	N       *big.Int // order of G
	H       *big.Int // cofactor
	BitSize int      // size of the field in bits
}

// Curve is a validated, immutable set of curve parameters. All point
// arithmetic is expressed as methods on *Curve so the parameters are always
// passed explicitly.
type Curve struct {
	name    string
	p, a, b *big.Int
	n, h    *big.Int
	g       Point
	bitSize int
}

var (
	p256Once  sync.Once
	p256Curve *Curve
)

func hexInt(s string) *big.Int {
	i, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curves: bad hex constant " + s)
	}
	return i
}

// P256Params returns a fresh copy of the NIST P-256 parameters.
func P256Params() *Params {
	return &Params{
		Name:    "P-256",
		P:       hexInt("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"),
		A:       big.NewInt(-3),
		B:       hexInt("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"),
		Gx:      hexInt("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"),
		Gy:      hexInt("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"),
		N:       hexInt("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
		H:       big.NewInt(1),
		BitSize: 256,
	}
}

// P256 returns the process-wide P-256 curve. It is built and validated once.
func P256() *Curve {
	p256Once.Do(func() {
		c, err := NewCurve(P256Params())
		if err != nil {
			panic(err)
		}
		p256Curve = c
	})
	return p256Curve
}

// NewCurve validates params and returns an immutable Curve. The primality
// checks are Miller-Rabin sanity checks, not proofs.
func NewCurve(params *Params) (*Curve, error) {
	if params == nil {
		return nil, errors.Wrap(ecc.ErrInvalidParameters, "nil params")
	}
	for name, v := range map[string]*big.Int{
		"p": params.P, "a": params.A, "b": params.B,
		"gx": params.Gx, "gy": params.Gy, "n": params.N, "h": params.H,
	} {
		if v == nil {
			return nil, errors.Wrapf(ecc.ErrInvalidParameters, "%s is missing", name)
		}
	}
	if params.P.Cmp(big.NewInt(3)) <= 0 || !params.P.ProbablyPrime(20) {
		return nil, errors.Wrap(ecc.ErrInvalidParameters, "p is not prime")
	}
	if params.N.Sign() <= 0 || !params.N.ProbablyPrime(20) {
		return nil, errors.Wrap(ecc.ErrInvalidParameters, "n is not prime")
	}
	if params.H.Sign() <= 0 {
		return nil, errors.Wrap(ecc.ErrInvalidParameters, "cofactor must be positive")
	}

	p := new(big.Int).Set(params.P)
	c := &Curve{
		name:    params.Name,
		p:       p,
		a:       modular.Mod(params.A, p),
		b:       modular.Mod(params.B, p),
		n:       new(big.Int).Set(params.N),
		h:       new(big.Int).Set(params.H),
		bitSize: params.BitSize,
	}
	if c.bitSize == 0 {
		c.bitSize = p.BitLen()
	}
	if c.bitSize < p.BitLen() {
		return nil, errors.Wrapf(ecc.ErrInvalidParameters, "bit size %d is smaller than p", c.bitSize)
	}

	// 4a³ + 27b² != 0 mod p
	a3 := modular.Mul(modular.Mul(c.a, c.a, p), c.a, p)
	b2 := modular.Mul(c.b, c.b, p)
	disc := modular.Add(modular.Mul(big.NewInt(4), a3, p), modular.Mul(big.NewInt(27), b2, p), p)
	if disc.Sign() == 0 {
		return nil, errors.Wrap(ecc.ErrInvalidParameters, "curve is singular")
	}

	c.g = NewPoint(params.Gx, params.Gy)
	if !c.IsOnCurve(c.g) {
		return nil, errors.Wrap(ecc.ErrInvalidParameters, "base point is not on the curve")
	}
	return c, nil
}

// Name returns the canonical curve name.
func (c *Curve) Name() string { return c.name }

// BitSize returns the size of the underlying field in bits.
func (c *Curve) BitSize() int { return c.bitSize }

// P returns a copy of the field prime.
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// A returns a copy of the a coefficient, reduced mod p.
func (c *Curve) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns a copy of the b coefficient.
func (c *Curve) B() *big.Int { return new(big.Int).Set(c.b) }

// N returns a copy of the order of the base point.
func (c *Curve) N() *big.Int { return new(big.Int).Set(c.n) }

// H returns a copy of the cofactor.
func (c *Curve) H() *big.Int { return new(big.Int).Set(c.h) }

// BasePoint returns the generator G.
func (c *Curve) BasePoint() Point { return c.g }

func (c *Curve) String() string { return c.name }
