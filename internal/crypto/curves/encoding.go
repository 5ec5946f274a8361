package curves

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc-p256/internal/crypto/modular"
	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

// SEC 1 point encoding prefixes.
const (
	prefixInfinity     = 0x00
	prefixCompressedEv = 0x02
	prefixCompressedOd = 0x03
	prefixUncompressed = 0x04
)

// ByteLen returns the length of an encoded field element.
func (c *Curve) ByteLen() int {
	return (c.bitSize + 7) / 8
}

// Marshal encodes pt in SEC 1 uncompressed form, 0x04 || X || Y. The point
// at infinity encodes as the single byte 0x00.
func (c *Curve) Marshal(pt Point) []byte {
	if pt.IsInfinity() {
		return []byte{prefixInfinity}
	}
	size := c.ByteLen()
	out := make([]byte, 1+2*size)
	out[0] = prefixUncompressed
	pt.x.FillBytes(out[1 : 1+size])
	pt.y.FillBytes(out[1+size:])
	return out
}

// MarshalCompressed encodes pt in SEC 1 compressed form, 0x02/0x03 || X.
func (c *Curve) MarshalCompressed(pt Point) []byte {
	if pt.IsInfinity() {
		return []byte{prefixInfinity}
	}
	size := c.ByteLen()
	out := make([]byte, 1+size)
	out[0] = prefixCompressedEv | byte(pt.y.Bit(0))
	pt.x.FillBytes(out[1:])
	return out
}

// Unmarshal decodes a point in any of the forms produced by Marshal and
// MarshalCompressed. Points that are not on the curve are rejected.
func (c *Curve) Unmarshal(data []byte) (Point, error) {
	if len(data) == 0 {
		return Point{}, errors.Wrap(ecc.ErrInvalidPoint, "empty encoding")
	}
	size := c.ByteLen()

	switch data[0] {
	case prefixInfinity:
		if len(data) != 1 {
			return Point{}, errors.Wrap(ecc.ErrInvalidPoint, "trailing bytes after infinity")
		}
		return Infinity(), nil

	case prefixUncompressed:
		if len(data) != 1+2*size {
			return Point{}, errors.Wrapf(ecc.ErrInvalidPoint, "uncompressed length %d", len(data))
		}
		pt := Point{
			x: new(big.Int).SetBytes(data[1 : 1+size]),
			y: new(big.Int).SetBytes(data[1+size:]),
		}
		if !c.IsOnCurve(pt) {
			return Point{}, errors.Wrap(ecc.ErrInvalidPoint, "point is not on the curve")
		}
		return pt, nil

	case prefixCompressedEv, prefixCompressedOd:
		if len(data) != 1+size {
			return Point{}, errors.Wrapf(ecc.ErrInvalidPoint, "compressed length %d", len(data))
		}
		x := new(big.Int).SetBytes(data[1:])
		if !c.inField(x) {
			return Point{}, errors.Wrap(ecc.ErrInvalidPoint, "x is out of range")
		}
		y, err := modular.Sqrt(c.polynomial(x), c.p)
		if err != nil {
			return Point{}, errors.Wrap(ecc.ErrInvalidPoint, err.Error())
		}
		if y.Bit(0) != uint(data[0]&1) {
			y = modular.Neg(y, c.p)
		}
		pt := Point{x: x, y: y}
		if !c.IsOnCurve(pt) {
			return Point{}, errors.Wrap(ecc.ErrInvalidPoint, "point is not on the curve")
		}
		return pt, nil
	}

	return Point{}, errors.Wrapf(ecc.ErrInvalidPoint, "unknown prefix 0x%02x", data[0])
}

// IntToBytes returns the minimal big-endian encoding of a non-negative
// integer. Zero and nil encode as an empty slice.
func IntToBytes(i *big.Int) []byte {
	if i == nil {
		return []byte{}
	}
	return i.Bytes()
}

// BytesToInt decodes a big-endian unsigned integer.
func BytesToInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// FieldBytes returns i left-padded with zeros to the curve's field width.
func (c *Curve) FieldBytes(i *big.Int) ([]byte, error) {
	size := c.ByteLen()
	if i.Sign() < 0 || i.BitLen() > size*8 {
		return nil, errors.Errorf("value does not fit in %d bytes", size)
	}
	return i.FillBytes(make([]byte, size)), nil
}
