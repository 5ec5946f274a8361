// Package schnorr proves possession of the private key behind a public key
// without revealing it.
package schnorr

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc-p256/internal/crypto/curves"
	"github.com/smallyu/go-ecc-p256/internal/crypto/digest"
	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

// Proof represents a Schnorr proof of knowledge of a discrete logarithm.
// Proves knowledge of x such that X = x * G.
type Proof struct {
	R curves.Point // Commitment R = k * G
	S *big.Int     // Response s = k + e * x mod n
}

// Prove generates a Schnorr proof for the secret x, public key X = x*G.
func Prove(curve *curves.Curve, random ecc.RandomSource, x *big.Int, X curves.Point) (*Proof, error) {
	if x == nil || X.IsInfinity() {
		return nil, errors.New("schnorr: inputs cannot be empty")
	}
	n := curve.N()

	k, err := rand.Int(random, new(big.Int).Sub(n, big.NewInt(1)))
	if err != nil {
		return nil, errors.Wrapf(ecc.ErrRandomSource, "schnorr: draw nonce: %v", err)
	}
	k.Add(k, big.NewInt(1))

	R, err := curve.ScalarBaseMult(k)
	if err != nil {
		return nil, err
	}

	e, err := challenge(curve, X, R)
	if err != nil {
		return nil, err
	}

	s := new(big.Int).Mul(e, x)
	s.Add(s, k)
	s.Mod(s, n)

	return &Proof{R: R, S: s}, nil
}

// Verify checks the validity of the Schnorr proof for public key X.
func (p *Proof) Verify(curve *curves.Curve, X curves.Point) bool {
	if p == nil || p.S == nil || p.R.IsInfinity() || X.IsInfinity() {
		return false
	}
	if !curve.IsOnCurve(X) || !curve.IsOnCurve(p.R) {
		return false
	}
	if p.S.Sign() < 0 || p.S.Cmp(curve.N()) >= 0 {
		return false
	}

	e, err := challenge(curve, X, p.R)
	if err != nil {
		return false
	}

	// s*G = R + e*X
	lhs, err := curve.ScalarBaseMult(p.S)
	if err != nil {
		return false
	}
	eX, err := curve.ScalarMult(e, X)
	if err != nil {
		return false
	}
	rhs, err := curve.Add(p.R, eX)
	if err != nil {
		return false
	}
	return lhs.Equal(rhs)
}

// challenge computes H(X, R) mod n over the compressed encodings.
func challenge(curve *curves.Curve, X, R curves.Point) (*big.Int, error) {
	h, err := digest.SumParts(digest.SHA256, curve.MarshalCompressed(X), curve.MarshalCompressed(R))
	if err != nil {
		return nil, err
	}
	e := curves.BytesToInt(h)
	return e.Mod(e, curve.N()), nil
}
