// Package ecdsa implements the Elliptic Curve Digital Signature Algorithm
// over package curves.
//
// The message digest is interpreted as a big-endian integer as is, without
// truncation to the bit length of the group order. Choosing the hash is the
// caller's concern.
package ecdsa

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc-p256/internal/crypto/curves"
	"github.com/smallyu/go-ecc-p256/internal/crypto/modular"
	"github.com/smallyu/go-ecc-p256/internal/logging"
	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

var (
	logger = logging.MustGetLogger("ecdsa")
	one    = big.NewInt(1)

	// ErrMismatch is returned by VerifyError when a well-formed signature
	// does not match the digest and key.
	ErrMismatch = errors.New("ecdsa: signature does not match")
)

// Sign signs digest with priv. A fresh nonce k is drawn from [1, n-1] for
// every attempt; attempts that produce r = 0 or s = 0 are discarded and
// retried without limit.
func Sign(curve *curves.Curve, random ecc.RandomSource, priv *big.Int, digest []byte) (*Signature, error) {
	if priv == nil || priv.Sign() <= 0 {
		return nil, errors.New("ecdsa: private key must be positive")
	}
	n := curve.N()
	z := new(big.Int).SetBytes(digest)

	for attempt := 1; ; attempt++ {
		k, err := nonce(n, random)
		if err != nil {
			return nil, err
		}

		kG, err := curve.ScalarBaseMult(k)
		if err != nil {
			return nil, errors.Wrap(err, "ecdsa: compute k·G")
		}
		if kG.IsInfinity() {
			return nil, ecc.NewFault("Sign", "k·G is the point at infinity", ecc.ErrInvariantViolation)
		}

		r := modular.Mod(kG.X(), n)
		if r.Sign() == 0 {
			logger.Debugw("r is zero, drawing a new nonce", "attempt", attempt)
			continue
		}

		kInv, err := modular.Invert(k, n)
		if err != nil {
			return nil, ecc.NewFault("Sign", "nonce is not invertible", err)
		}

		// s = (z + r·d) / k
		s := modular.Add(z, modular.Mul(r, priv, n), n)
		s = modular.Mul(s, kInv, n)
		if s.Sign() == 0 {
			logger.Debugw("s is zero, drawing a new nonce", "attempt", attempt)
			continue
		}

		return &Signature{R: r, S: s}, nil
	}
}

// nonce returns a uniform integer in [1, n-1].
func nonce(n *big.Int, random ecc.RandomSource) (*big.Int, error) {
	k, err := rand.Int(random, new(big.Int).Sub(n, one))
	if err != nil {
		return nil, errors.Wrapf(ecc.ErrRandomSource, "ecdsa: draw nonce: %v", err)
	}
	return k.Add(k, one), nil
}

// Verify reports whether sig is a valid signature of digest under pub. It
// never fails loudly: malformed signatures, unusable public keys and internal
// faults all yield false. Internal faults are logged at error level.
func Verify(curve *curves.Curve, pub curves.Point, digest []byte, sig *Signature) bool {
	err := VerifyError(curve, pub, digest, sig)
	switch {
	case err == nil:
		return true
	case ecc.IsFault(err):
		logger.Errorw("internal fault during verification", "curve", curve.Name(), "error", err.Error())
	default:
		logger.Debugw("signature rejected", "reason", err.Error())
	}
	return false
}

// VerifyError is Verify with the reason for rejection. Caller input problems
// wrap ecc.ErrInvalidSignatureComponent or ecc.ErrInvalidPoint, a mismatch
// is ErrMismatch, and anything else is an *ecc.Fault.
func VerifyError(curve *curves.Curve, pub curves.Point, digest []byte, sig *Signature) error {
	if sig == nil || sig.R == nil || sig.S == nil {
		return errors.Wrap(ecc.ErrInvalidSignatureComponent, "missing r or s")
	}
	n := curve.N()
	if !inRange(sig.R, n) {
		return errors.Wrap(ecc.ErrInvalidSignatureComponent, "r is outside [1, n-1]")
	}
	if !inRange(sig.S, n) {
		return errors.Wrap(ecc.ErrInvalidSignatureComponent, "s is outside [1, n-1]")
	}
	if pub.IsInfinity() || !curve.IsOnCurve(pub) {
		return errors.Wrap(ecc.ErrInvalidPoint, "public key")
	}

	z := new(big.Int).SetBytes(digest)
	w, err := modular.Invert(sig.S, n)
	if err != nil {
		return errors.Wrap(ecc.ErrInvalidSignatureComponent, err.Error())
	}
	u1 := modular.Mul(z, w, n)
	u2 := modular.Mul(sig.R, w, n)

	p1, err := curve.ScalarBaseMult(u1)
	if err != nil {
		return err
	}
	p2, err := curve.ScalarMult(u2, pub)
	if err != nil {
		return err
	}
	sum, err := curve.Add(p1, p2)
	if err != nil {
		return err
	}

	if sum.IsInfinity() {
		return errors.Wrap(ErrMismatch, "u1·G + u2·Q is the point at infinity")
	}
	if modular.Mod(sum.X(), n).Cmp(sig.R) != 0 {
		return ErrMismatch
	}
	return nil
}

func inRange(v, n *big.Int) bool {
	return v.Sign() > 0 && v.Cmp(n) < 0
}
