// Package ecdh implements key-pair generation and Elliptic Curve
// Diffie-Hellman shared-secret derivation on top of package curves.
package ecdh

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc-p256/internal/crypto/curves"
	"github.com/smallyu/go-ecc-p256/internal/logging"
	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

var (
	logger = logging.MustGetLogger("ecdh")
	one    = big.NewInt(1)
)

// KeyPair holds a private scalar and the matching public point
// PublicKey = PrivateKey·G.
type KeyPair struct {
	PrivateKey *big.Int
	PublicKey  curves.Point
}

// NewKeyPair derives the public key for a known private key. Private keys
// that are not positive, or that are multiples of the group order, are
// rejected because their public key would be the point at infinity.
func NewKeyPair(curve *curves.Curve, priv *big.Int) (*KeyPair, error) {
	if priv == nil || priv.Sign() <= 0 {
		return nil, errors.New("ecdh: private key must be positive")
	}
	pub, err := curve.ScalarBaseMult(priv)
	if err != nil {
		return nil, errors.Wrap(err, "ecdh: compute public key")
	}
	if pub.IsInfinity() {
		return nil, errors.New("ecdh: private key is a multiple of the group order")
	}
	return &KeyPair{
		PrivateKey: new(big.Int).Set(priv),
		PublicKey:  pub,
	}, nil
}

// GenerateKeyPair draws the private key uniformly from [0, 2^BitSize), the
// full width of the field, and does not reduce it modulo the group order.
// Keys >= n are kept as drawn, which biases k mod n slightly towards small
// values compared to GenerateKeyPairInOrder. A draw that is 0 mod n is
// replaced.
func GenerateKeyPair(curve *curves.Curve, random ecc.RandomSource) (*KeyPair, error) {
	bound := new(big.Int).Lsh(one, uint(curve.BitSize()))
	n := curve.N()
	for {
		k, err := rand.Int(random, bound)
		if err != nil {
			return nil, errors.Wrapf(ecc.ErrRandomSource, "ecdh: draw private key: %v", err)
		}
		if new(big.Int).Mod(k, n).Sign() == 0 {
			logger.Debug("private key draw is 0 mod n, drawing again")
			continue
		}
		if k.Cmp(n) >= 0 {
			logger.Debugw("private key draw exceeds group order", "curve", curve.Name())
		}
		return NewKeyPair(curve, k)
	}
}

// GenerateKeyPairInOrder draws the private key uniformly from [1, n-1].
func GenerateKeyPairInOrder(curve *curves.Curve, random ecc.RandomSource) (*KeyPair, error) {
	k, err := randScalar(curve, random)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(curve, k)
}

// randScalar returns a uniform integer in [1, n-1].
func randScalar(curve *curves.Curve, random ecc.RandomSource) (*big.Int, error) {
	limit := new(big.Int).Sub(curve.N(), one)
	k, err := rand.Int(random, limit)
	if err != nil {
		return nil, errors.Wrapf(ecc.ErrRandomSource, "ecdh: draw private key: %v", err)
	}
	return k.Add(k, one), nil
}
