package ecdh

import (
	"crypto/sha256"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"

	"github.com/smallyu/go-ecc-p256/internal/crypto/curves"
	"github.com/smallyu/go-ecc-p256/pkg/ecc"
)

// DeriveSharedSecret returns priv·peer. Both parties obtain the same point
// because a·(b·G) = b·(a·G). The peer key is validated first: the point at
// infinity and off-curve points are rejected with ecc.ErrInvalidPoint.
//
// Only the x coordinate of the result should be used as key material; see
// DeriveKey.
func DeriveSharedSecret(curve *curves.Curve, priv *big.Int, peer curves.Point) (curves.Point, error) {
	if priv == nil {
		return curves.Point{}, errors.New("ecdh: nil private key")
	}
	if peer.IsInfinity() {
		return curves.Point{}, errors.Wrap(ecc.ErrInvalidPoint, "ecdh: peer key is the point at infinity")
	}
	if !curve.IsOnCurve(peer) {
		return curves.Point{}, errors.Wrap(ecc.ErrInvalidPoint, "ecdh: peer key is not on the curve")
	}

	secret, err := curve.ScalarMult(priv, peer)
	if err != nil {
		logger.Errorw("shared secret computation failed", "curve", curve.Name(), "error", err.Error())
		return curves.Point{}, errors.Wrap(err, "ecdh: derive shared secret")
	}
	return secret, nil
}

// DeriveKey expands the x coordinate of a shared secret into size bytes of
// symmetric key material with HKDF-SHA256 (RFC 5903 section 9 keeps x only).
func DeriveKey(curve *curves.Curve, secret curves.Point, salt, info []byte, size int) ([]byte, error) {
	if secret.IsInfinity() {
		return nil, errors.Wrap(ecc.ErrInvalidPoint, "ecdh: shared secret is the point at infinity")
	}
	ikm, err := curve.FieldBytes(secret.X())
	if err != nil {
		return nil, errors.Wrap(err, "ecdh: encode shared secret")
	}

	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, info), key); err != nil {
		return nil, errors.Wrap(err, "ecdh: expand key")
	}
	return key, nil
}
