package ecc

import (
	"io"

	"github.com/pkg/errors"
)

// Errors returned by the curve arithmetic and the protocols built on it.
var (
	// ErrNotInvertible is returned when a modular inverse does not exist.
	ErrNotInvertible = errors.New("value is not invertible")
	// ErrInvariantViolation marks a point that left the curve during an
	// operation that must preserve curve membership.
	ErrInvariantViolation = errors.New("curve invariant violated")
	// ErrInvalidSignatureComponent is reported for r or s outside [1, n-1].
	ErrInvalidSignatureComponent = errors.New("invalid signature component")
	// ErrInvalidPoint is reported for caller-supplied points that are not
	// usable (off the curve, infinity where a key is expected, bad encoding).
	ErrInvalidPoint = errors.New("invalid curve point")
	// ErrInvalidParameters is reported by curve construction.
	ErrInvalidParameters = errors.New("invalid curve parameters")
	// ErrRandomSource wraps failures of the random byte source.
	ErrRandomSource = errors.New("random source failure")
)

// RandomSource supplies cryptographically secure random bytes.
// crypto/rand.Reader is the expected implementation.
type RandomSource = io.Reader
