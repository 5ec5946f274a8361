// Package digest hashes messages into the fixed-size digests that ECDSA
// signs. The hash choice belongs to the caller; SHA-256 is the default.
package digest

import (
	"crypto/sha256"
	"hash"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Supported algorithm names.
const (
	SHA256     = "sha256"
	SHA3_256   = "sha3-256"
	BLAKE2b256 = "blake2b-256"
)

var algorithms = map[string]func() hash.Hash{
	SHA256:   sha256.New,
	SHA3_256: sha3.New256,
	BLAKE2b256: func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	},
}

// New returns a hash.Hash for the named algorithm.
func New(name string) (hash.Hash, error) {
	ctor, ok := algorithms[name]
	if !ok {
		return nil, errors.Errorf("digest: unknown algorithm %q", name)
	}
	return ctor(), nil
}

// Sum hashes msg with the named algorithm.
func Sum(name string, msg []byte) ([]byte, error) {
	h, err := New(name)
	if err != nil {
		return nil, err
	}
	h.Write(msg)
	return h.Sum(nil), nil
}

// SumParts hashes the concatenation of parts.
func SumParts(name string, parts ...[]byte) ([]byte, error) {
	h, err := New(name)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil), nil
}

// Supported reports whether name is a known algorithm.
func Supported(name string) bool {
	_, ok := algorithms[name]
	return ok
}

// Names lists the known algorithms in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for n := range algorithms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
