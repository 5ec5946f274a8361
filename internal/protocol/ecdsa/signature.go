package ecdsa

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// Signature is an ECDSA signature (r, s).
type Signature struct {
	R *big.Int
	S *big.Int
}

// Equal reports whether two signatures have the same components.
func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	return sig.R.Cmp(other.R) == 0 && sig.S.Cmp(other.S) == 0
}

func (sig *Signature) String() string {
	return fmt.Sprintf("(%s, %s)", sig.R.Text(16), sig.S.Text(16))
}

// MarshalDER encodes the signature as an ASN.1 SEQUENCE of two INTEGERs, the
// form accepted by crypto/ecdsa.VerifyASN1.
func (sig *Signature) MarshalDER() ([]byte, error) {
	if sig == nil || sig.R == nil || sig.S == nil {
		return nil, errors.New("ecdsa: cannot marshal incomplete signature")
	}
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(sig.R)
		b.AddASN1BigInt(sig.S)
	})
	return b.Bytes()
}

// ParseDER decodes a signature produced by MarshalDER. It does not check the
// component ranges; Verify does.
func ParseDER(der []byte) (*Signature, error) {
	var (
		r, s  = new(big.Int), new(big.Int)
		inner cryptobyte.String
	)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, errors.New("ecdsa: invalid ASN.1 signature")
	}
	return &Signature{R: r, S: s}, nil
}
