package ecdsa

import (
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// Signature is an ECDSA signature. It is valid only when both R and S are
// in [1, n-1].
type Signature struct {
	R *big.Int
	S *big.Int
}

// Marshal encodes the signature as an ASN.1 DER SEQUENCE of two INTEGERs,
// the format used by X.509 and crypto/ecdsa.
func (sig *Signature) Marshal() ([]byte, error) {
	if sig == nil || sig.R == nil || sig.S == nil {
		return nil, ecc.NewError(ecc.ErrInvalidEncoding, "ecdsa: incomplete signature")
	}
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(sig.R)
		b.AddASN1BigInt(sig.S)
	})
	return b.Bytes()
}

// ParseSignature decodes a DER signature. It only checks the encoding; range
// checks happen in Verify.
func ParseSignature(der []byte) (*Signature, error) {
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
		return nil, ecc.NewError(ecc.ErrInvalidEncoding, "ecdsa: invalid ASN.1 signature")
	}
	return &Signature{R: r, S: s}, nil
}
