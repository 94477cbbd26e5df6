// Package digest provides the message digests used to turn messages into
// ECDSA integers and shared points into symmetric keys.
package digest

import (
	"hash"
	"math/big"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"
)

// Digest is a named, fixed-width cryptographic hash function.
type Digest struct {
	name string
	size int
	new  func() hash.Hash
}

var (
	// SHA256 is the default digest: 256-bit SHA-2, backed by the SIMD
	// implementation from minio.
	SHA256 = Digest{name: "SHA-256", size: 32, new: sha256simd.New}

	// SHA3_256 is 256-bit SHA-3.
	SHA3_256 = Digest{name: "SHA3-256", size: 32, new: sha3.New256}
)

// Name returns the digest's display name.
func (d Digest) Name() string {
	return d.name
}

// Size returns the digest width in bytes.
func (d Digest) Size() int {
	return d.size
}

// New returns a fresh hash.Hash.
func (d Digest) New() hash.Hash {
	return d.new()
}

// Sum returns the digest of the concatenation of parts.
func (d Digest) Sum(parts ...[]byte) []byte {
	h := d.new()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// Int returns the digest of msg interpreted as a big-endian integer.
func (d Digest) Int(msg []byte) *big.Int {
	return new(big.Int).SetBytes(d.Sum(msg))
}

// ByName looks up a digest by its display name.
func ByName(name string) (Digest, bool) {
	switch name {
	case SHA256.name, "sha256":
		return SHA256, true
	case SHA3_256.name, "sha3-256":
		return SHA3_256, true
	}
	return Digest{}, false
}
