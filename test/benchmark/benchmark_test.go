package benchmark

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/crypto/rng"
	"github.com/smallyu/go-weierstrass/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdh"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdsa"
	"github.com/smallyu/go-weierstrass/internal/protocol/keygen"
)

var benchCurves = []*curves.Curve{curves.Secp256k1(), curves.P256(), curves.P384()}

// setupKey generates a key pair or fails the benchmark.
func setupKey(b *testing.B, c *curves.Curve) *keygen.KeyPair {
	b.Helper()
	kp, err := keygen.GenerateKeyPair(c, rng.Default())
	if err != nil {
		b.Fatal(err)
	}
	return kp
}

// BenchmarkScalarBaseMult benchmarks k·G with a full-width scalar.
func BenchmarkScalarBaseMult(b *testing.B) {
	for _, c := range benchCurves {
		k := new(big.Int).Sub(c.N(), big.NewInt(1))
		b.Run(c.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				c.ScalarBaseMult(k)
			}
		})
	}
}

// BenchmarkAdd benchmarks a single affine addition.
func BenchmarkAdd(b *testing.B) {
	for _, c := range benchCurves {
		p := c.ScalarBaseMult(big.NewInt(12345))
		q := c.ScalarBaseMult(big.NewInt(67890))
		b.Run(c.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				c.Add(p, q)
			}
		})
	}
}

// BenchmarkKeyGen benchmarks key pair generation.
func BenchmarkKeyGen(b *testing.B) {
	for _, c := range benchCurves {
		b.Run(c.Name(), func(b *testing.B) {
			src := rng.Default()
			for i := 0; i < b.N; i++ {
				if _, err := keygen.GenerateKeyPair(c, src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSign benchmarks ECDSA signing.
func BenchmarkSign(b *testing.B) {
	msg := []byte("benchmark message")
	for _, c := range benchCurves {
		b.Run(c.Name(), func(b *testing.B) {
			kp := setupKey(b, c)
			src := rng.Default()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := ecdsa.Sign(c, kp.Private, msg, src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkVerify benchmarks ECDSA verification.
func BenchmarkVerify(b *testing.B) {
	msg := []byte("benchmark message")
	for _, c := range benchCurves {
		b.Run(c.Name(), func(b *testing.B) {
			kp := setupKey(b, c)
			sig, err := ecdsa.Sign(c, kp.Private, msg, rng.Default())
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if !ecdsa.Verify(c, kp.Public, msg, sig) {
					b.Fatal("Verify failed")
				}
			}
		})
	}
}

// BenchmarkVerifyBatch benchmarks concurrent verification of 64 signatures.
func BenchmarkVerifyBatch(b *testing.B) {
	c := curves.Secp256k1()
	kp := setupKey(b, c)

	items := make([]ecdsa.BatchItem, 64)
	for i := range items {
		msg := []byte(fmt.Sprintf("message %d", i))
		sig, err := ecdsa.Sign(c, kp.Private, msg, rng.Default())
		if err != nil {
			b.Fatal(err)
		}
		items[i] = ecdsa.BatchItem{PublicKey: kp.Public, Message: msg, Signature: sig}
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := ecdsa.VerifyBatch(context.Background(), c, items); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSharedKey benchmarks ECDH key derivation.
func BenchmarkSharedKey(b *testing.B) {
	for _, c := range benchCurves {
		b.Run(c.Name(), func(b *testing.B) {
			alice := setupKey(b, c)
			bob := setupKey(b, c)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := ecdh.SharedKey(c, alice.Private, bob.Public); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSchnorr benchmarks a proof of possession round trip.
func BenchmarkSchnorr(b *testing.B) {
	c := curves.Secp256k1()
	kp := setupKey(b, c)
	src := rng.Default()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		proof, err := schnorr.Prove(c, kp.Private, kp.Public, src)
		if err != nil {
			b.Fatal(err)
		}
		if !proof.Verify(c, kp.Public) {
			b.Fatal("Verify failed")
		}
	}
}
