package e2e

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/smallyu/go-weierstrass/internal/config"
	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/crypto/rng"
	"github.com/smallyu/go-weierstrass/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdh"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdsa"
	"github.com/smallyu/go-weierstrass/internal/protocol/keygen"
	"github.com/smallyu/go-weierstrass/internal/seal"
)

func newBox(t *testing.T, shared []byte) (*seal.Box, error) {
	t.Helper()
	key, err := ecdh.ExpandKey(shared, nil, []byte("seal"), seal.KeySize)
	if err != nil {
		t.Fatalf("ExpandKey: %v", err)
	}
	return seal.New(key)
}

type party struct {
	name string
	key  *keygen.KeyPair
}

func TestCryptoIntegration(t *testing.T) {
	file, err := config.Load(filepath.Join("..", "..", "internal", "config", "testdata", "curves.yaml"), nil)
	if err != nil {
		t.Fatalf("Loading curve file failed: %v", err)
	}

	for _, id := range []string{"secp256k1", "NIST_P256"} {
		t.Run(id, func(t *testing.T) {
			c, err := file.Curve(id)
			if err != nil {
				t.Fatalf("Curve %s: %v", id, err)
			}
			runExchange(t, c)
		})
	}
}

// runExchange has three parties publish keys with proofs of possession, then
// every ordered pair agrees on a key, exchanges a sealed message and signs it.
func runExchange(t *testing.T, c *curves.Curve) {
	src := rng.Default()

	// 1. Key Generation Phase
	parties := make([]party, 3)
	for i := range parties {
		kp, err := keygen.GenerateKeyPair(c, src)
		if err != nil {
			t.Fatalf("Party %d failed to generate key: %v", i, err)
		}
		parties[i] = party{name: fmt.Sprintf("party-%d", i+1), key: kp}

		proof, err := schnorr.Prove(c, kp.Private, kp.Public, src)
		if err != nil {
			t.Fatalf("Party %d failed to prove possession: %v", i, err)
		}
		if !proof.Verify(c, kp.Public) {
			t.Fatalf("Proof of possession for party %d rejected", i)
		}
	}

	// 2. Communication Phase
	var batch []ecdsa.BatchItem
	for _, from := range parties {
		for _, to := range parties {
			if from.name == to.name {
				continue
			}

			sendKey, err := ecdh.SharedKey(c, from.key.Private, to.key.Public)
			if err != nil {
				t.Fatalf("%s -> %s: key agreement failed: %v", from.name, to.name, err)
			}
			recvKey, err := ecdh.SharedKey(c, to.key.Private, from.key.Public)
			if err != nil {
				t.Fatalf("%s -> %s: key agreement failed: %v", to.name, from.name, err)
			}
			if !bytes.Equal(sendKey, recvKey) {
				t.Fatalf("%s and %s derived different keys", from.name, to.name)
			}

			msg := []byte(fmt.Sprintf("hello %s, from %s", to.name, from.name))
			aad := []byte(from.name + "->" + to.name)

			box, err := newBox(t, sendKey)
			if err != nil {
				t.Fatalf("seal.New: %v", err)
			}
			ct, err := box.Seal(msg, aad)
			if err != nil {
				t.Fatalf("Seal: %v", err)
			}
			sig, err := ecdsa.Sign(c, from.key.Private, ct, src)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}

			// Receiver side
			if !ecdsa.Verify(c, from.key.Public, ct, sig) {
				t.Fatalf("%s rejected signature from %s", to.name, from.name)
			}
			recvBox, err := newBox(t, recvKey)
			if err != nil {
				t.Fatalf("seal.New: %v", err)
			}
			pt, err := recvBox.Open(ct, aad)
			if err != nil {
				t.Fatalf("%s could not open message from %s: %v", to.name, from.name, err)
			}
			if !bytes.Equal(pt, msg) {
				t.Errorf("Decrypted message does not match original. Got %q, want %q", pt, msg)
			}

			batch = append(batch, ecdsa.BatchItem{PublicKey: from.key.Public, Message: ct, Signature: sig})
		}
	}

	// 3. Audit Phase
	// A third party re-checks every signature at once, plus one forgery.
	forged := batch[0]
	forged.PublicKey = batch[len(batch)-1].PublicKey
	if forged.PublicKey.Equal(batch[0].PublicKey) {
		t.Fatal("Expected distinct signers")
	}
	batch = append(batch, forged)

	results, err := ecdsa.VerifyBatch(context.Background(), c, batch)
	if err != nil {
		t.Fatalf("VerifyBatch: %v", err)
	}
	for i, ok := range results[:len(results)-1] {
		if !ok {
			t.Errorf("Batch item %d failed to verify", i)
		}
	}
	if results[len(results)-1] {
		t.Error("Forged batch item verified")
	}
}
