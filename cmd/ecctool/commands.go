package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/smallyu/go-weierstrass/internal/config"
	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/crypto/digest"
	"github.com/smallyu/go-weierstrass/internal/crypto/rng"
	"github.com/smallyu/go-weierstrass/internal/crypto/zk/schnorr"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdh"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdsa"
	"github.com/smallyu/go-weierstrass/internal/protocol/keygen"
	"github.com/smallyu/go-weierstrass/internal/seal"
)

var errInvalidSignature = errors.New("invalid signature")

// sealInfo separates the encryption key from other uses of the shared secret.
var sealInfo = []byte("seal")

func hashFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "hash",
		Usage: "message digest: SHA-256 or SHA3-256",
		Value: digest.SHA256.Name(),
	}
}

func loadDigest(cmd *cli.Command) (digest.Digest, error) {
	name := cmd.String("hash")
	d, ok := digest.ByName(name)
	if !ok {
		return digest.Digest{}, fmt.Errorf("unknown hash %q", name)
	}
	return d, nil
}

func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate a key pair",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger(cmd)
			defer log.Sync()
			out := cmd.Root().Writer

			c, err := loadCurve(cmd, log)
			if err != nil {
				return err
			}
			kp, err := keygen.GenerateKeyPair(c, rng.Default())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "private: %s\n", hex.EncodeToString(kp.Private.FillBytes(make([]byte, scalarLen(c)))))
			fmt.Fprintf(out, "public:  %s\n", hex.EncodeToString(c.MarshalCompressed(kp.Public)))
			return nil
		},
	}
}

func signCommand() *cli.Command {
	return &cli.Command{
		Name:      "sign",
		Usage:     "sign a message, printing a DER signature",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Usage: "hex private key", Required: true},
			hashFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger(cmd)
			defer log.Sync()
			out := cmd.Root().Writer

			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one message argument")
			}
			c, err := loadCurve(cmd, log)
			if err != nil {
				return err
			}
			d, err := loadDigest(cmd)
			if err != nil {
				return err
			}
			priv, err := parseScalar(cmd.String("key"))
			if err != nil {
				return err
			}
			z := d.Int([]byte(cmd.Args().First()))
			sig, err := ecdsa.SignDigest(c, priv, z, rng.Default())
			if err != nil {
				return err
			}
			der, err := sig.Marshal()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, hex.EncodeToString(der))
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "verify a DER signature over a message",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pub", Usage: "hex SEC1 public key", Required: true},
			&cli.StringFlag{Name: "sig", Usage: "hex DER signature", Required: true},
			hashFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger(cmd)
			defer log.Sync()
			out := cmd.Root().Writer

			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one message argument")
			}
			c, err := loadCurve(cmd, log)
			if err != nil {
				return err
			}
			d, err := loadDigest(cmd)
			if err != nil {
				return err
			}
			pub, err := parsePoint(c, cmd.String("pub"))
			if err != nil {
				return err
			}
			der, err := hex.DecodeString(cmd.String("sig"))
			if err != nil {
				return fmt.Errorf("decoding signature: %w", err)
			}
			sig, err := ecdsa.ParseSignature(der)
			if err != nil {
				return err
			}
			if !ecdsa.VerifyDigest(c, pub, d.Int([]byte(cmd.Args().First())), sig) {
				return errInvalidSignature
			}
			fmt.Fprintln(out, "valid")
			return nil
		},
	}
}

func sharedKeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "shared-key",
		Usage: "derive the ECDH shared key with a peer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Usage: "hex private key", Required: true},
			&cli.StringFlag{Name: "pub", Usage: "hex SEC1 public key of the peer", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger(cmd)
			defer log.Sync()
			out := cmd.Root().Writer

			c, err := loadCurve(cmd, log)
			if err != nil {
				return err
			}
			priv, err := parseScalar(cmd.String("key"))
			if err != nil {
				return err
			}
			pub, err := parsePoint(c, cmd.String("pub"))
			if err != nil {
				return err
			}
			key, err := ecdh.SharedKey(c, priv, pub)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, hex.EncodeToString(key))
			return nil
		},
	}
}

func curvesCommand() *cli.Command {
	return &cli.Command{
		Name:  "curves",
		Usage: "list the built-in curves and those in --curves",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger(cmd)
			defer log.Sync()
			out := cmd.Root().Writer

			fmt.Fprintf(out, "built-in: %s\n", strings.Join(curves.Names(), ", "))
			if path := cmd.String("curves"); path != "" {
				f, err := config.Load(path, log)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", path, strings.Join(f.IDs(), ", "))
			}
			return nil
		},
	}
}

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "run an Alice and Bob exchange: key agreement, encryption and signatures",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "message", Value: "Hello Bob, this is Alice.", Usage: "message Alice sends"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger(cmd)
			defer log.Sync()
			out := cmd.Root().Writer

			c, err := loadCurve(cmd, log)
			if err != nil {
				return err
			}
			return runDemo(out, c, []byte(cmd.String("message")), log)
		},
	}
}

func runDemo(out io.Writer, c *curves.Curve, message []byte, log *zap.Logger) error {
	src := rng.Default()

	// 1. Key pairs, each with a proof of possession
	alice, err := keygen.GenerateKeyPair(c, src)
	if err != nil {
		return err
	}
	bob, err := keygen.GenerateKeyPair(c, src)
	if err != nil {
		return err
	}
	for name, kp := range map[string]*keygen.KeyPair{"alice": alice, "bob": bob} {
		proof, err := schnorr.Prove(c, kp.Private, kp.Public, src)
		if err != nil {
			return err
		}
		if !proof.Verify(c, kp.Public) {
			return fmt.Errorf("%s: proof of possession rejected", name)
		}
		log.Debug("public key accepted", zap.String("party", name),
			zap.String("pub", hex.EncodeToString(c.MarshalCompressed(kp.Public))))
	}
	fmt.Fprintf(out, "alice public: %s\n", hex.EncodeToString(c.MarshalCompressed(alice.Public)))
	fmt.Fprintf(out, "bob public:   %s\n", hex.EncodeToString(c.MarshalCompressed(bob.Public)))

	// 2. ECDH
	aliceKey, err := ecdh.SharedKey(c, alice.Private, bob.Public)
	if err != nil {
		return err
	}
	bobKey, err := ecdh.SharedKey(c, bob.Private, alice.Public)
	if err != nil {
		return err
	}
	if !bytes.Equal(aliceKey, bobKey) {
		return fmt.Errorf("shared keys differ")
	}
	fmt.Fprintf(out, "shared key:   %s\n", hex.EncodeToString(aliceKey))

	// 3. Alice encrypts and signs, Bob verifies and decrypts
	aliceBox, err := newBox(aliceKey)
	if err != nil {
		return err
	}
	ciphertext, err := aliceBox.Seal(message, nil)
	if err != nil {
		return err
	}
	sig, err := ecdsa.Sign(c, alice.Private, ciphertext, src)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ciphertext:   %s\n", hex.EncodeToString(ciphertext))

	if !ecdsa.Verify(c, alice.Public, ciphertext, sig) {
		return fmt.Errorf("bob: signature rejected")
	}
	bobBox, err := newBox(bobKey)
	if err != nil {
		return err
	}
	plaintext, err := bobBox.Open(ciphertext, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "bob read:     %q\n", plaintext)
	return nil
}

// newBox derives the encryption key from an ECDH shared key.
func newBox(shared []byte) (*seal.Box, error) {
	key, err := ecdh.ExpandKey(shared, nil, sealInfo, seal.KeySize)
	if err != nil {
		return nil, err
	}
	return seal.New(key)
}

func parseScalar(s string) (*big.Int, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding private key: %w", err)
	}
	return new(big.Int).SetBytes(b), nil
}

func parsePoint(c *curves.Curve, s string) (curves.Point, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return curves.Infinity(), fmt.Errorf("decoding public key: %w", err)
	}
	return c.Unmarshal(b)
}

func scalarLen(c *curves.Curve) int {
	return (c.N().BitLen() + 7) / 8
}
