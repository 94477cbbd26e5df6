//go:build js && wasm

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/internal/crypto/rng"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdh"
	"github.com/smallyu/go-weierstrass/internal/protocol/ecdsa"
	"github.com/smallyu/go-weierstrass/internal/protocol/keygen"
)

func main() {
	c := make(chan struct{})

	fmt.Println("Go Weierstrass WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoWeierstrass", map[string]interface{}{
		"KeyGen":    js.FuncOf(KeyGen),
		"Sign":      js.FuncOf(Sign),
		"Verify":    js.FuncOf(Verify),
		"SharedKey": js.FuncOf(SharedKey),
	})

	<-c
}

// request is the JSON argument of every call. Keys, points and signatures
// travel as hex strings so that JS never sees a number wider than 53 bits.
type request struct {
	Curve     string `json:"curve"`
	Private   string `json:"private"`
	Public    string `json:"public"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// KeyGen generates a key pair.
// Arguments:
// 0: curve name (string)
// Returns:
// JSON {"private": hex, "public": hex SEC1 compressed}
func KeyGen(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (curve)"
	}
	c, ok := curves.ByName(args[0].String())
	if !ok {
		return fmt.Sprintf("error: unknown curve %q", args[0].String())
	}
	kp, err := keygen.GenerateKeyPair(c, rng.Default())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return respond(map[string]string{
		"private": hex.EncodeToString(kp.Private.Bytes()),
		"public":  hex.EncodeToString(c.MarshalCompressed(kp.Public)),
	})
}

// Sign signs a message.
// Arguments:
// 0: JSON {"curve", "private", "message"}
// Returns:
// JSON {"signature": hex DER}
func Sign(this js.Value, args []js.Value) interface{} {
	req, c, errStr := decode(args)
	if errStr != "" {
		return errStr
	}
	priv, err := hex.DecodeString(req.Private)
	if err != nil {
		return fmt.Sprintf("error: invalid private key hex: %v", err)
	}
	sig, err := ecdsa.Sign(c, new(big.Int).SetBytes(priv), []byte(req.Message), rng.Default())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	der, err := sig.Marshal()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return respond(map[string]string{"signature": hex.EncodeToString(der)})
}

// Verify checks a signature.
// Arguments:
// 0: JSON {"curve", "public", "message", "signature"}
// Returns:
// bool
func Verify(this js.Value, args []js.Value) interface{} {
	req, c, errStr := decode(args)
	if errStr != "" {
		return errStr
	}
	pub, err := decodePoint(c, req.Public)
	if err != nil {
		return false
	}
	der, err := hex.DecodeString(req.Signature)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseSignature(der)
	if err != nil {
		return false
	}
	return ecdsa.Verify(c, pub, []byte(req.Message), sig)
}

// SharedKey derives the ECDH key with a peer.
// Arguments:
// 0: JSON {"curve", "private", "public"}
// Returns:
// JSON {"key": hex}
func SharedKey(this js.Value, args []js.Value) interface{} {
	req, c, errStr := decode(args)
	if errStr != "" {
		return errStr
	}
	priv, err := hex.DecodeString(req.Private)
	if err != nil {
		return fmt.Sprintf("error: invalid private key hex: %v", err)
	}
	pub, err := decodePoint(c, req.Public)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	key, err := ecdh.SharedKey(c, new(big.Int).SetBytes(priv), pub)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return respond(map[string]string{"key": hex.EncodeToString(key)})
}

// Helpers

func decode(args []js.Value) (*request, *curves.Curve, string) {
	if len(args) != 1 {
		return nil, nil, "error: expected 1 argument (jsonRequest)"
	}
	var req request
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		return nil, nil, fmt.Sprintf("error: invalid json: %v", err)
	}
	c, ok := curves.ByName(req.Curve)
	if !ok {
		return nil, nil, fmt.Sprintf("error: unknown curve %q", req.Curve)
	}
	return &req, c, ""
}

func decodePoint(c *curves.Curve, s string) (curves.Point, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return curves.Infinity(), err
	}
	return c.Unmarshal(b)
}

func respond(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
