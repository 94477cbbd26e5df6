package keygen

import (
	"math/big"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
)

// KeyPair is a private scalar together with its public point.
//
// Invariant: Public = Private·G and Private is in [1, n-1].
type KeyPair struct {
	Private *big.Int
	Public  curves.Point
}
