package ecc

import "math/big"

// RandomSource supplies the randomness used for private keys and signing
// nonces.
//
// Implementations are not required to be safe for concurrent use. A source
// shared between goroutines must either be internally synchronized or be
// wrapped (see rng.Locked).
type RandomSource interface {
	// Int returns a uniformly distributed integer in [0, max).
	// max must be positive.
	Int(max *big.Int) (*big.Int, error)
}
