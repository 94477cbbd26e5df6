// Package rng provides ecc.RandomSource implementations.
package rng

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

var one = big.NewInt(1)

// Reader draws uniform integers from an io.Reader, normally crypto/rand.
// It is as safe for concurrent use as the underlying reader.
type Reader struct {
	r io.Reader
}

// New returns a Reader backed by r.
func New(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Default returns a Reader backed by crypto/rand.Reader.
func Default() *Reader {
	return New(crand.Reader)
}

// Int returns a uniform integer in [0, max).
func (s *Reader) Int(max *big.Int) (*big.Int, error) {
	if max == nil || max.Sign() <= 0 {
		return nil, errors.New("rng: max must be positive")
	}
	return crand.Int(s.r, max)
}

// Sequence replays a fixed list of values. It is meant for tests that need
// reproducible keys and nonces, and is not safe for concurrent use.
type Sequence struct {
	values []*big.Int
	next   int
	cycle  bool
}

// NewSequence returns a Sequence that yields values in order and then fails
// with io.ErrUnexpectedEOF.
func NewSequence(values ...int64) *Sequence {
	s := &Sequence{}
	for _, v := range values {
		s.values = append(s.values, big.NewInt(v))
	}
	return s
}

// NewCycle returns a Sequence that starts over after its last value.
func NewCycle(values ...int64) *Sequence {
	s := NewSequence(values...)
	s.cycle = true
	return s
}

// NewBigSequence is NewSequence for values that do not fit in an int64.
func NewBigSequence(values ...*big.Int) *Sequence {
	s := &Sequence{}
	for _, v := range values {
		s.values = append(s.values, new(big.Int).Set(v))
	}
	return s
}

// Int returns the next value. A value outside [0, max) is an error rather
// than being silently reduced.
func (s *Sequence) Int(max *big.Int) (*big.Int, error) {
	if max == nil || max.Sign() <= 0 {
		return nil, errors.New("rng: max must be positive")
	}
	if s.next >= len(s.values) {
		if !s.cycle || len(s.values) == 0 {
			return nil, io.ErrUnexpectedEOF
		}
		s.next = 0
	}
	v := s.values[s.next]
	s.next++
	if v.Sign() < 0 || v.Cmp(max) >= 0 {
		return nil, fmt.Errorf("rng: sequence value %s outside [0, %s)", v, max)
	}
	return new(big.Int).Set(v), nil
}

// Remaining returns how many values are left before the sequence ends.
func (s *Sequence) Remaining() int {
	return len(s.values) - s.next
}

// Locked serializes access to a source that is not safe for concurrent use.
type Locked struct {
	mu  sync.Mutex
	src ecc.RandomSource
}

// NewLocked wraps src.
func NewLocked(src ecc.RandomSource) *Locked {
	return &Locked{src: src}
}

// Int calls the wrapped source under a mutex.
func (l *Locked) Int(max *big.Int) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Int(max)
}

// Between returns a uniform integer in [lo, hi) drawn from src. A value from
// src outside [0, hi-lo) is an error, so a broken source cannot push the
// result out of range.
func Between(src ecc.RandomSource, lo, hi *big.Int) (*big.Int, error) {
	width := new(big.Int).Sub(hi, lo)
	if width.Sign() <= 0 {
		return nil, fmt.Errorf("rng: empty range [%s, %s)", lo, hi)
	}
	v, err := src.Int(width)
	if err != nil {
		return nil, err
	}
	if v == nil || v.Sign() < 0 || v.Cmp(width) >= 0 {
		return nil, fmt.Errorf("rng: source returned %v outside [0, %s)", v, width)
	}
	return new(big.Int).Add(v, lo), nil
}

// Scalar returns a uniform integer in [1, n-1], the range of private keys
// and signing nonces.
func Scalar(src ecc.RandomSource, n *big.Int) (*big.Int, error) {
	return Between(src, one, n)
}
