package ecc

import "fmt"

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrDivisionByZero is returned when a modular inverse is requested for a
	// value congruent to zero modulo the modulus.
	ErrDivisionByZero = ErrorKind("ErrDivisionByZero")

	// ErrNotInvertible is returned when a value shares a factor with a
	// composite modulus and therefore has no inverse.
	ErrNotInvertible = ErrorKind("ErrNotInvertible")

	// ErrInvalidKeyAgreement is returned when an ECDH computation lands on
	// the point at infinity.
	ErrInvalidKeyAgreement = ErrorKind("ErrInvalidKeyAgreement")

	// ErrRandomSourceExhausted is returned when the signing loop does not
	// find a usable nonce within its retry ceiling.
	ErrRandomSourceExhausted = ErrorKind("ErrRandomSourceExhausted")

	// ErrInvalidPrivateKey is returned when a private scalar is outside
	// [1, n-1].
	ErrInvalidPrivateKey = ErrorKind("ErrInvalidPrivateKey")

	// ErrPointNotOnCurve is returned when a point does not satisfy the curve
	// equation.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrInvalidParams is returned when curve domain parameters are missing
	// or inconsistent.
	ErrInvalidParams = ErrorKind("ErrInvalidParams")

	// ErrUnknownCurve is returned when a curve identifier is not present in
	// a curve file.
	ErrUnknownCurve = ErrorKind("ErrUnknownCurve")

	// ErrInvalidEncoding is returned when serialized points or signatures
	// are malformed.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to curve arithmetic or the protocols
// built on it.  It has full support for errors.Is and errors.As, so the
// caller can ascertain the specific reason for the error by checking the
// underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error given a set of arguments.
func NewError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// Errorf creates an Error with a formatted description.
func Errorf(kind ErrorKind, format string, args ...interface{}) Error {
	return Error{Err: kind, Description: fmt.Sprintf(format, args...)}
}
