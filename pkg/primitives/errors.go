package primitives

import "errors"

var (
	// ErrInvalidPoint is returned when a peer-supplied EC point is off-curve
	// or the point at infinity.
	ErrInvalidPoint = errors.New("primitives: point not on curve or is identity")
	// ErrAeadAuth is returned when an AES-256-GCM tag fails to verify.
	ErrAeadAuth = errors.New("primitives: AEAD authentication failed")
	// ErrInvalidLength is returned when a CBC input is not a positive
	// multiple of the AES block size, when a CBC IV is not one block long,
	// or when a GCM nonce is not the standard 12 bytes.
	ErrInvalidLength = errors.New("primitives: input, IV or nonce has invalid length")
	// ErrInvalidScalar is returned when a candidate P-256 private scalar is
	// zero or exceeds the curve order.
	ErrInvalidScalar = errors.New("primitives: scalar is zero or exceeds curve order")
)
