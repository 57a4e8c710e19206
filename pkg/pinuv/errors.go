package pinuv

import "errors"

var (
	// ErrInvalidLength is returned for inputs with the wrong byte length:
	// a ciphertext too short to contain an IV, or an RP ID longer than
	// this core accepts.
	ErrInvalidLength = errors.New("pinuv: input has invalid length")
	// ErrNotInUse is returned by operations that only make sense while a
	// pinUvAuthToken is currently in use. Reaching it means the caller
	// above this package has a sequencing bug: a well-behaved dispatcher
	// never calls BindPermissions outside a live token.
	ErrNotInUse = errors.New("pinuv: no pinUvAuthToken is currently in use")
)
