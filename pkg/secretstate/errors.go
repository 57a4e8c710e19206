package secretstate

import "errors"

var (
	// ErrNotFound is returned by Load when the store has nothing to load.
	ErrNotFound = errors.New("secretstate: no persisted blob found")
	// ErrCorrupt is returned when a persisted blob fails to decode, or
	// decodes but meta.valid is false.
	ErrCorrupt = errors.New("secretstate: persisted blob is corrupt or invalid")
	// ErrPinInvalid is returned by ValidatePin when the storage key derived
	// from the candidate PIN fails to open SecretData.
	ErrPinInvalid = errors.New("secretstate: PIN does not match")
	// ErrPinBlocked is returned once pin_retries has been exhausted. Only
	// Reset restores the retry counter from that state.
	ErrPinBlocked = errors.New("secretstate: PIN retries exhausted, factory reset required")
	// ErrInvalidLength is returned when a candidate PIN's length falls
	// outside [1, MaxPinLength].
	ErrInvalidLength = errors.New("secretstate: PIN length out of range")
)
