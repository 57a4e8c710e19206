package primitives

import "crypto/subtle"

// CtEq reports whether a and b are byte-for-byte identical, in constant
// time with respect to their contents. Unequal lengths are reported as
// unequal without a length-revealing early return on the content
// comparison, matching crypto/subtle.ConstantTimeCompare's contract that
// callers must still avoid branching on the length itself where the length
// is secret. Here the length is never secret (tag/MAC sizes are fixed), so
// the early length check is safe.
func CtEq(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
