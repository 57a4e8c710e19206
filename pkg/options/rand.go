package options

import "crypto/rand"

// cryptoRandRead is the default Rand implementation: crypto/rand.Reader,
// which never returns an error in practice on any supported platform. A
// caller on constrained hardware without an OS CSPRNG supplies WithRand
// instead.
func cryptoRandRead(buf []byte) {
	if _, err := rand.Read(buf); err != nil {
		panic("authenticator-core: crypto/rand failed: " + err.Error())
	}
}
