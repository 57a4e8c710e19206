// Package wire holds the small slice of CTAP2 wire vocabulary that the
// authenticator core shares with whatever dispatcher sits above it: the
// PIN/UV auth protocol identifier and the permissions bitmask. CBOR framing
// of full command/response messages is the dispatcher's job, not this
// package's.
package wire

// PinUvAuthProtocol identifies which PIN/UV auth protocol a shared secret,
// token, or request was negotiated under.
type PinUvAuthProtocol uint

const (
	PinUvAuthProtocolOne PinUvAuthProtocol = iota + 1
	PinUvAuthProtocolTwo
)

// Permission is the 8-bit bitmask CTAP2 attaches to a pinUvAuthToken to
// scope which commands it may authorize.
type Permission byte

const (
	PermissionNone                                   Permission = 0x00
	PermissionMakeCredential                         Permission = 0x01
	PermissionGetAssertion                           Permission = 0x02
	PermissionCredentialManagement                   Permission = 0x04
	PermissionBioEnrollment                          Permission = 0x08
	PermissionLargeBlobWrite                         Permission = 0x10
	PermissionAuthenticatorConfiguration             Permission = 0x20
	PermissionPersistentCredentialManagementReadOnly Permission = 0x40
)
