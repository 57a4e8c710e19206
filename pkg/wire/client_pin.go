package wire

import "github.com/ldclabs/cose/key"

// ClientPINSubCommand enumerates the authenticatorClientPIN subcommands this
// core's operations correspond to.
type ClientPINSubCommand byte

const (
	ClientPINSubCommandGetPINRetries ClientPINSubCommand = iota + 1
	ClientPINSubCommandGetKeyAgreement
	ClientPINSubCommandSetPIN
	ClientPINSubCommandChangePIN
	ClientPINSubCommandGetPinToken
	ClientPINSubCommandGetPinUvAuthTokenUsingUvWithPermissions
	ClientPINSubCommandGetUVRetries
	_
	ClientPINSubCommandGetPinUvAuthTokenUsingPinWithPermissions
)

// ClientPINRequest mirrors the authenticatorClientPIN request CBOR map.
// The core never decodes this itself (CBOR framing lives in the dispatcher
// that sits above it) but every field the core's operations need is named
// here so that dispatcher and core agree on shape.
type ClientPINRequest struct {
	PinUvAuthProtocol PinUvAuthProtocol   `cbor:"1,keyasint,omitzero"`
	SubCommand        ClientPINSubCommand `cbor:"2,keyasint"`
	KeyAgreement      key.Key             `cbor:"3,keyasint,omitzero"`
	PinUvAuthParam    []byte              `cbor:"4,keyasint,omitempty"`
	NewPinEnc         []byte              `cbor:"5,keyasint,omitempty"`
	PinHashEnc        []byte              `cbor:"6,keyasint,omitempty"`
	Permissions       Permission          `cbor:"9,keyasint,omitempty"`
	RPID              string              `cbor:"10,keyasint,omitempty"`
}

// ClientPINResponse mirrors the authenticatorClientPIN response CBOR map.
type ClientPINResponse struct {
	KeyAgreement    key.Key `cbor:"1,keyasint"`
	PinUvAuthToken  []byte  `cbor:"2,keyasint"`
	PinRetries      uint    `cbor:"3,keyasint"`
	PowerCycleState bool    `cbor:"4,keyasint"`
	UvRetries       uint    `cbor:"5,keyasint"`
}
