package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/go-ctap/authenticator-core/pkg/credential"
	"github.com/go-ctap/authenticator-core/pkg/filestore"
	"github.com/go-ctap/authenticator-core/pkg/memstore"
	"github.com/go-ctap/authenticator-core/pkg/pinuv"
	"github.com/go-ctap/authenticator-core/pkg/secretstate"
	"github.com/go-ctap/authenticator-core/pkg/wire"
)

func main() {
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelDebug)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})).With("powerUpInstance", uuid.NewString())

	if len(os.Args) < 2 {
		fmt.Println("usage: authnrdemo <state-file-path>")
		os.Exit(1)
	}
	path := os.Args[1]

	encMode, err := cbor.CTAP2EncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	store := filestore.New(path)
	rnd := memstore.NewRand()
	clock := memstore.NewClock(0)

	if _, err := secretstate.Load(store); err == nil {
		panic("demo does not persist Ks across runs; delete the state file and rerun")
	}

	logger.Info("no persisted state found, resetting device", "path", path)
	pd, sd, _, err := secretstate.Reset(store, encMode, rnd, [12]byte{})
	if err != nil {
		panic(err)
	}
	sd.Zeroize()

	logger.Info("validating default PIN")
	opened, _, err := secretstate.ValidatePin(store, encMode, pd, []byte(secretstate.DefaultPin))
	if err != nil {
		panic(err)
	}
	defer opened.Zeroize()
	fmt.Printf("PIN valid, retries remaining: %d, forcePinChange: %t\n", pd.Meta.PinRetries, pd.ForcePinChange)

	logger.Info("minting a credential")
	credID, priv, err := credential.NewCredential(opened.MasterSecret, rnd.Read, nil)
	if err != nil {
		panic(err)
	}
	rederived, err := credential.DeriveCredential(opened.MasterSecret, credID, nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("credential ID: %x, keys match after rederivation: %t\n",
		credID, bytes.Equal(priv.PublicKey().Bytes(), rederived.PublicKey().Bytes()))

	logger.Info("running a PIN/UV Auth Protocol Two handshake")
	platform := &pinuv.KeyAgreement{}
	if err := platform.Initialize(rnd.Read); err != nil {
		panic(err)
	}
	authenticator := &pinuv.KeyAgreement{}
	if err := authenticator.Initialize(rnd.Read); err != nil {
		panic(err)
	}

	platformPub, err := platform.GetPublicKey()
	if err != nil {
		panic(err)
	}
	authenticatorPub, err := authenticator.GetPublicKey()
	if err != nil {
		panic(err)
	}

	platformHMAC, platformAES, err := platform.ECDH(authenticatorPub)
	if err != nil {
		panic(err)
	}
	authHMAC, authAES, err := authenticator.ECDH(platformPub)
	if err != nil {
		panic(err)
	}
	fmt.Printf("shared keys agree: %t\n",
		bytes.Equal(platformHMAC, authHMAC) && bytes.Equal(platformAES, authAES))

	tokenState := pinuv.NewTokenState(clock)
	pinToken := make([]byte, 32)
	rnd.Read(pinToken)
	tokenState.BeginUsing(pinToken, wire.PermissionGetAssertion, true)

	ciphertext, err := pinuv.Encrypt(rnd.Read, authAES, pinToken)
	if err != nil {
		panic(err)
	}
	plaintext, err := pinuv.Decrypt(authAES, ciphertext)
	if err != nil {
		panic(err)
	}
	fmt.Printf("token round-trips through transport encryption: %t\n", bytes.Equal(plaintext, pinToken))

	logger.Info("exercising the token timeout state machine")
	tokenState.Observe()
	fmt.Printf("in use after fresh BeginUsing: %t\n", tokenState.IsInUse())
	clock.Advance(pinuv.InitialUsageTimeLimitMS + 1)
	tokenState.Observe()
	fmt.Printf("in use after initial-usage timeout with no activity: %t\n", tokenState.IsInUse())
}
