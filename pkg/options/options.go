// Package options provides a functional-options configuration surface,
// mirroring the lineage's pkg/options: an Options value bundles
// collaborators and encoding choices instead of package-level mutable
// state. The core packages in this module do not consume it; they take
// their collaborators as explicit parameters.
package options

import (
	"log/slog"

	"github.com/fxamacker/cbor/v2"

	"github.com/go-ctap/authenticator-core/pkg/collab"
)

// Options bundles every seam a core component can be configured with. Not
// every component uses every field; a component ignores fields it has no
// use for.
type Options struct {
	Logger  *slog.Logger
	EncMode cbor.EncMode
	Rand    collab.Rand
	Clock   collab.Clock
	Store   collab.Store
}

type Option func(*Options)

// WithLogger injects a structured logger. Components never log secret
// material regardless of the logger's level.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithEncMode overrides the default deterministic CBOR encoding mode.
func WithEncMode(encMode cbor.EncMode) Option {
	return func(opts *Options) {
		opts.EncMode = encMode
	}
}

// WithRand injects the randomness collaborator.
func WithRand(rand collab.Rand) Option {
	return func(opts *Options) {
		opts.Rand = rand
	}
}

// WithClock injects the monotonic millisecond clock collaborator.
func WithClock(clock collab.Clock) Option {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

// WithStore injects the persisted-blob store collaborator.
func WithStore(store collab.Store) Option {
	return func(opts *Options) {
		opts.Store = store
	}
}

// NewOptions applies opts over a set of sane, device-appropriate defaults:
// slog.Default() as the logger, the canonical CTAP2 CBOR encoding mode, and
// crypto/rand-backed randomness. Clock and Store have no safe default and
// are left nil unless WithClock and WithStore supply them.
func NewOptions(opts ...Option) *Options {
	encMode, _ := cbor.CTAP2EncOptions().EncMode()
	oo := &Options{
		Logger:  slog.Default(),
		EncMode: encMode,
		Rand:    collab.RandFunc(cryptoRandRead),
	}

	for _, opt := range opts {
		opt(oo)
	}

	return oo
}
