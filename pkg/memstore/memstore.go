// Package memstore provides in-memory reference implementations of the
// collab.Rand, collab.Clock, and collab.Store seams, suitable as the
// default collaborator set for unit tests and the demo binary. None of
// them survive process restart; production callers want filestore or a
// platform-specific equivalent instead.
package memstore

import (
	"crypto/rand"
	"sync"

	"github.com/go-ctap/authenticator-core/pkg/collab"
)

// Rand is a collab.Rand backed by crypto/rand.Reader.
type Rand struct{}

func NewRand() Rand { return Rand{} }

func (Rand) Read(buf []byte) {
	if _, err := rand.Read(buf); err != nil {
		panic("memstore: crypto/rand failed: " + err.Error())
	}
}

// Clock is a collab.Clock whose value advances only when the test or demo
// caller tells it to, via Advance. It never touches wall-clock time, which
// makes token-timeout tests deterministic.
type Clock struct {
	mu  sync.Mutex
	now uint32
}

func NewClock(start uint32) *Clock {
	return &Clock{now: start}
}

func (c *Clock) NowMS() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by deltaMS milliseconds, wrapping modulo
// 2^32 the same way a real monotonic millisecond counter would.
func (c *Clock) Advance(deltaMS uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += deltaMS
}

// Store is a mutex-guarded in-memory collab.Store. Construction is safe
// for concurrent use even though the authenticator core itself never
// shares a Store across goroutines.
type Store struct {
	mu   sync.Mutex
	blob []byte
	set  bool
}

func NewStore() *Store { return &Store{} }

func (s *Store) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, collab.ErrNotFound
	}
	return append([]byte{}, s.blob...), nil
}

func (s *Store) Store(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = append([]byte{}, blob...)
	s.set = true
	return nil
}
