package crypto

import (
	"encoding/binary"

	"go.uber.org/atomic"
)

// NonceSize is the length of a secretbox nonce in bytes.
const NonceSize = 24

// NoncePrefixSize is the number of leading nonce bytes carried on the wire.
const NoncePrefixSize = 4

// Nonce is a 24-byte value used for encryption.
type Nonce [NonceSize]byte

// Prefix returns the leading bytes of the nonce that are appended to packets.
func (n *Nonce) Prefix() []byte {
	return n[:NoncePrefixSize]
}

// NonceFromPrefix rebuilds a counter nonce from its wire prefix.
// The remaining bytes are zero, matching CounterNonceSource.
func NonceFromPrefix(prefix []byte) (Nonce, error) {
	var nonce Nonce
	if len(prefix) != NoncePrefixSize {
		return nonce, ErrInvalidNonce
	}
	copy(nonce[:], prefix)
	return nonce, nil
}

// NonceSource hands out a fresh nonce for every encrypted unit.
type NonceSource interface {
	NextNonce() (Nonce, error)
}

// CounterNonceSource produces nonces whose first four bytes hold a big-endian
// 32-bit counter and whose remaining bytes are zero. The counter wraps at 2^32.
//
// One source is shared by every stream of a connection; it is safe for
// concurrent use.
type CounterNonceSource struct {
	counter *atomic.Uint32
}

// NewCounterNonceSource creates a counter source starting at zero; the first
// nonce handed out carries the value 1.
func NewCounterNonceSource() *CounterNonceSource {
	return NewCounterNonceSourceAt(0)
}

// NewCounterNonceSourceAt creates a counter source whose next nonce carries start+1.
func NewCounterNonceSourceAt(start uint32) *CounterNonceSource {
	return &CounterNonceSource{counter: atomic.NewUint32(start)}
}

// NextNonce increments the counter and returns the corresponding nonce.
func (s *CounterNonceSource) NextNonce() (Nonce, error) {
	var nonce Nonce
	binary.BigEndian.PutUint32(nonce[:NoncePrefixSize], s.counter.Inc())
	return nonce, nil
}

// Current returns the value carried by the most recently issued nonce.
func (s *CounterNonceSource) Current() uint32 {
	return s.counter.Load()
}
