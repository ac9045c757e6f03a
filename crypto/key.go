package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// KeyFromBytes copies a raw 32-byte session key.
func KeyFromBytes(b []byte) (Key, error) {
	var key Key
	if len(b) != KeySize {
		NewLogger("KeyFromBytes").
			WithField("length", len(b)).
			WithError(ErrInvalidKey, "validation", "key_parse").
			Warn("Rejected session key of wrong length")
		return key, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, KeySize, len(b))
	}
	copy(key[:], b)
	if key.IsZero() {
		NewLogger("KeyFromBytes").
			WithError(ErrInvalidKey, "validation", "key_parse").
			Warn("Rejected all-zero session key")
		return key, ErrInvalidKey
	}
	return key, nil
}

// KeyFromHex decodes a session key given as 64 hexadecimal characters.
func KeyFromHex(s string) (Key, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	defer SecureWipe(raw)
	return KeyFromBytes(raw)
}

// GenerateKey creates a random session key, for tests and local demos where
// no key agreement takes place.
func GenerateKey() (Key, error) {
	var key Key
	if _, err := rand.Read(key[:]); err != nil {
		NewLogger("GenerateKey").
			WithError(err, "entropy", "key_generation").
			Error("Failed to read random key material")
		return Key{}, err
	}
	NewLogger("GenerateKey").Info("Generated random session key")
	return key, nil
}
