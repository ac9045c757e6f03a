package crypto

import (
	"errors"

	"golang.org/x/crypto/nacl/secretbox"
)

// KeySize is the length of the shared session key in bytes.
const KeySize = 32

// Overhead is the number of bytes the authentication tag adds to a sealed message.
const Overhead = secretbox.Overhead

// Key is the 32-byte secret shared with the voice server for one session.
type Key [KeySize]byte

// IsZero reports whether the key has not been set (or has been wiped).
func (k *Key) IsZero() bool {
	var zero Key
	return *k == zero
}

// Encryptor seals plaintext with authenticated symmetric encryption.
//
// Implementations must not retain the key or nonce after returning.
type Encryptor interface {
	Seal(plaintext []byte, nonce *Nonce, key *Key) ([]byte, error)
}

// Sentinel errors for the crypto package.
var (
	// ErrInvalidKey indicates a missing or all-zero session key.
	ErrInvalidKey = errors.New("invalid session key")

	// ErrInvalidNonce indicates a nil nonce was supplied.
	ErrInvalidNonce = errors.New("invalid nonce")

	// ErrDecryptFailed indicates the ciphertext failed authentication.
	ErrDecryptFailed = errors.New("decryption failed: message authentication failed")
)

// SecretBox implements Encryptor with NaCl's secretbox construction
// (XSalsa20 + Poly1305).
type SecretBox struct{}

// NewSecretBox returns the secretbox encryptor.
func NewSecretBox() SecretBox {
	return SecretBox{}
}

// Seal encrypts plaintext and prepends the 16-byte Poly1305 tag.
// An empty plaintext is valid and produces a tag-only ciphertext.
func (SecretBox) Seal(plaintext []byte, nonce *Nonce, key *Key) ([]byte, error) {
	if key == nil || key.IsZero() {
		NewLogger("SecretBox.Seal").
			WithError(ErrInvalidKey, "validation", "seal").
			Error("Refusing to encrypt with invalid key")
		return nil, ErrInvalidKey
	}
	if nonce == nil {
		return nil, ErrInvalidNonce
	}

	out := secretbox.Seal(make([]byte, 0, len(plaintext)+Overhead), plaintext, (*[NonceSize]byte)(nonce), (*[KeySize]byte)(key))
	return out, nil
}
