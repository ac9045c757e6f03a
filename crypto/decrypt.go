package crypto

import (
	"golang.org/x/crypto/nacl/secretbox"
)

// Open authenticates and decrypts a message produced by Seal.
func (SecretBox) Open(ciphertext []byte, nonce *Nonce, key *Key) ([]byte, error) {
	if key == nil || key.IsZero() {
		return nil, ErrInvalidKey
	}
	if nonce == nil {
		return nil, ErrInvalidNonce
	}
	if len(ciphertext) < Overhead {
		return nil, ErrDecryptFailed
	}

	out, ok := secretbox.Open(nil, ciphertext, (*[NonceSize]byte)(nonce), (*[KeySize]byte)(key))
	if !ok {
		NewLogger("SecretBox.Open").
			WithField("ciphertext_size", len(ciphertext)).
			WithFields(NoncePreview(nonce)).
			Debug("Message authentication failed")
		return nil, ErrDecryptFailed
	}

	return out, nil
}
