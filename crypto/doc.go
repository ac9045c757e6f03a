// Package crypto implements the packet encryption used on the voice transport.
//
// Media and control packets are sealed with NaCl's secretbox construction
// (XSalsa20 stream cipher with a Poly1305 authenticator) under a 32-byte key
// that the voice server hands out during session setup. This package does not
// negotiate that key; it only consumes it.
//
// # Core Types
//
//   - [Key]: 32-byte shared session key
//   - [Nonce]: 24-byte secretbox nonce
//   - [Encryptor]: the sealing contract used by the packetizer
//   - [SecretBox]: the secretbox implementation of [Encryptor]
//   - [CounterNonceSource]: a shared, wrapping 32-bit nonce counter
//
// # Nonces
//
// Every encrypted unit uses a fresh nonce. The voice server expects counter
// nonces: the first four bytes hold a big-endian counter, the rest are zero,
// and only those four bytes travel on the wire after the ciphertext:
//
//	nonces := crypto.NewCounterNonceSource()
//	nonce, _ := nonces.NextNonce()
//	sealed, err := crypto.NewSecretBox().Seal(payload, &nonce, &key)
//	packet = append(append(header, sealed...), nonce.Prefix()...)
//
// The receiver rebuilds the full nonce with [NonceFromPrefix].
//
// # Key Handling
//
// Keys are parsed with [KeyFromHex] or [KeyFromBytes], both of which reject the
// all-zero key. Call [WipeKey] when a session ends.
//
// # Thread Safety
//
// [SecretBox] is stateless. [CounterNonceSource] is safe for concurrent use.
package crypto
