package rtp

import (
	"errors"
	"time"

	"github.com/opd-ai/voicestream/crypto"
)

// MockConnection records packets instead of writing them to a socket.
type MockConnection struct {
	key      crypto.Key
	nonces   *crypto.CounterNonceSource
	sent     [][]byte
	sendErr  error
	failAt   int
	nonceErr error
}

func NewMockConnection() *MockConnection {
	var key crypto.Key
	for i := range key {
		key[i] = byte(0xA0 + i)
	}
	return &MockConnection{
		key:    key,
		nonces: crypto.NewCounterNonceSource(),
		failAt: -1,
	}
}

func (mc *MockConnection) SendPacket(data []byte) error {
	if mc.sendErr != nil && (mc.failAt < 0 || len(mc.sent) == mc.failAt) {
		return mc.sendErr
	}
	mc.sent = append(mc.sent, append([]byte(nil), data...))
	return nil
}

func (mc *MockConnection) NextNonce() (crypto.Nonce, error) {
	if mc.nonceErr != nil {
		return crypto.Nonce{}, mc.nonceErr
	}
	return mc.nonces.NextNonce()
}

func (mc *MockConnection) SecretKey() *crypto.Key {
	return &mc.key
}

func (mc *MockConnection) GetSentPackets() [][]byte {
	return mc.sent
}

// MockTimeProvider returns a fixed, manually advanced time.
type MockTimeProvider struct {
	now time.Time
}

func (m *MockTimeProvider) Now() time.Time { return m.now }

func (m *MockTimeProvider) Advance(d time.Duration) { m.now = m.now.Add(d) }

// failingEncryptor simulates a corrupted session key.
type failingEncryptor struct{}

func (failingEncryptor) Seal([]byte, *crypto.Nonce, *crypto.Key) ([]byte, error) {
	return nil, crypto.ErrInvalidKey
}

var errNetworkDown = errors.New("network is down")
