package av

import (
	"errors"
	"sync"

	"github.com/opd-ai/voicestream/crypto"
)

// MockConnection records packets in memory and is safe for concurrent use.
type MockConnection struct {
	mu      sync.Mutex
	key     crypto.Key
	nonces  *crypto.CounterNonceSource
	sent    [][]byte
	sendErr error
}

func NewMockConnection() *MockConnection {
	var key crypto.Key
	for i := range key {
		key[i] = byte(i * 7)
	}
	key[0] = 0x42
	return &MockConnection{key: key, nonces: crypto.NewCounterNonceSource()}
}

func (mc *MockConnection) SendPacket(data []byte) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.sendErr != nil {
		return mc.sendErr
	}
	mc.sent = append(mc.sent, append([]byte(nil), data...))
	return nil
}

func (mc *MockConnection) NextNonce() (crypto.Nonce, error) {
	return mc.nonces.NextNonce()
}

func (mc *MockConnection) SecretKey() *crypto.Key {
	return &mc.key
}

func (mc *MockConnection) SetSendError(err error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.sendErr = err
}

func (mc *MockConnection) GetSentPackets() [][]byte {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return append([][]byte(nil), mc.sent...)
}

var errNetworkDown = errors.New("network is down")
