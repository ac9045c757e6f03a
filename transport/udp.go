package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/opd-ai/voicestream/crypto"
	"github.com/sirupsen/logrus"
)

// ErrClosed indicates an operation on a closed connection.
var ErrClosed = errors.New("connection closed")

// maxDatagramSize bounds the receive buffer.
const maxDatagramSize = 2048

// readTimeout lets the receive loop notice Close between datagrams.
const readTimeout = 100 * time.Millisecond

// PacketHandler processes a datagram received from the socket.
// The data slice is only valid for the duration of the call.
type PacketHandler func(data []byte, addr net.Addr)

// UDPConn is the keyed UDP session the packetizers write through.
// It satisfies rtp.Connection and is safe for concurrent use: sends are
// serialized so packets from the audio and video streams never interleave
// mid-write.
type UDPConn struct {
	conn   net.PacketConn
	remote net.Addr
	nonces crypto.NonceSource

	mu     sync.Mutex
	key    crypto.Key
	closed bool

	handlerMu sync.RWMutex
	handler   PacketHandler

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewUDPConn wraps an open packet connection. nonces may be nil, in which
// case a counter nonce source starting at zero is used.
func NewUDPConn(pc net.PacketConn, remote net.Addr, key crypto.Key, nonces crypto.NonceSource) (*UDPConn, error) {
	if pc == nil {
		return nil, errors.New("packet connection cannot be nil")
	}
	if remote == nil {
		return nil, errors.New("remote address cannot be nil")
	}
	if key.IsZero() {
		logrus.WithFields(logrus.Fields{
			"function": "NewUDPConn",
			"remote":   remote.String(),
		}).Error("Refusing to create connection without session key")
		return nil, crypto.ErrInvalidKey
	}
	if nonces == nil {
		nonces = crypto.NewCounterNonceSource()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &UDPConn{
		conn:   pc,
		remote: remote,
		nonces: nonces,
		key:    key,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go c.processPackets()

	logrus.WithFields(logrus.Fields{
		"function": "NewUDPConn",
		"local":    pc.LocalAddr().String(),
		"remote":   remote.String(),
	}).Info("UDP connection ready")

	return c, nil
}

// Dial opens an unconnected UDP socket on an ephemeral port and targets
// remote with it.
func Dial(remote string, key crypto.Key) (*UDPConn, error) {
	addr, err := net.ResolveUDPAddr("udp", remote)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", remote, err)
	}

	pc, err := net.ListenPacket("udp", ":0")
	if err != nil {
		return nil, err
	}

	c, err := NewUDPConn(pc, addr, key, nil)
	if err != nil {
		pc.Close()
		return nil, err
	}
	return c, nil
}

// SetHandler registers the handler for datagrams arriving on the socket,
// such as receiver reports from the server. A nil handler drops them.
func (c *UDPConn) SetHandler(handler PacketHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()

	c.handler = handler
}

// SendPacket writes one datagram to the remote address.
func (c *UDPConn) SendPacket(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	_, err := c.conn.WriteTo(data, c.remote)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "UDPConn.SendPacket",
			"remote":   c.remote.String(),
			"size":     len(data),
			"error":    err.Error(),
		}).Debug("UDP write failed")
	}
	return err
}

// NextNonce returns the next nonce of the session.
func (c *UDPConn) NextNonce() (crypto.Nonce, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return crypto.Nonce{}, ErrClosed
	}
	return c.nonces.NextNonce()
}

// SecretKey returns a copy of the session key. After Close the copy is the
// zero key, which every Encryptor rejects.
func (c *UDPConn) SecretKey() *crypto.Key {
	c.mu.Lock()
	key := c.key
	c.mu.Unlock()
	return &key
}

// LocalAddr returns the local address of the socket.
func (c *UDPConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the address packets are sent to.
func (c *UDPConn) RemoteAddr() net.Addr {
	return c.remote
}

// Close stops the receive loop, wipes the session key and closes the socket.
// Closing twice is a no-op.
func (c *UDPConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	_ = crypto.WipeKey(&c.key)
	c.mu.Unlock()

	c.cancel()
	err := c.conn.Close()
	<-c.done

	logrus.WithFields(logrus.Fields{
		"function": "UDPConn.Close",
		"remote":   c.remote.String(),
	}).Info("UDP connection closed")

	return err
}

// processPackets handles incoming datagrams until Close.
func (c *UDPConn) processPackets() {
	defer close(c.done)
	buffer := make([]byte, maxDatagramSize)

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			c.processIncomingPacket(buffer)
		}
	}
}

// processIncomingPacket reads a single datagram and dispatches it.
func (c *UDPConn) processIncomingPacket(buffer []byte) {
	_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))

	n, addr, err := c.conn.ReadFrom(buffer)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return
		}
		if c.ctx.Err() == nil {
			logrus.WithFields(logrus.Fields{
				"function": "UDPConn.processIncomingPacket",
				"error":    err.Error(),
			}).Debug("UDP read failed")
		}
		return
	}

	c.handlerMu.RLock()
	handler := c.handler
	c.handlerMu.RUnlock()

	if handler != nil {
		handler(buffer[:n], addr)
	}
}
