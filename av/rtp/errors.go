package rtp

import "errors"

// Sentinel errors for rtp package operations.
// These errors enable reliable error classification using errors.Is().

// Construction errors.
var (
	// ErrUnsupportedCodec indicates a codec name missing from the payload type table.
	ErrUnsupportedCodec = errors.New("unsupported codec")

	// ErrNilConnection indicates the packetizer was built without a connection.
	ErrNilConnection = errors.New("connection cannot be nil")
)

// Send errors.
var (
	// ErrEmptyFrame indicates SendFrame was called without media data.
	ErrEmptyFrame = errors.New("frame cannot be empty")

	// ErrEncryptFailed indicates the connection's key or nonce could not seal a packet.
	ErrEncryptFailed = errors.New("packet encryption failed")

	// ErrSendFailed indicates the connection rejected a packet.
	ErrSendFailed = errors.New("packet send failed")
)

// Receive errors.
var (
	// ErrMalformedPacket indicates a packet too short or inconsistent to open.
	ErrMalformedPacket = errors.New("malformed packet")
)
