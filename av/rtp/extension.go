package rtp

import "encoding/binary"

// One-byte header extension layout (RFC 8285) carrying a single
// playout-delay element.
const (
	// ExtensionProfile is the one-byte header extension magic.
	ExtensionProfile = 0xBEDE

	// PlayoutDelayExtensionID is the negotiated id of the playout-delay element.
	PlayoutDelayExtensionID = 5

	// ExtensionBlockSize is the profile word plus one 32-bit element.
	ExtensionBlockSize = 8

	playoutDelayElements = 1
	playoutDelayLength   = 2
)

// BuildPlayoutDelayExtension returns the extension block that follows the
// header when extensions are enabled.
//
// The min/max delay pair is always zero.
func BuildPlayoutDelayExtension() [ExtensionBlockSize]byte {
	var block [ExtensionBlockSize]byte

	binary.BigEndian.PutUint16(block[0:2], ExtensionProfile)
	binary.BigEndian.PutUint16(block[2:4], playoutDelayElements)
	block[4] = PlayoutDelayExtensionID<<4 | (playoutDelayLength - 1)
	// block[5:8]: 12-bit min delay, 12-bit max delay, left zero

	return block
}
