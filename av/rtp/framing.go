package rtp

import (
	"math"

	pionrtp "github.com/pion/rtp"
	"github.com/pion/rtp/codecs"
)

// Framer splits one access unit into the ordered payloads of its packets.
//
// Each media kind gets its own Framer; the packetizer marks the packet
// carrying the final payload.
type Framer interface {
	Frame(accessUnit []byte, mtu int) [][]byte
}

// FramerFunc adapts a function to the Framer interface.
type FramerFunc func(accessUnit []byte, mtu int) [][]byte

// Frame calls f.
func (f FramerFunc) Frame(accessUnit []byte, mtu int) [][]byte {
	return f(accessUnit, mtu)
}

// ChunkFramer splits access units into plain MTU-sized pieces.
var ChunkFramer Framer = FramerFunc(Chunk)

// PayloaderFramer frames access units with a codec-aware pion payloader.
type PayloaderFramer struct {
	payloader pionrtp.Payloader
}

// NewPayloaderFramer wraps a pion/rtp payloader.
func NewPayloaderFramer(p pionrtp.Payloader) *PayloaderFramer {
	return &PayloaderFramer{payloader: p}
}

// Frame delegates to the wrapped payloader.
func (f *PayloaderFramer) Frame(accessUnit []byte, mtu int) [][]byte {
	if mtu <= 0 {
		mtu = DefaultMTU
	}
	if mtu > math.MaxUint16 {
		mtu = math.MaxUint16
	}
	return f.payloader.Payload(uint16(mtu), accessUnit)
}

// DefaultFramer returns a fresh framer for the codec. Payloaders keep
// per-stream state (picture ids, cached parameter sets), so framers are
// never shared between packetizers.
func DefaultFramer(codec Codec) Framer {
	switch codec.Name {
	case CodecOpus:
		return NewPayloaderFramer(&codecs.OpusPayloader{})
	case CodecH264:
		return NewPayloaderFramer(&codecs.H264Payloader{})
	case CodecVP8:
		return NewPayloaderFramer(&codecs.VP8Payloader{EnablePictureID: true})
	case CodecVP9:
		return NewPayloaderFramer(&codecs.VP9Payloader{})
	case CodecAV1:
		return NewPayloaderFramer(&codecs.AV1Payloader{})
	default:
		return ChunkFramer
	}
}
