package rtp

import "encoding/binary"

// HeaderSize is the length of the fixed RTP header; no CSRCs are ever sent.
const HeaderSize = 12

const (
	rtpVersion     = 2
	versionShift   = 6
	extensionBit   = 0x10
	markerBit      = 0x80
	payloadMask    = 0x7F
	sequenceIndex  = 2
	timestampIndex = 4
	ssrcIndex      = 8
)

// BuildHeader writes a 12-byte RTP header and consumes one sequence number
// from c.
//
// Byte 0 carries version 2, no padding, the extension bit when
// extensionEnabled and a zero CSRC count. Byte 1 carries the payload type
// with the marker bit set on the last packet of an access unit.
func BuildHeader(c *Counters, payloadType uint8, ssrc uint32, isLastPacket, extensionEnabled bool) [HeaderSize]byte {
	var header [HeaderSize]byte

	header[0] = rtpVersion << versionShift
	if extensionEnabled {
		header[0] |= extensionBit
	}

	header[1] = payloadType & payloadMask
	if isLastPacket {
		header[1] |= markerBit
	}

	putSequence(&header, c.NextSequence())
	putTimestamp(&header, c.Timestamp())
	putSSRC(&header, ssrc)

	return header
}

func putSequence(header *[HeaderSize]byte, seq uint16) {
	binary.BigEndian.PutUint16(header[sequenceIndex:], seq)
}

func putTimestamp(header *[HeaderSize]byte, ts uint32) {
	binary.BigEndian.PutUint32(header[timestampIndex:], ts)
}

func putSSRC(header *[HeaderSize]byte, ssrc uint32) {
	binary.BigEndian.PutUint32(header[ssrcIndex:], ssrc)
}
