package rtp

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/opd-ai/voicestream/crypto"
)

// Sender report layout. The 8-byte header travels in the clear, the 20-byte
// sender info is sealed, and the nonce prefix closes the packet.
const (
	SenderReportHeaderSize = 8
	SenderInfoSize         = 20
	SenderReportSize       = SenderReportHeaderSize + SenderInfoSize + crypto.Overhead + crypto.NoncePrefixSize

	rtcpVersionByte      = 0x80
	rtcpTypeSenderReport = 200
	senderReportLength   = 6
)

// SenderInfo carries the statistics reported for one stream.
type SenderInfo struct {
	NTPTime     time.Time
	RTPTime     uint32
	PacketCount uint32
	OctetCount  uint32
}

// Marshal encodes the sender info block in network byte order.
func (si SenderInfo) Marshal() [SenderInfoSize]byte {
	var out [SenderInfoSize]byte
	msw, lsw := ToNTP(si.NTPTime)
	binary.BigEndian.PutUint32(out[0:4], msw)
	binary.BigEndian.PutUint32(out[4:8], lsw)
	binary.BigEndian.PutUint32(out[8:12], si.RTPTime)
	binary.BigEndian.PutUint32(out[12:16], si.PacketCount)
	binary.BigEndian.PutUint32(out[16:20], si.OctetCount)
	return out
}

// BuildSenderReportHeader returns the plaintext RTCP header of a sender
// report with no reception report blocks.
func BuildSenderReportHeader(ssrc uint32) [SenderReportHeaderSize]byte {
	var header [SenderReportHeaderSize]byte
	header[0] = rtcpVersionByte
	header[1] = rtcpTypeSenderReport
	binary.BigEndian.PutUint16(header[2:4], senderReportLength)
	binary.BigEndian.PutUint32(header[4:8], ssrc)
	return header
}

// BuildSenderReport assembles the 48-byte encrypted sender report:
// header, sealed sender info, then the first four nonce bytes.
func BuildSenderReport(ssrc uint32, info SenderInfo, nonce *crypto.Nonce, key *crypto.Key, enc crypto.Encryptor) ([]byte, error) {
	header := BuildSenderReportHeader(ssrc)
	plain := info.Marshal()

	sealed, err := enc.Seal(plain[:], nonce, key)
	if err != nil {
		return nil, fmt.Errorf("%w: sender report: %w", ErrEncryptFailed, err)
	}

	packet := make([]byte, 0, SenderReportHeaderSize+len(sealed)+crypto.NoncePrefixSize)
	packet = append(packet, header[:]...)
	packet = append(packet, sealed...)
	packet = append(packet, nonce.Prefix()...)
	return packet, nil
}
