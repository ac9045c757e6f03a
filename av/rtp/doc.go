// Package rtp implements the media packetizer of the voice transport.
//
// The voice server speaks RTP and RTCP over a UDP session that is already
// established and keyed by the time this package is involved. Every media
// payload and every sender report is sealed with secretbox; the package
// reproduces that wire format exactly because the receiver does not
// negotiate.
//
// # Architecture Overview
//
// The packetizer is assembled from small pieces that can be used and tested
// on their own:
//
//   - Counters: wrapping sequence, timestamp and byte counters of one stream
//   - Chunk: splits a payload into MTU-sized pieces
//   - BuildHeader: writes the 12-byte RTP header, consuming a sequence number
//   - BuildPlayoutDelayExtension: the fixed one-byte header extension block
//   - ReportScheduler: decides when a sender report is due
//   - BuildSenderReport: the 48-byte encrypted RTCP sender report
//   - Packetizer: drives all of the above for one media stream
//   - Depacketizer: opens both packet kinds again on the receiving side
//
// # Data Packets
//
// A data packet is laid out as:
//
//	+----------------+------------------+---------------------+--------------+
//	| RTP header(12) | extension (8)    | secretbox(payload)  | nonce[0:4]   |
//	|                | only if enabled  | 16-byte tag + data  |              |
//	+----------------+------------------+---------------------+--------------+
//
// The header's sequence field is the low 16 bits of a 32-bit counter that
// advances once per packet. The timestamp only advances when the caller says
// so, sized to the media clock:
//
//	p, err := rtp.NewPacketizer(conn, rtp.Config{SSRC: ssrc, Codec: rtp.CodecOpus})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.SendFrame(opusFrame); err != nil {
//	    return err
//	}
//	p.AdvanceTimestamp(960) // 20 ms at 48 kHz
//
// # Framing
//
// Access units are split by a per-codec Framer. Opus, H.264, VP8, VP9 and AV1
// use the pion/rtp payloaders; everything else is chunked at the MTU. The
// marker bit is set on the packet carrying the last piece of an access unit.
//
// # Sender Reports
//
// After every data packet the byte counter is updated and the
// ReportScheduler is consulted. Each time the packet count crosses a
// multiple of 128 a sender report is sealed and sent through the same
// connection:
//
//	+---------------+-----------------------------+------------+
//	| header (8)    | secretbox(sender info) (36) | nonce[0:4] |
//	| 80 C8 00 06   | NTP msw/lsw, RTP ts,        |            |
//	| SSRC          | packet count, octet count   |            |
//	+---------------+-----------------------------+------------+
//
// The NTP time is the wall-clock time of the latest data packet, taken from
// an injectable TimeProvider.
//
// # Deterministic Testing
//
// Time and framing are injectable:
//
//	type MockTimeProvider struct{ now time.Time }
//	func (m *MockTimeProvider) Now() time.Time { return m.now }
//
//	p, _ := rtp.NewPacketizer(conn, cfg, rtp.WithTimeProvider(&MockTimeProvider{now: fixed}))
//
// # Thread Safety
//
// A Packetizer is not safe for concurrent use; drive each stream from one
// goroutine. The Connection it writes to is shared between streams and must
// serialize its own writes.
package rtp
