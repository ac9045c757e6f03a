// Package transport provides the UDP session the media packetizers write
// through.
//
// Session establishment and key agreement happen elsewhere; this package
// receives the resulting remote address and 32-byte session key and exposes
// them through the rtp.Connection contract:
//
//	conn, err := transport.Dial("203.0.113.7:50000", key)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	p, err := rtp.NewPacketizer(conn, rtp.Config{SSRC: ssrc, Codec: rtp.CodecOpus})
//
// # Concurrency
//
// A UDPConn is shared by the audio and video packetizers of a session.
// SendPacket serializes writes, and the nonce counter is atomic, so both
// streams can send from their own goroutines.
//
// # Incoming Packets
//
// Datagrams arriving on the socket are passed to the handler registered
// with SetHandler on a single receive goroutine:
//
//	conn.SetHandler(func(data []byte, addr net.Addr) {
//	    log.Printf("%d bytes from %s", len(data), addr)
//	})
//
// Close stops the receive loop and wipes the session key.
package transport
