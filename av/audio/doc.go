// Package audio inspects Opus packets on their way into the packetizer.
//
// Opus frames arrive already encoded; the transport never decodes them. What
// the sender does need is the packet duration, because the RTP timestamp must
// advance by exactly that many 48 kHz ticks after each frame. The duration is
// read from the TOC byte defined in RFC 6716 section 3.1:
//
//	 0 1 2 3 4 5 6 7
//	+-+-+-+-+-+-+-+-+
//	| config  |s| c |
//	+-+-+-+-+-+-+-+-+
//
// config selects mode, bandwidth and per-frame duration, s marks stereo and
// c the number of frames in the packet.
//
//	info, err := audio.ParseFrameInfo(frame)
//	if err != nil {
//	    return err
//	}
//	err = session.SendAudioFrame(frame, info.Duration())
//
// FrameReader reads length-prefixed Opus frame files for the streaming CLI.
package audio
