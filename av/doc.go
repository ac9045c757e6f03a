// Package av ties the media packetizers to a live session.
//
// A MediaSession owns one Opus audio stream and, optionally, one video
// stream. Both share the session's connection (and so its key and nonce
// counter) but keep their own SSRC and counters:
//
//	session, err := av.NewMediaSession(conn, av.SessionOptions{
//	    SSRC:       ssrc,
//	    VideoCodec: rtp.CodecVP8,
//	})
//	if err != nil {
//	    return err
//	}
//	err = session.SendAudioFrame(opusFrame, 20*time.Millisecond)
//	err = session.SendVideoFrame(accessUnit, time.Second/30)
//
// The audio stream uses the session SSRC and the video stream SSRC+1. Each
// send advances the stream timestamp by the frame duration in media clock
// ticks.
//
// # Streaming
//
// A Streamer paces frames from a FrameSource in real time, which is how
// the command-line tool plays an Opus file into a session:
//
//	reader := audio.NewFrameReader(f)
//	err := av.NewStreamer(session).Run(ctx, reader)
//
// # Sub-Packages
//
//   - av/rtp: RTP/RTCP packetization and encryption
//   - av/audio: Opus packet inspection and frame files
package av
