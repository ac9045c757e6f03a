package av

import "errors"

// Sentinel errors for av package operations.
// These errors enable reliable error classification using errors.Is().

// Session errors.
var (
	// ErrNoVideoStream indicates a video frame was sent on an audio-only session.
	ErrNoVideoStream = errors.New("session has no video stream")

	// ErrWrongMediaKind indicates a stream configured with a codec of the other media kind.
	ErrWrongMediaKind = errors.New("codec does not match stream media kind")
)

// Send frame errors.
var (
	// ErrRTPFailed indicates RTP transmission failed.
	ErrRTPFailed = errors.New("RTP transmission failed")
)

// Streamer state errors.
var (
	// ErrStreamerAlreadyRunning indicates Run was called on a streamer that is already running.
	ErrStreamerAlreadyRunning = errors.New("streamer is already running")
)
