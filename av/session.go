package av

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/voicestream/av/rtp"
	"github.com/sirupsen/logrus"
)

// SessionOptions configures the streams of a MediaSession.
type SessionOptions struct {
	// SSRC identifies the audio stream; the video stream uses SSRC+1.
	SSRC uint32

	// VideoCodec names the video codec. Empty means audio only.
	VideoCodec string

	// VideoExtensions enables the playout-delay header extension on video packets.
	VideoExtensions bool

	// MTU bounds each packet's media payload; zero means rtp.DefaultMTU.
	MTU int

	// TimeProvider and Observer are passed to both packetizers when set.
	TimeProvider rtp.TimeProvider
	Observer     rtp.Observer
}

// stream serializes access to one packetizer.
type stream struct {
	mu         sync.Mutex
	packetizer *rtp.Packetizer
}

func (s *stream) send(frame []byte, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.packetizer.SendFrame(frame)
	if errors.Is(err, rtp.ErrEmptyFrame) {
		// nothing was captured, so no media time passed
		return fmt.Errorf("%w: %w", ErrRTPFailed, err)
	}
	// Media time has passed whether or not the frame made it out.
	s.packetizer.AdvanceTimestamp(s.packetizer.Codec().Samples(d))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRTPFailed, err)
	}
	return nil
}

func (s *stream) counters() rtp.Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.packetizer.Counters()
}

// MediaSession drives one audio and an optional video stream over a single
// connection. Each stream has its own SSRC and counters; the connection and
// its nonce counter are shared.
//
// SendAudioFrame and SendVideoFrame may be called from different goroutines.
type MediaSession struct {
	audio *stream
	video *stream
}

// NewMediaSession creates the session's packetizers.
func NewMediaSession(conn rtp.Connection, opts SessionOptions) (*MediaSession, error) {
	logrus.WithFields(logrus.Fields{
		"function":    "NewMediaSession",
		"ssrc":        opts.SSRC,
		"video_codec": opts.VideoCodec,
	}).Info("Creating media session")

	audio, err := newStream(conn, rtp.Config{
		SSRC:  opts.SSRC,
		Codec: rtp.CodecOpus,
		MTU:   opts.MTU,
	}, rtp.MediaAudio, opts)
	if err != nil {
		return nil, err
	}

	session := &MediaSession{audio: audio}
	if opts.VideoCodec != "" {
		video, err := newStream(conn, rtp.Config{
			SSRC:              opts.SSRC + 1,
			Codec:             opts.VideoCodec,
			ExtensionsEnabled: opts.VideoExtensions,
			MTU:               opts.MTU,
		}, rtp.MediaVideo, opts)
		if err != nil {
			return nil, err
		}
		session.video = video
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewMediaSession",
		"audio_ssrc": opts.SSRC,
		"has_video":  session.video != nil,
	}).Info("Media session created successfully")

	return session, nil
}

func newStream(conn rtp.Connection, cfg rtp.Config, kind rtp.MediaKind, opts SessionOptions) (*stream, error) {
	codec, err := rtp.LookupCodec(cfg.Codec)
	if err != nil {
		return nil, err
	}
	if codec.Kind != kind {
		return nil, fmt.Errorf("%w: %s is %s", ErrWrongMediaKind, cfg.Codec, codec.Kind)
	}

	var popts []rtp.Option
	if opts.TimeProvider != nil {
		popts = append(popts, rtp.WithTimeProvider(opts.TimeProvider))
	}
	if opts.Observer != nil {
		popts = append(popts, rtp.WithObserver(opts.Observer))
	}

	p, err := rtp.NewPacketizer(conn, cfg, popts...)
	if err != nil {
		return nil, err
	}
	return &stream{packetizer: p}, nil
}

// SendAudioFrame sends one Opus packet and advances the audio timestamp by
// its duration d.
func (s *MediaSession) SendAudioFrame(frame []byte, d time.Duration) error {
	return s.audio.send(frame, d)
}

// SendVideoFrame sends one video access unit and advances the video
// timestamp by d, the frame interval.
func (s *MediaSession) SendVideoFrame(frame []byte, d time.Duration) error {
	if s.video == nil {
		return ErrNoVideoStream
	}
	return s.video.send(frame, d)
}

// HasVideo reports whether the session carries a video stream.
func (s *MediaSession) HasVideo() bool {
	return s.video != nil
}

// AudioSSRC returns the audio stream's SSRC.
func (s *MediaSession) AudioSSRC() uint32 {
	return s.audio.packetizer.SSRC()
}

// VideoSSRC returns the video stream's SSRC, or false for audio-only sessions.
func (s *MediaSession) VideoSSRC() (uint32, bool) {
	if s.video == nil {
		return 0, false
	}
	return s.video.packetizer.SSRC(), true
}

// AudioCounters returns a snapshot of the audio stream counters.
func (s *MediaSession) AudioCounters() rtp.Counters {
	return s.audio.counters()
}

// VideoCounters returns a snapshot of the video stream counters.
func (s *MediaSession) VideoCounters() (rtp.Counters, bool) {
	if s.video == nil {
		return rtp.Counters{}, false
	}
	return s.video.counters(), true
}
