package av

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// FrameSource yields encoded audio frames and their durations. It returns
// io.EOF when exhausted. audio.FrameReader satisfies it.
type FrameSource interface {
	NextFrame() ([]byte, time.Duration, error)
}

// Clock supplies the current time and waiting to a Streamer.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// realClock waits on timers.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Streamer pumps audio frames from a FrameSource into a MediaSession in real
// time. Frame n is sent once the wall clock reaches the start time plus the
// durations of frames 0..n-1, so scheduling jitter does not accumulate.
type Streamer struct {
	session *MediaSession
	clock   Clock

	running atomic.Bool
	frames  atomic.Uint64
}

// NewStreamer creates a streamer for the session's audio stream.
func NewStreamer(session *MediaSession) *Streamer {
	return &Streamer{session: session, clock: realClock{}}
}

// SetClock replaces the clock, for deterministic testing.
// If c is nil, the real clock is used.
func (st *Streamer) SetClock(c Clock) {
	if c == nil {
		c = realClock{}
	}
	st.clock = c
}

// Frames returns the number of frames sent so far.
func (st *Streamer) Frames() uint64 {
	return st.frames.Load()
}

// Run streams until the source is exhausted (returning nil), ctx is done
// (returning ctx.Err()) or a read or send fails.
func (st *Streamer) Run(ctx context.Context, src FrameSource) error {
	if !st.running.CompareAndSwap(false, true) {
		return ErrStreamerAlreadyRunning
	}
	defer st.running.Store(false)

	logrus.WithFields(logrus.Fields{
		"function": "Streamer.Run",
		"ssrc":     st.session.AudioSSRC(),
	}).Info("Starting audio stream")

	start := st.clock.Now()
	var mediaTime time.Duration

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, d, err := src.NextFrame()
		if errors.Is(err, io.EOF) {
			logrus.WithFields(logrus.Fields{
				"function":   "Streamer.Run",
				"frames":     st.frames.Load(),
				"media_time": mediaTime,
			}).Info("Audio source exhausted")
			return nil
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Streamer.Run",
				"frames":   st.frames.Load(),
				"error":    err.Error(),
			}).Error("Failed to read audio frame")
			return fmt.Errorf("read frame: %w", err)
		}

		if wait := start.Add(mediaTime).Sub(st.clock.Now()); wait > 0 {
			if err := st.clock.Sleep(ctx, wait); err != nil {
				return err
			}
		}

		if err := st.session.SendAudioFrame(frame, d); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Streamer.Run",
				"frames":   st.frames.Load(),
				"error":    err.Error(),
			}).Error("Failed to send audio frame")
			return err
		}
		mediaTime += d
		st.frames.Inc()
	}
}
