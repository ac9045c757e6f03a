package audio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// frameLengthSize is the little-endian length prefix before each frame.
const frameLengthSize = 2

// FrameReader reads Opus packets from a stream of
// [uint16 little-endian length][packet] records, the format produced by
// simple Opus dumping tools and by WriteFrame.
type FrameReader struct {
	r      *bufio.Reader
	frames int
}

// NewFrameReader wraps r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: bufio.NewReader(r)}
}

// NextFrame returns the next packet and its duration. A clean end of stream
// between records yields io.EOF; a record cut short yields
// io.ErrUnexpectedEOF.
func (fr *FrameReader) NextFrame() ([]byte, time.Duration, error) {
	var prefix [frameLengthSize]byte
	if _, err := io.ReadFull(fr.r, prefix[:]); err != nil {
		return nil, 0, err
	}

	size := binary.LittleEndian.Uint16(prefix[:])
	if size == 0 {
		return nil, 0, fmt.Errorf("%w: zero-length record %d", ErrInvalidOpusFrame, fr.frames)
	}

	frame := make([]byte, size)
	if _, err := io.ReadFull(fr.r, frame); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "FrameReader.NextFrame",
			"record":   fr.frames,
			"size":     size,
		}).Warn("Truncated Opus frame record")
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, 0, err
	}

	info, err := ParseFrameInfo(frame)
	if err != nil {
		return nil, 0, fmt.Errorf("record %d: %w", fr.frames, err)
	}
	fr.frames++

	return frame, info.Duration(), nil
}

// Frames returns the number of records read successfully.
func (fr *FrameReader) Frames() int {
	return fr.frames
}

// WriteFrame appends one length-prefixed record to w.
func WriteFrame(w io.Writer, frame []byte) error {
	if len(frame) == 0 || len(frame) > math.MaxUint16 {
		return fmt.Errorf("%w: cannot store %d bytes", ErrInvalidOpusFrame, len(frame))
	}
	var prefix [frameLengthSize]byte
	binary.LittleEndian.PutUint16(prefix[:], uint16(len(frame)))
	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}
	_, err := w.Write(frame)
	return err
}
