package rtp

import (
	"fmt"
	"time"
)

// MediaKind distinguishes the audio stream from the video stream.
type MediaKind string

const (
	// MediaAudio is the audio stream kind.
	MediaAudio MediaKind = "audio"
	// MediaVideo is the video stream kind.
	MediaVideo MediaKind = "video"
)

// Codec names accepted by LookupCodec. Names are matched exactly; callers
// normalize user input before lookup.
const (
	CodecOpus = "opus"
	CodecH264 = "H264"
	CodecH265 = "H265"
	CodecVP8  = "VP8"
	CodecVP9  = "VP9"
	CodecAV1  = "AV1"
)

// Codec describes one entry of the static payload type table.
type Codec struct {
	Name        string
	PayloadType uint8
	ClockRate   uint32
	Kind        MediaKind
}

var codecTable = map[string]Codec{
	CodecOpus: {Name: CodecOpus, PayloadType: 120, ClockRate: 48000, Kind: MediaAudio},
	CodecH264: {Name: CodecH264, PayloadType: 101, ClockRate: 90000, Kind: MediaVideo},
	CodecH265: {Name: CodecH265, PayloadType: 103, ClockRate: 90000, Kind: MediaVideo},
	CodecVP8:  {Name: CodecVP8, PayloadType: 105, ClockRate: 90000, Kind: MediaVideo},
	CodecVP9:  {Name: CodecVP9, PayloadType: 107, ClockRate: 90000, Kind: MediaVideo},
	CodecAV1:  {Name: CodecAV1, PayloadType: 109, ClockRate: 90000, Kind: MediaVideo},
}

// LookupCodec returns the table entry for a codec name.
func LookupCodec(name string) (Codec, error) {
	codec, ok := codecTable[name]
	if !ok {
		return Codec{}, fmt.Errorf("%w: %q", ErrUnsupportedCodec, name)
	}
	return codec, nil
}

// Samples converts a frame duration to media clock ticks.
func (c Codec) Samples(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	return uint32(uint64(d) * uint64(c.ClockRate) / uint64(time.Second))
}
