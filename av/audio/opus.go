package audio

import (
	"errors"
	"fmt"
	"time"

	"github.com/pion/opus"
	"github.com/sirupsen/logrus"
)

// ErrInvalidOpusFrame indicates a frame whose TOC or frame-count byte is
// inconsistent with its length.
var ErrInvalidOpusFrame = errors.New("invalid opus frame")

// maxPacketDuration is the longest audio a single Opus packet may carry.
const maxPacketDuration = 120 * time.Millisecond

// Mode is the Opus coding mode selected by the TOC configuration.
type Mode uint8

const (
	ModeSILK Mode = iota
	ModeHybrid
	ModeCELT
)

func (m Mode) String() string {
	switch m {
	case ModeSILK:
		return "silk"
	case ModeHybrid:
		return "hybrid"
	case ModeCELT:
		return "celt"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// FrameInfo is what the TOC byte (RFC 6716 section 3.1) says about a packet.
type FrameInfo struct {
	Config        uint8
	Mode          Mode
	Bandwidth     opus.Bandwidth
	Stereo        bool
	FrameCount    int
	FrameDuration time.Duration
}

// Duration returns the audio duration of the whole packet.
func (fi FrameInfo) Duration() time.Duration {
	return fi.FrameDuration * time.Duration(fi.FrameCount)
}

var (
	silkDurations = [4]time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond, 60 * time.Millisecond}
	celtDurations = [4]time.Duration{2500 * time.Microsecond, 5 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond}
)

// configInfo maps a TOC configuration number to mode, bandwidth and
// per-frame duration.
func configInfo(config uint8) (Mode, opus.Bandwidth, time.Duration) {
	switch {
	case config < 12:
		bw := [3]opus.Bandwidth{opus.BandwidthNarrowband, opus.BandwidthMediumband, opus.BandwidthWideband}[config/4]
		return ModeSILK, bw, silkDurations[config%4]
	case config < 16:
		bw := opus.BandwidthSuperwideband
		if config >= 14 {
			bw = opus.BandwidthFullband
		}
		return ModeHybrid, bw, silkDurations[config%2]
	default:
		bw := [4]opus.Bandwidth{opus.BandwidthNarrowband, opus.BandwidthWideband, opus.BandwidthSuperwideband, opus.BandwidthFullband}[(config-16)/4]
		return ModeCELT, bw, celtDurations[config%4]
	}
}

// ParseFrameInfo inspects the TOC byte, and for code 3 packets the frame
// count byte, of one Opus packet. The payload itself is not decoded.
func ParseFrameInfo(frame []byte) (FrameInfo, error) {
	if len(frame) == 0 {
		return FrameInfo{}, fmt.Errorf("%w: empty packet", ErrInvalidOpusFrame)
	}

	toc := frame[0]
	config := toc >> 3
	mode, bandwidth, frameDuration := configInfo(config)
	info := FrameInfo{
		Config:        config,
		Mode:          mode,
		Bandwidth:     bandwidth,
		Stereo:        toc&0x04 != 0,
		FrameDuration: frameDuration,
	}

	switch toc & 0x03 {
	case 0:
		info.FrameCount = 1
	case 1:
		// Two frames of equal size.
		if (len(frame)-1)%2 != 0 {
			return FrameInfo{}, fmt.Errorf("%w: code 1 packet with odd payload length %d", ErrInvalidOpusFrame, len(frame)-1)
		}
		info.FrameCount = 2
	case 2:
		if len(frame) < 2 {
			return FrameInfo{}, fmt.Errorf("%w: code 2 packet without frame length", ErrInvalidOpusFrame)
		}
		info.FrameCount = 2
	case 3:
		if len(frame) < 2 {
			return FrameInfo{}, fmt.Errorf("%w: code 3 packet without frame count", ErrInvalidOpusFrame)
		}
		info.FrameCount = int(frame[1] & 0x3F)
		if info.FrameCount == 0 {
			return FrameInfo{}, fmt.Errorf("%w: zero frame count", ErrInvalidOpusFrame)
		}
	}

	if info.Duration() > maxPacketDuration {
		logrus.WithFields(logrus.Fields{
			"function":    "ParseFrameInfo",
			"config":      config,
			"frame_count": info.FrameCount,
			"duration":    info.Duration(),
		}).Debug("Opus packet exceeds maximum duration")
		return FrameInfo{}, fmt.Errorf("%w: %v of audio exceeds %v", ErrInvalidOpusFrame, info.Duration(), maxPacketDuration)
	}

	return info, nil
}
