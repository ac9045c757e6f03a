package audio

import (
	"testing"
	"time"

	"github.com/pion/opus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toc(config uint8, stereo bool, code uint8) byte {
	b := config<<3 | code
	if stereo {
		b |= 0x04
	}
	return b
}

func TestParseFrameInfo(t *testing.T) {
	tests := []struct {
		name      string
		frame     []byte
		mode      Mode
		bandwidth opus.Bandwidth
		stereo    bool
		count     int
		duration  time.Duration
	}{
		{
			name:  "SILK narrowband 20ms",
			frame: []byte{toc(1, false, 0), 0xAA},
			mode:  ModeSILK, bandwidth: opus.BandwidthNarrowband,
			count: 1, duration: 20 * time.Millisecond,
		},
		{
			name:  "SILK wideband 60ms",
			frame: []byte{toc(11, false, 0)},
			mode:  ModeSILK, bandwidth: opus.BandwidthWideband,
			count: 1, duration: 60 * time.Millisecond,
		},
		{
			name:  "Hybrid fullband 10ms",
			frame: []byte{toc(14, true, 0), 0x01},
			mode:  ModeHybrid, bandwidth: opus.BandwidthFullband, stereo: true,
			count: 1, duration: 10 * time.Millisecond,
		},
		{
			name:  "CELT fullband 20ms",
			frame: []byte{toc(31, true, 0), 0x01, 0x02},
			mode:  ModeCELT, bandwidth: opus.BandwidthFullband, stereo: true,
			count: 1, duration: 20 * time.Millisecond,
		},
		{
			name:  "CELT narrowband 2.5ms",
			frame: []byte{toc(16, false, 0)},
			mode:  ModeCELT, bandwidth: opus.BandwidthNarrowband,
			count: 1, duration: 2500 * time.Microsecond,
		},
		{
			name:  "Code 1 two equal frames",
			frame: []byte{toc(31, false, 1), 0x01, 0x02},
			mode:  ModeCELT, bandwidth: opus.BandwidthFullband,
			count: 2, duration: 40 * time.Millisecond,
		},
		{
			name:  "Code 2 two frames",
			frame: []byte{toc(9, false, 2), 0x01, 0x02},
			mode:  ModeSILK, bandwidth: opus.BandwidthWideband,
			count: 2, duration: 40 * time.Millisecond,
		},
		{
			name:  "Code 3 six frames",
			frame: []byte{toc(27, false, 3), 0x06, 0x00},
			mode:  ModeCELT, bandwidth: opus.BandwidthSuperwideband,
			count: 6, duration: 120 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseFrameInfo(tt.frame)
			require.NoError(t, err)

			assert.Equal(t, tt.frame[0]>>3, info.Config)
			assert.Equal(t, tt.mode, info.Mode)
			assert.Equal(t, tt.bandwidth, info.Bandwidth)
			assert.Equal(t, tt.stereo, info.Stereo)
			assert.Equal(t, tt.count, info.FrameCount)
			assert.Equal(t, tt.duration, info.Duration())
		})
	}
}

func TestParseFrameInfo_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
	}{
		{name: "Empty", frame: nil},
		{name: "Code 1 odd payload", frame: []byte{toc(31, false, 1), 0x01}},
		{name: "Code 2 missing length", frame: []byte{toc(31, false, 2)}},
		{name: "Code 3 missing count", frame: []byte{toc(31, false, 3)}},
		{name: "Code 3 zero frames", frame: []byte{toc(31, false, 3), 0x00}},
		{name: "Longer than 120ms", frame: []byte{toc(3, false, 3), 0x03}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFrameInfo(tt.frame)
			assert.ErrorIs(t, err, ErrInvalidOpusFrame)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "silk", ModeSILK.String())
	assert.Equal(t, "hybrid", ModeHybrid.String())
	assert.Equal(t, "celt", ModeCELT.String())
	assert.Equal(t, "mode(9)", Mode(9).String())
}
