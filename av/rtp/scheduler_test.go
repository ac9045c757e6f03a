package rtp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// drive feeds raw packet counts to the scheduler the way the packetizer
// does, marking after every fire, and returns the counts that fired.
func drive(s *ReportScheduler, counts []uint32) []uint32 {
	var fired []uint32
	for _, c := range counts {
		if s.Due(c) {
			s.Mark(c)
			fired = append(fired, c)
		}
	}
	return fired
}

func TestReportScheduler_FiresOncePerInterval(t *testing.T) {
	s := NewReportScheduler()

	counts := make([]uint32, 0, 1000)
	for c := uint32(1); c <= 1000; c++ {
		counts = append(counts, c)
	}

	fired := drive(s, counts)
	assert.Equal(t, []uint32{128, 256, 384, 512, 640, 768, 896}, fired)
	assert.Equal(t, uint32(896), s.LastReported())
}

func TestReportScheduler_AcrossWraparound(t *testing.T) {
	s := NewReportScheduler()
	s.Mark(1<<32 - 10)

	var counts []uint32
	for raw := uint64(1<<32 - 10); raw <= 1<<32+20; raw++ {
		counts = append(counts, uint32(raw))
	}

	fired := drive(s, counts)
	assert.Equal(t, []uint32{0}, fired, "exactly one fire at the 2^32 boundary")
	assert.Equal(t, uint32(0), s.LastReported(), "raw, not wrap-adjusted, count is stored")

	// the interval test keeps working after the wrap
	assert.False(t, s.Due(127))
	assert.True(t, s.Due(128))
}

func TestReportScheduler_ToleratesGaps(t *testing.T) {
	s := NewReportScheduler()

	fired := drive(s, []uint32{100, 300, 310, 1000, 1001})
	assert.Equal(t, []uint32{300, 1000}, fired)
}

func TestReportScheduler_NoFireWithoutMark(t *testing.T) {
	s := NewReportScheduler()

	assert.True(t, s.Due(128))
	assert.True(t, s.Due(129), "stays due until a report is marked")
	s.Mark(129)
	assert.False(t, s.Due(130))
}
