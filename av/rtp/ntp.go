package rtp

import "time"

// ntpEpoch is 1900-01-01T00:00:00Z, the origin of NTP timestamps.
var ntpEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	millisPerSecond = 1000
	fracScale       = 1 << 32
)

// ToNTP converts a wall-clock instant to a 32.32 fixed-point NTP timestamp.
//
// The instant is taken at millisecond resolution. Whole seconds and the
// fractional remainder are converted separately in integer arithmetic, so no
// precision is lost to floating point. The seconds word wraps modulo 2^32
// (NTP era rollover in 2036).
func ToNTP(t time.Time) (msw, lsw uint32) {
	millis := t.UnixMilli() - ntpEpoch.UnixMilli()

	seconds := millis / millisPerSecond
	remainder := millis % millisPerSecond
	if remainder < 0 {
		seconds--
		remainder += millisPerSecond
	}

	msw = uint32(seconds)
	lsw = uint32((uint64(remainder)*fracScale + millisPerSecond/2) / millisPerSecond)
	return msw, lsw
}

// FromNTP converts a 32.32 fixed-point NTP timestamp in the first era back
// to wall-clock time at nanosecond resolution.
func FromNTP(msw, lsw uint32) time.Time {
	nanos := (uint64(lsw)*uint64(time.Second) + fracScale/2) >> 32
	return ntpEpoch.Add(time.Duration(msw) * time.Second).Add(time.Duration(nanos))
}
