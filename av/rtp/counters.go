package rtp

import "time"

// Counters holds the wrapping per-stream counters of one packetizer.
//
// All arithmetic wraps modulo 2^32. Counters are created once per packetizer
// and never reset. Not safe for concurrent use.
type Counters struct {
	sequence   uint32
	timestamp  uint32
	totalBytes uint32
	lastSend   time.Time
}

// NextSequence advances the sequence counter and returns its on-wire
// 16-bit value.
func (c *Counters) NextSequence() uint16 {
	c.sequence++
	return uint16(c.sequence)
}

// AdvanceTimestamp moves the media timestamp forward by delta clock ticks.
func (c *Counters) AdvanceTimestamp(delta uint32) {
	c.timestamp += delta
}

// AddBytes accumulates bytes reported as sent.
func (c *Counters) AddBytes(n uint32) {
	c.totalBytes += n
}

// MarkSent records the wall-clock time of the most recent data packet.
func (c *Counters) MarkSent(t time.Time) {
	c.lastSend = t
}

// Sequence returns the raw, untruncated sequence counter.
func (c Counters) Sequence() uint32 { return c.sequence }

// Timestamp returns the current media timestamp.
func (c Counters) Timestamp() uint32 { return c.timestamp }

// TotalBytes returns the wrapping byte total.
func (c Counters) TotalBytes() uint32 { return c.totalBytes }

// LastSend returns the wall-clock time of the most recent data packet.
func (c Counters) LastSend() time.Time { return c.lastSend }
