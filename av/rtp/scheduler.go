package rtp

// ReportInterval is the number of data packets between sender reports.
const ReportInterval = 128

// ReportScheduler decides when a sender report is due.
//
// It fires whenever the packet count has crossed a multiple of
// ReportInterval since the last report, whether or not that exact multiple
// was ever observed.
type ReportScheduler struct {
	interval     uint64
	lastReported uint32
}

// NewReportScheduler creates a scheduler with the standard interval.
func NewReportScheduler() *ReportScheduler {
	return &ReportScheduler{interval: ReportInterval}
}

// Due reports whether a sender report must follow the packet that brought
// the raw sequence counter to packetCount.
func (s *ReportScheduler) Due(packetCount uint32) bool {
	effective := uint64(packetCount)
	if s.lastReported > packetCount {
		// the counter wrapped since the last report
		effective += 1 << 32
	}
	return effective/s.interval > uint64(s.lastReported)/s.interval
}

// Mark records the raw packet count covered by the report just sent.
func (s *ReportScheduler) Mark(packetCount uint32) {
	s.lastReported = packetCount
}

// LastReported returns the packet count of the most recent report.
func (s *ReportScheduler) LastReported() uint32 {
	return s.lastReported
}
