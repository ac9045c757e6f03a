package rtp

// Observer receives send-path events, typically for metrics.
// Calls happen synchronously on the stream's send path and must not block.
type Observer interface {
	PacketSent(codec string, size int)
	ReportSent(codec string)
	SendFailed(codec string)
}

type nopObserver struct{}

func (nopObserver) PacketSent(string, int) {}
func (nopObserver) ReportSent(string)      {}
func (nopObserver) SendFailed(string)      {}
