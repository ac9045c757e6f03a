package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const voicestreamNamespace string = "voicestream"

// Collector counts send-path events per codec. It implements rtp.Observer.
type Collector struct {
	packetsSent   *prometheus.CounterVec
	bytesSent     *prometheus.CounterVec
	senderReports *prometheus.CounterVec
	sendFailures  *prometheus.CounterVec
}

// NewCollector creates the counters and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		packetsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: voicestreamNamespace,
				Subsystem: "rtp",
				Name:      "packets_sent_total",
				Help:      "RTP data packets handed to the connection.",
			},
			[]string{"codec"},
		),
		bytesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: voicestreamNamespace,
				Subsystem: "rtp",
				Name:      "bytes_sent_total",
				Help:      "Bytes of RTP data packets, headers and encryption overhead included.",
			},
			[]string{"codec"},
		),
		senderReports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: voicestreamNamespace,
				Subsystem: "rtcp",
				Name:      "sender_reports_total",
				Help:      "RTCP sender reports sent.",
			},
			[]string{"codec"},
		),
		sendFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: voicestreamNamespace,
				Subsystem: "rtp",
				Name:      "send_failures_total",
				Help:      "Packets the connection refused to send.",
			},
			[]string{"codec"},
		),
	}

	for _, collector := range []prometheus.Collector{c.packetsSent, c.bytesSent, c.senderReports, c.sendFailures} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// PacketSent counts one data packet of size bytes.
func (c *Collector) PacketSent(codec string, size int) {
	c.packetsSent.WithLabelValues(codec).Inc()
	c.bytesSent.WithLabelValues(codec).Add(float64(size))
}

// ReportSent counts one sender report.
func (c *Collector) ReportSent(codec string) {
	c.senderReports.WithLabelValues(codec).Inc()
}

// SendFailed counts one refused packet.
func (c *Collector) SendFailed(codec string) {
	c.sendFailures.WithLabelValues(codec).Inc()
}
