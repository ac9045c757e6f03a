package telemetry

import (
	"strings"
	"testing"

	"github.com/opd-ai/voicestream/av/rtp"
	"github.com/opd-ai/voicestream/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ rtp.Observer = (*Collector)(nil)

type recordingConnection struct {
	key    crypto.Key
	nonces *crypto.CounterNonceSource
	sent   int
}

func (rc *recordingConnection) SendPacket([]byte) error { rc.sent++; return nil }

func (rc *recordingConnection) NextNonce() (crypto.Nonce, error) { return rc.nonces.NextNonce() }

func (rc *recordingConnection) SecretKey() *crypto.Key { return &rc.key }

func TestCollector_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.PacketSent("opus", 100)
	c.PacketSent("opus", 50)
	c.PacketSent("VP8", 1200)
	c.ReportSent("opus")
	c.SendFailed("VP8")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.packetsSent.WithLabelValues("opus")))
	assert.Equal(t, 150.0, testutil.ToFloat64(c.bytesSent.WithLabelValues("opus")))
	assert.Equal(t, 1200.0, testutil.ToFloat64(c.bytesSent.WithLabelValues("VP8")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.senderReports.WithLabelValues("opus")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sendFailures.WithLabelValues("VP8")))

	expected := `
# HELP voicestream_rtcp_sender_reports_total RTCP sender reports sent.
# TYPE voicestream_rtcp_sender_reports_total counter
voicestream_rtcp_sender_reports_total{codec="opus"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "voicestream_rtcp_sender_reports_total"))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestCollector_ObservesPacketizer(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	conn := &recordingConnection{nonces: crypto.NewCounterNonceSource()}
	conn.key[0] = 1
	p, err := rtp.NewPacketizer(conn, rtp.Config{SSRC: 1, Codec: rtp.CodecOpus}, rtp.WithObserver(c))
	require.NoError(t, err)

	for i := 0; i < rtp.ReportInterval; i++ {
		require.NoError(t, p.SendFrame([]byte{0xF8, 0x00}))
	}

	packetSize := rtp.HeaderSize + 2 + crypto.Overhead + crypto.NoncePrefixSize
	assert.Equal(t, float64(rtp.ReportInterval), testutil.ToFloat64(c.packetsSent.WithLabelValues(rtp.CodecOpus)))
	assert.Equal(t, float64(rtp.ReportInterval*packetSize), testutil.ToFloat64(c.bytesSent.WithLabelValues(rtp.CodecOpus)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.senderReports.WithLabelValues(rtp.CodecOpus)))
	assert.Equal(t, rtp.ReportInterval+1, conn.sent)
}
