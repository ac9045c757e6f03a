package rtp

import (
	"fmt"
	"math"

	"github.com/opd-ai/voicestream/crypto"
	"github.com/sirupsen/logrus"
)

// Connection is the already-established, already-keyed UDP session the
// packetizer writes through. It owns the key and the nonce counter and is
// shared by the audio and video packetizers of one session, so
// implementations must serialize SendPacket themselves.
type Connection interface {
	SendPacket(data []byte) error
	NextNonce() (crypto.Nonce, error)
	SecretKey() *crypto.Key
}

// Config fixes the identity of one media stream.
type Config struct {
	SSRC              uint32
	Codec             string
	ExtensionsEnabled bool
	// MTU bounds each packet's media payload; zero means DefaultMTU.
	MTU int
}

// Option customizes a Packetizer.
type Option func(*Packetizer)

// WithTimeProvider injects the wall clock sampled for sender reports.
func WithTimeProvider(tp TimeProvider) Option {
	return func(p *Packetizer) {
		if tp != nil {
			p.timeProvider = tp
		}
	}
}

// WithFramer overrides the codec's default framing strategy.
func WithFramer(f Framer) Option {
	return func(p *Packetizer) {
		if f != nil {
			p.framer = f
		}
	}
}

// WithEncryptor overrides the secretbox encryptor.
func WithEncryptor(enc crypto.Encryptor) Option {
	return func(p *Packetizer) {
		if enc != nil {
			p.encryptor = enc
		}
	}
}

// WithObserver attaches a send-path observer such as a metrics collector.
func WithObserver(o Observer) Option {
	return func(p *Packetizer) {
		if o != nil {
			p.observer = o
		}
	}
}

// Packetizer turns access units of one media stream into encrypted,
// sequenced RTP packets and emits periodic encrypted sender reports.
//
// A Packetizer is driven from a single goroutine: its counters are not
// locked. Two packetizers (audio and video) may share one Connection.
type Packetizer struct {
	conn         Connection
	encryptor    crypto.Encryptor
	framer       Framer
	timeProvider TimeProvider
	observer     Observer

	codec             Codec
	ssrc              uint32
	extensionsEnabled bool
	mtu               int

	counters  Counters
	scheduler *ReportScheduler
}

// NewPacketizer creates a packetizer for one stream.
//
// An unknown codec fails with ErrUnsupportedCodec before any stream state is
// created.
func NewPacketizer(conn Connection, cfg Config, opts ...Option) (*Packetizer, error) {
	logrus.WithFields(logrus.Fields{
		"function":   "NewPacketizer",
		"ssrc":       cfg.SSRC,
		"codec":      cfg.Codec,
		"extensions": cfg.ExtensionsEnabled,
	}).Info("Creating new media packetizer")

	codec, err := LookupCodec(cfg.Codec)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewPacketizer",
			"codec":    cfg.Codec,
			"error":    err.Error(),
		}).Error("Unsupported codec")
		return nil, err
	}
	if conn == nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewPacketizer",
			"error":    ErrNilConnection.Error(),
		}).Error("Invalid connection")
		return nil, ErrNilConnection
	}

	mtu := cfg.MTU
	if mtu <= 0 {
		mtu = DefaultMTU
	}

	p := &Packetizer{
		conn:              conn,
		encryptor:         crypto.NewSecretBox(),
		framer:            DefaultFramer(codec),
		timeProvider:      DefaultTimeProvider{},
		observer:          nopObserver{},
		codec:             codec,
		ssrc:              cfg.SSRC,
		extensionsEnabled: cfg.ExtensionsEnabled,
		mtu:               mtu,
		scheduler:         NewReportScheduler(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.counters.MarkSent(p.timeProvider.Now())

	logrus.WithFields(logrus.Fields{
		"function":     "NewPacketizer",
		"ssrc":         p.ssrc,
		"payload_type": codec.PayloadType,
		"clock_rate":   codec.ClockRate,
		"mtu":          mtu,
	}).Info("Media packetizer created successfully")

	return p, nil
}

// SSRC returns the stream's synchronization source.
func (p *Packetizer) SSRC() uint32 { return p.ssrc }

// Codec returns the stream's codec table entry.
func (p *Packetizer) Codec() Codec { return p.codec }

// Counters returns a snapshot of the stream counters.
func (p *Packetizer) Counters() Counters { return p.counters }

// MakeRTPHeader builds the next RTP header for this stream, consuming one
// sequence number.
func (p *Packetizer) MakeRTPHeader(ssrc uint32, isLastPacket bool) [HeaderSize]byte {
	return BuildHeader(&p.counters, p.codec.PayloadType, ssrc, isLastPacket, p.extensionsEnabled)
}

// AdvanceTimestamp moves the media timestamp by delta clock ticks. Callers
// size delta to the frame just sent (e.g. 960 for 20 ms of 48 kHz audio).
func (p *Packetizer) AdvanceTimestamp(delta uint32) {
	p.counters.AdvanceTimestamp(delta)
}

// SendFrame packetizes one access unit and hands each packet to the
// connection in order. The marker bit is set on the packet that completes
// the access unit. The first failure is returned immediately; packets
// already sent are not retracted.
func (p *Packetizer) SendFrame(frame []byte) error {
	if len(frame) == 0 {
		return ErrEmptyFrame
	}

	payloads := p.framer.Frame(frame, p.mtu)
	if len(payloads) == 0 {
		logrus.WithFields(logrus.Fields{
			"function":   "Packetizer.SendFrame",
			"ssrc":       p.ssrc,
			"frame_size": len(frame),
		}).Debug("Framer produced no payloads")
		return nil
	}

	for i, payload := range payloads {
		packet, err := p.buildDataPacket(payload, i == len(payloads)-1)
		if err != nil {
			return err
		}

		if err := p.conn.SendPacket(packet); err != nil {
			p.observer.SendFailed(p.codec.Name)
			logrus.WithFields(logrus.Fields{
				"function": "Packetizer.SendFrame",
				"ssrc":     p.ssrc,
				"sequence": p.counters.Sequence(),
				"error":    err.Error(),
			}).Error("Failed to send RTP packet")
			return fmt.Errorf("%w: %w", ErrSendFailed, err)
		}
		p.counters.MarkSent(p.timeProvider.Now())
		p.observer.PacketSent(p.codec.Name, len(packet))

		logrus.WithFields(logrus.Fields{
			"function":    "Packetizer.SendFrame",
			"ssrc":        p.ssrc,
			"sequence":    uint16(p.counters.Sequence()),
			"timestamp":   p.counters.Timestamp(),
			"packet_size": len(packet),
			"marker":      i == len(payloads)-1,
		}).Debug("RTP packet sent")

		if err := p.OnFrameSent(clampUint32(len(packet)), p.ssrc); err != nil {
			return err
		}
	}

	return nil
}

// OnFrameSent accounts bytesSent toward the octet count and sends a sender
// report for ssrc when the packet count crossed a report boundary.
func (p *Packetizer) OnFrameSent(bytesSent uint32, ssrc uint32) error {
	p.counters.AddBytes(bytesSent)

	packetCount := p.counters.Sequence()
	if !p.scheduler.Due(packetCount) {
		return nil
	}

	report, err := p.BuildSenderReport(ssrc)
	if err != nil {
		return err
	}
	if err := p.conn.SendPacket(report); err != nil {
		p.observer.SendFailed(p.codec.Name)
		logrus.WithFields(logrus.Fields{
			"function":     "Packetizer.OnFrameSent",
			"ssrc":         ssrc,
			"packet_count": packetCount,
			"error":        err.Error(),
		}).Error("Failed to send RTCP sender report")
		return fmt.Errorf("%w: sender report: %w", ErrSendFailed, err)
	}
	p.scheduler.Mark(packetCount)
	p.observer.ReportSent(p.codec.Name)

	logrus.WithFields(logrus.Fields{
		"function":     "Packetizer.OnFrameSent",
		"ssrc":         ssrc,
		"packet_count": packetCount,
		"octet_count":  p.counters.TotalBytes(),
	}).Debug("RTCP sender report sent")

	return nil
}

// BuildSenderReport seals a sender report describing the stream's current
// counters under a fresh nonce.
func (p *Packetizer) BuildSenderReport(ssrc uint32) ([]byte, error) {
	nonce, err := p.conn.NextNonce()
	if err != nil {
		return nil, fmt.Errorf("%w: nonce: %w", ErrEncryptFailed, err)
	}

	info := SenderInfo{
		NTPTime:     p.counters.LastSend(),
		RTPTime:     p.counters.Timestamp(),
		PacketCount: p.counters.Sequence(),
		OctetCount:  p.counters.TotalBytes(),
	}
	report, err := BuildSenderReport(ssrc, info, &nonce, p.conn.SecretKey(), p.encryptor)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Packetizer.BuildSenderReport",
			"ssrc":     ssrc,
			"error":    err.Error(),
		}).Error("Failed to build sender report")
		return nil, err
	}
	return report, nil
}

// buildDataPacket seals one payload and frames it as
// header | [extension] | ciphertext | nonce prefix. The sequence number is
// consumed only once encryption has succeeded.
func (p *Packetizer) buildDataPacket(payload []byte, isLastPacket bool) ([]byte, error) {
	nonce, err := p.conn.NextNonce()
	if err != nil {
		return nil, fmt.Errorf("%w: nonce: %w", ErrEncryptFailed, err)
	}

	sealed, err := p.encryptor.Seal(payload, &nonce, p.conn.SecretKey())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Packetizer.buildDataPacket",
			"ssrc":     p.ssrc,
			"error":    err.Error(),
		}).Error("Failed to encrypt RTP payload")
		return nil, fmt.Errorf("%w: %w", ErrEncryptFailed, err)
	}

	size := HeaderSize + len(sealed) + crypto.NoncePrefixSize
	if p.extensionsEnabled {
		size += ExtensionBlockSize
	}
	packet := make([]byte, 0, size)

	header := p.MakeRTPHeader(p.ssrc, isLastPacket)
	packet = append(packet, header[:]...)
	if p.extensionsEnabled {
		ext := BuildPlayoutDelayExtension()
		packet = append(packet, ext[:]...)
	}
	packet = append(packet, sealed...)
	packet = append(packet, nonce.Prefix()...)

	return packet, nil
}

func clampUint32(n int) uint32 {
	if uint64(n) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}
