package rtp

import (
	"fmt"

	"github.com/opd-ai/voicestream/crypto"
	"github.com/pion/rtcp"
	pionrtp "github.com/pion/rtp"
	"github.com/sirupsen/logrus"
)

// Depacketizer opens packets produced by a Packetizer. It is the receiving
// half of the wire format and expects counter nonces, whose full value can
// be rebuilt from the 4-byte suffix.
type Depacketizer struct {
	key crypto.Key
	box crypto.SecretBox
}

// NewDepacketizer creates a depacketizer for the session key.
func NewDepacketizer(key crypto.Key) (*Depacketizer, error) {
	if key.IsZero() {
		return nil, crypto.ErrInvalidKey
	}
	return &Depacketizer{key: key, box: crypto.NewSecretBox()}, nil
}

// OpenDataPacket parses the RTP header (including any header extension) and
// decrypts the media payload.
func (d *Depacketizer) OpenDataPacket(raw []byte) (*pionrtp.Packet, error) {
	if len(raw) < HeaderSize+crypto.Overhead+crypto.NoncePrefixSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedPacket, len(raw))
	}

	var header pionrtp.Header
	n, err := header.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPacket, err)
	}

	suffix := len(raw) - crypto.NoncePrefixSize
	if n > suffix-crypto.Overhead {
		return nil, fmt.Errorf("%w: header overruns payload", ErrMalformedPacket)
	}

	nonce, err := crypto.NonceFromPrefix(raw[suffix:])
	if err != nil {
		return nil, err
	}
	payload, err := d.box.Open(raw[n:suffix], &nonce, &d.key)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Depacketizer.OpenDataPacket",
			"ssrc":     header.SSRC,
			"sequence": header.SequenceNumber,
			"error":    err.Error(),
		}).Warn("Failed to open RTP payload")
		return nil, err
	}

	return &pionrtp.Packet{Header: header, Payload: payload}, nil
}

// OpenSenderReport decrypts a 48-byte sender report and parses it.
func (d *Depacketizer) OpenSenderReport(raw []byte) (*rtcp.SenderReport, error) {
	if len(raw) != SenderReportSize {
		return nil, fmt.Errorf("%w: sender report of %d bytes", ErrMalformedPacket, len(raw))
	}

	suffix := len(raw) - crypto.NoncePrefixSize
	nonce, err := crypto.NonceFromPrefix(raw[suffix:])
	if err != nil {
		return nil, err
	}
	info, err := d.box.Open(raw[SenderReportHeaderSize:suffix], &nonce, &d.key)
	if err != nil {
		return nil, err
	}

	plain := make([]byte, 0, SenderReportHeaderSize+len(info))
	plain = append(plain, raw[:SenderReportHeaderSize]...)
	plain = append(plain, info...)

	report := &rtcp.SenderReport{}
	if err := report.Unmarshal(plain); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPacket, err)
	}
	return report, nil
}

// IsSenderReport reports whether raw carries the sender report packet type
// rather than RTP media.
func IsSenderReport(raw []byte) bool {
	return len(raw) >= 2 && raw[1] == rtcpTypeSenderReport
}
