package rtp

// DefaultMTU is the largest media payload carried by a single packet.
const DefaultMTU = 1200

// Chunk splits payload into consecutive pieces of at most mtu bytes.
//
// Every piece but the last is exactly mtu bytes long. The pieces alias the
// payload's backing array. An empty payload yields no pieces; a non-positive
// mtu is treated as DefaultMTU.
func Chunk(payload []byte, mtu int) [][]byte {
	if len(payload) == 0 {
		return nil
	}
	if mtu <= 0 {
		mtu = DefaultMTU
	}

	chunks := make([][]byte, 0, (len(payload)+mtu-1)/mtu)
	for start := 0; start < len(payload); start += mtu {
		end := start + mtu
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[start:end:end])
	}
	return chunks
}
