package rtp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		mtu        int
		wantChunks int
		lastSize   int
	}{
		{name: "Empty payload", size: 0, mtu: 1200, wantChunks: 0},
		{name: "Smaller than MTU", size: 100, mtu: 1200, wantChunks: 1, lastSize: 100},
		{name: "Exactly MTU", size: 1200, mtu: 1200, wantChunks: 1, lastSize: 1200},
		{name: "One byte over", size: 1201, mtu: 1200, wantChunks: 2, lastSize: 1},
		{name: "Several chunks", size: 5000, mtu: 1200, wantChunks: 5, lastSize: 200},
		{name: "Default MTU", size: 2500, mtu: 0, wantChunks: 3, lastSize: 100},
		{name: "Tiny MTU", size: 7, mtu: 2, wantChunks: 4, lastSize: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := make([]byte, tt.size)
			for i := range payload {
				payload[i] = byte(i)
			}

			chunks := Chunk(payload, tt.mtu)
			require.Len(t, chunks, tt.wantChunks)
			if tt.wantChunks == 0 {
				return
			}

			mtu := tt.mtu
			if mtu <= 0 {
				mtu = DefaultMTU
			}
			for _, c := range chunks[:len(chunks)-1] {
				assert.Len(t, c, mtu)
			}
			assert.Len(t, chunks[len(chunks)-1], tt.lastSize)
			assert.True(t, bytes.Equal(payload, bytes.Join(chunks, nil)))
		})
	}
}

func TestChunk_AppendDoesNotClobberNextChunk(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	chunks := Chunk(payload, 2)

	_ = append(chunks[0], 0xFF)
	assert.Equal(t, []byte{3, 4}, chunks[1])
}
