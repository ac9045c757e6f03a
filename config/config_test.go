package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/voicestream/av/rtp"
	"github.com/opd-ai/voicestream/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeyHex = strings.Repeat("0a", crypto.KeySize)

func validConfig() Config {
	return Config{
		Remote:    "127.0.0.1:50000",
		Key:       testKeyHex,
		SSRC:      1,
		MTU:       rtp.DefaultMTU,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, rtp.DefaultMTU, cfg.MTU)
	assert.Equal(t, uint32(1), cfg.SSRC)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.Remote)
	assert.False(t, cfg.VideoExtensions)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voicestream.yaml")
	content := `
remote: "203.0.113.7:50000"
key: "` + testKeyHex + `"
ssrc: 4242
video_codec: VP8
video_extensions: true
mtu: 1000
audio_file: /tmp/audio.opus
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "203.0.113.7:50000", cfg.Remote)
	assert.Equal(t, uint32(4242), cfg.SSRC)
	assert.Equal(t, rtp.CodecVP8, cfg.VideoCodec)
	assert.True(t, cfg.VideoExtensions)
	assert.Equal(t, 1000, cfg.MTU)
	assert.Equal(t, "/tmp/audio.opus", cfg.AudioFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voicestream.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote: \"10.0.0.1:1\"\nssrc: 5\n"), 0o600))

	t.Setenv("VOICESTREAM_REMOTE", "10.0.0.2:2")
	t.Setenv("VOICESTREAM_SSRC", "77")
	t.Setenv("VOICESTREAM_KEY", testKeyHex)

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.2:2", cfg.Remote)
	assert.Equal(t, uint32(77), cfg.SSRC)
	assert.Equal(t, testKeyHex, cfg.Key)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{name: "Valid", mutate: func(*Config) {}, valid: true},
		{name: "Valid with video", mutate: func(c *Config) { c.VideoCodec = rtp.CodecH264 }, valid: true},
		{name: "Missing remote", mutate: func(c *Config) { c.Remote = "" }},
		{name: "Remote without port", mutate: func(c *Config) { c.Remote = "127.0.0.1" }},
		{name: "Short key", mutate: func(c *Config) { c.Key = "abcd" }},
		{name: "Non-hex key", mutate: func(c *Config) { c.Key = strings.Repeat("zz", crypto.KeySize) }},
		{name: "Zero key", mutate: func(c *Config) { c.Key = strings.Repeat("00", crypto.KeySize) }},
		{name: "Unknown video codec", mutate: func(c *Config) { c.VideoCodec = "theora" }},
		{name: "Audio codec as video", mutate: func(c *Config) { c.VideoCodec = rtp.CodecOpus }},
		{name: "Negative MTU", mutate: func(c *Config) { c.MTU = -1 }},
		{name: "Bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "Bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestConfig_SessionKey(t *testing.T) {
	cfg := validConfig()
	key, err := cfg.SessionKey()
	require.NoError(t, err)
	assert.Equal(t, byte(0x0a), key[0])
	assert.Equal(t, byte(0x0a), key[crypto.KeySize-1])
}

func TestConfig_ConfigureLogging(t *testing.T) {
	cfg := validConfig()
	cfg.LogFormat = "json"
	assert.NoError(t, cfg.ConfigureLogging())

	cfg.LogLevel = "nope"
	assert.Error(t, cfg.ConfigureLogging())

	cfg = validConfig()
	assert.NoError(t, cfg.ConfigureLogging())
}
