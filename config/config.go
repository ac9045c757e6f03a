package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/opd-ai/voicestream/av/rtp"
	"github.com/opd-ai/voicestream/crypto"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. VOICESTREAM_REMOTE.
const EnvPrefix = "VOICESTREAM"

// ErrInvalidConfig indicates a configuration that failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the streaming tool's configuration.
type Config struct {
	// Remote is the voice server's UDP address, host:port.
	Remote string `mapstructure:"remote"`
	// Key is the 32-byte session key as 64 hex characters.
	Key string `mapstructure:"key"`
	// SSRC identifies the audio stream; video uses SSRC+1.
	SSRC uint32 `mapstructure:"ssrc"`
	// VideoCodec is empty for audio-only sessions.
	VideoCodec      string `mapstructure:"video_codec"`
	VideoExtensions bool   `mapstructure:"video_extensions"`
	MTU             int    `mapstructure:"mtu"`
	// AudioFile is a length-prefixed Opus frame file.
	AudioFile   string `mapstructure:"audio_file"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// New returns a viper instance with defaults and environment binding set
// up. Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("mtu", rtp.DefaultMTU)
	v.SetDefault("ssrc", 1)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("video_extensions", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only consults keys viper already knows about.
	for _, key := range []string{"remote", "key", "video_codec", "audio_file"} {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads the optional config file at path into v and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Load",
				"path":     path,
				"error":    err.Error(),
			}).Error("Failed to read config file")
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Load",
		"path":        path,
		"remote":      cfg.Remote,
		"video_codec": cfg.VideoCodec,
	}).Debug("Configuration loaded")

	return &cfg, nil
}

// Validate checks the fields needed to stream.
func (c *Config) Validate() error {
	if c.Remote == "" {
		return fmt.Errorf("%w: remote address is required", ErrInvalidConfig)
	}
	if _, _, err := net.SplitHostPort(c.Remote); err != nil {
		return fmt.Errorf("%w: remote %q: %w", ErrInvalidConfig, c.Remote, err)
	}
	if _, err := c.SessionKey(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.VideoCodec != "" {
		codec, err := rtp.LookupCodec(c.VideoCodec)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if codec.Kind != rtp.MediaVideo {
			return fmt.Errorf("%w: %s is not a video codec", ErrInvalidConfig, c.VideoCodec)
		}
	}
	if c.MTU < 0 {
		return fmt.Errorf("%w: mtu %d", ErrInvalidConfig, c.MTU)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// SessionKey decodes Key.
func (c *Config) SessionKey() (crypto.Key, error) {
	return crypto.KeyFromHex(c.Key)
}

// ConfigureLogging applies the log level and format to the standard logger.
func (c *Config) ConfigureLogging() error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
