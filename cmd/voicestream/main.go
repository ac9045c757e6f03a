package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/opd-ai/voicestream/av"
	"github.com/opd-ai/voicestream/av/audio"
	"github.com/opd-ai/voicestream/config"
	"github.com/opd-ai/voicestream/telemetry"
	"github.com/opd-ai/voicestream/transport"
)

func main() {
	if err := newApp(stream).Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("voicestream failed")
	}
}

func newApp(action cli.ActionFunc) *cli.App {
	return &cli.App{
		Name:  "voicestream",
		Usage: "Stream an Opus frame file into an encrypted RTP voice session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file (yaml, toml or json)",
			},
			&cli.StringFlag{
				Name:  "remote",
				Usage: "voice server UDP address, example: '203.0.113.7:50000'",
			},
			&cli.StringFlag{
				Name:  "key",
				Usage: "32-byte session key as 64 hex characters",
			},
			&cli.UintFlag{
				Name:  "ssrc",
				Usage: "audio SSRC; video uses ssrc+1",
			},
			&cli.StringFlag{
				Name:  "audio-file",
				Usage: "Opus frames, each prefixed by a little-endian uint16 length",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "serve Prometheus metrics on this address, example: ':9100'",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
			},
		},
		Action: action,
	}
}

// flagKeys maps CLI flags onto configuration keys.
var flagKeys = map[string]string{
	"remote":       "remote",
	"key":          "key",
	"ssrc":         "ssrc",
	"audio-file":   "audio_file",
	"metrics-addr": "metrics_addr",
	"log-level":    "log_level",
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	v := config.New()
	applyFlags(c, v)

	cfg, err := config.Load(v, c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.AudioFile == "" {
		return nil, fmt.Errorf("%w: audio file is required", config.ErrInvalidConfig)
	}
	return cfg, nil
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(c *cli.Context, v *viper.Viper) {
	for flag, key := range flagKeys {
		if !c.IsSet(flag) {
			continue
		}
		if flag == "ssrc" {
			v.Set(key, c.Uint(flag))
			continue
		}
		v.Set(key, c.String(flag))
	}
}

func stream(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.ConfigureLogging(); err != nil {
		return err
	}

	key, err := cfg.SessionKey()
	if err != nil {
		return err
	}

	collector, err := telemetry.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr)
		defer srv.Close()
	}

	conn, err := transport.Dial(cfg.Remote, key)
	if err != nil {
		return err
	}
	defer conn.Close()

	session, err := av.NewMediaSession(conn, av.SessionOptions{
		SSRC:            cfg.SSRC,
		VideoCodec:      cfg.VideoCodec,
		VideoExtensions: cfg.VideoExtensions,
		MTU:             cfg.MTU,
		Observer:        collector,
	})
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.AudioFile)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	streamer := av.NewStreamer(session)
	start := time.Now()
	err = streamer.Run(ctx, audio.NewFrameReader(f))

	logrus.WithFields(logrus.Fields{
		"function": "stream",
		"frames":   streamer.Frames(),
		"elapsed":  time.Since(start).Round(time.Millisecond),
		"remote":   cfg.Remote,
	}).Info("Streaming finished")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithFields(logrus.Fields{
				"function": "serveMetrics",
				"addr":     addr,
				"error":    err.Error(),
			}).Error("Metrics server stopped")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"function": "serveMetrics",
		"addr":     addr,
	}).Info("Serving metrics")

	return srv
}
