// Package config loads the streaming tool's settings from an optional file
// (any format viper understands) and VOICESTREAM_* environment variables,
// then validates them:
//
//	v := config.New()
//	cfg, err := config.Load(v, "voicestream.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
