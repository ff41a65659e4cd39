package config

import (
	"errors"
	"fmt"

	"movpress/internal/preset"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateWeb(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if c.Encoder.FFmpegBinary == "" {
		return errors.New("encoder.ffmpeg_binary must be set")
	}
	if _, ok := preset.Lookup(c.Encoder.DefaultPreset); !ok {
		return fmt.Errorf("encoder.default_preset: unknown preset %q", c.Encoder.DefaultPreset)
	}
	switch c.Encoder.DefaultCodec {
	case "h264", "h265":
	default:
		return fmt.Errorf("encoder.default_codec must be h264 or h265, got %q", c.Encoder.DefaultCodec)
	}
	if c.Encoder.EncodeTimeout < 0 {
		return errors.New("encoder.encode_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateWeb() error {
	if c.Web.Bind == "" {
		return errors.New("web.bind must be set")
	}
	if c.Web.MaxUploadMiB < 0 {
		return errors.New("web.max_upload_mib must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
