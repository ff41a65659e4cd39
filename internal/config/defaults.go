package config

const (
	defaultWorkDir       = "~/.local/share/movpress/work"
	defaultLogDir        = "~/.local/share/movpress/logs"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultPresetName    = "medium"
	defaultCodec         = "h264"
	defaultWebBind       = "127.0.0.1:8765"
	defaultMaxUploadMiB  = 2048
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Encoder: Encoder{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			DefaultPreset: defaultPresetName,
			DefaultCodec:  defaultCodec,
		},
		Web: Web{
			Bind:         defaultWebBind,
			MaxUploadMiB: defaultMaxUploadMiB,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
