package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"movpress/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Web.Bind = "127.0.0.1:0"
	cfgVal.History.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return builder.cfg
}

// WithHistory enables the history ledger on a database inside the temp dir.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
		b.cfg.History.Path = filepath.Join(b.baseDir, "history.db")
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg and ffprobe are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// WithFakeFFmpeg installs an ffmpeg stand-in that copies the input file to
// the output path, so callers see a real non-empty result without encoding.
// The config's ffmpeg binary is pointed at the script.
func WithFakeFFmpeg() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Encoder.FFmpegBinary = FakeFFmpeg(b.t, b.baseDir)
	}
}

// FakeFFmpeg writes an ffmpeg stand-in script into dir and returns its path.
// It expects the canonical argument order, where the input follows -i and the
// output is the final argument.
func FakeFFmpeg(t testing.TB, dir string) string {
	t.Helper()

	script := `#!/bin/sh
input=""
prev=""
for arg; do
    if [ "$prev" = "-i" ]; then
        input="$arg"
    fi
    prev="$arg"
    last="$arg"
done
cp "$input" "$last"
`
	target := filepath.Join(dir, "fake-ffmpeg")
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake ffmpeg: %v", err)
	}
	return target
}

// FailingFFmpeg writes an ffmpeg stand-in that prints diagnostics to stderr
// and exits nonzero, optionally leaving a partial output file behind.
func FailingFFmpeg(t testing.TB, dir string, leavePartial bool) string {
	t.Helper()

	script := `#!/bin/sh
for arg; do
    last="$arg"
done
echo "Error while decoding stream #0:0" >&2
`
	if leavePartial {
		script += "printf 'partial' > \"$last\"\n"
	}
	script += "exit 1\n"
	target := filepath.Join(dir, "failing-ffmpeg")
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write failing ffmpeg: %v", err)
	}
	return target
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}
