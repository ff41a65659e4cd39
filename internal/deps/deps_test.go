package deps_test

import (
	"testing"

	"movpress/internal/deps"
	"movpress/internal/testsupport"
)

func TestCheckBinariesFindsStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg", "ffprobe"))

	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, status := range statuses {
		if !status.Available {
			t.Fatalf("%s should be available: %s", status.Name, status.Detail)
		}
	}
	if !deps.AllRequiredAvailable(statuses) {
		t.Fatal("all required binaries are stubbed")
	}
}

func TestCheckBinariesReportsMissingFFmpeg(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Encoder.FFmpegBinary = "definitely-not-ffmpeg-xyz"
	cfg.Encoder.FFprobeBinary = "definitely-not-ffprobe-xyz"

	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	if deps.AllRequiredAvailable(statuses) {
		t.Fatal("missing ffmpeg must fail the required check")
	}
	var sawOptional bool
	for _, status := range statuses {
		if status.Name == "FFprobe" {
			sawOptional = status.Optional
		}
	}
	if !sawOptional {
		t.Fatal("ffprobe should be optional")
	}
}

func TestCheckBinariesHandlesEmptyCommand(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "FFmpeg", Command: "  "}})
	if len(statuses) != 1 || statuses[0].Available {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
	if statuses[0].Detail == "" {
		t.Fatal("empty command should explain itself")
	}
}
