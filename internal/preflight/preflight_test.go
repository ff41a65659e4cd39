package preflight_test

import (
	"testing"

	"movpress/internal/preflight"
	"movpress/internal/testsupport"
)

func TestRunAllPassesWithStubbedEnvironment(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	results := preflight.RunAll(cfg)
	if len(results) == 0 {
		t.Fatal("expected check results")
	}
	if !preflight.AllPassed(results) {
		for _, result := range results {
			t.Logf("%s passed=%v detail=%s", result.Name, result.Passed, result.Detail)
		}
		t.Fatal("all checks should pass")
	}
}

func TestRunAllFailsOnMissingDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	cfg.Paths.WorkDir = "/nonexistent/movpress-work"

	results := preflight.RunAll(cfg)
	if preflight.AllPassed(results) {
		t.Fatal("missing work directory should fail")
	}
}

func TestMissingOptionalBinaryStillPasses(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg"))
	cfg.Encoder.FFprobeBinary = "definitely-not-ffprobe-xyz"

	results := preflight.RunAll(cfg)
	if !preflight.AllPassed(results) {
		t.Fatal("optional ffprobe absence should not fail preflight")
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := preflight.RunAll(nil); results != nil {
		t.Fatalf("nil config should produce no results, got %v", results)
	}
}
