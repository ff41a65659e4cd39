package encoding_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"movpress/internal/encoding"
	"movpress/internal/services"
)

func intPtr(v int) *int { return &v }

func TestResolveDefaultsMatchMediumPreset(t *testing.T) {
	plan, err := encoding.Resolve(encoding.Request{Input: "/videos/demo.mov"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if plan.PresetName != "medium" {
		t.Fatalf("preset got %q want medium", plan.PresetName)
	}
	if plan.CRF != 23 {
		t.Fatalf("crf got %d want 23", plan.CRF)
	}
	if plan.Speed != "medium" {
		t.Fatalf("speed got %q want medium", plan.Speed)
	}
	if plan.Scale != "" {
		t.Fatalf("scale got %q want empty", plan.Scale)
	}
	if plan.Encoder != "libx264" {
		t.Fatalf("encoder got %q want libx264", plan.Encoder)
	}
	if plan.OutputPath != filepath.Join("/videos", "demo_compressed.mp4") {
		t.Fatalf("output got %q", plan.OutputPath)
	}
}

func TestResolveOverridesBeatPresetDefaults(t *testing.T) {
	plan, err := encoding.Resolve(encoding.Request{
		Input:  "in.mov",
		Preset: "high",
		CRF:    intPtr(30),
		Scale:  "1920:1080",
		FPS:    30,
		Codec:  "h265",
		Output: "out.mp4",
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if plan.CRF != 30 {
		t.Fatalf("crf override lost: got %d", plan.CRF)
	}
	if plan.Speed != "slow" {
		t.Fatalf("preset speed lost: got %q", plan.Speed)
	}
	if plan.Scale != "1920:1080" {
		t.Fatalf("scale override lost: got %q", plan.Scale)
	}
	if plan.FPS != 30 {
		t.Fatalf("fps override lost: got %d", plan.FPS)
	}
	if plan.Encoder != "libx265" {
		t.Fatalf("encoder got %q want libx265", plan.Encoder)
	}
	if plan.OutputPath != "out.mp4" {
		t.Fatalf("output override lost: got %q", plan.OutputPath)
	}
}

func TestResolveExplicitScaleReplacesWebDefault(t *testing.T) {
	plan, err := encoding.Resolve(encoding.Request{Input: "in.mov", Preset: "web", Scale: "640:-2"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if plan.Scale != "640:-2" {
		t.Fatalf("scale got %q want 640:-2", plan.Scale)
	}
}

func TestResolveAcceptsCRFBounds(t *testing.T) {
	for _, crf := range []int{0, 51} {
		plan, err := encoding.Resolve(encoding.Request{Input: "in.mov", CRF: intPtr(crf)})
		if err != nil {
			t.Fatalf("crf %d rejected: %v", crf, err)
		}
		if plan.CRF != crf {
			t.Fatalf("crf %d not applied: got %d", crf, plan.CRF)
		}
	}
}

func TestResolveRejectsOutOfRangeCRF(t *testing.T) {
	for _, crf := range []int{-1, 52, 70} {
		_, err := encoding.Resolve(encoding.Request{Input: "in.mov", CRF: intPtr(crf)})
		if !errors.Is(err, services.ErrInvalidArgument) {
			t.Fatalf("crf %d: expected invalid argument, got %v", crf, err)
		}
		if !strings.Contains(err.Error(), "crf") {
			t.Fatalf("crf %d: error %q should name the field", crf, err)
		}
	}
}

func TestResolveRejectsMalformedScale(t *testing.T) {
	for _, scale := range []string{"1280", "1280:-1", "0:720", "abc:def", "1280:720:30", "-2:-2"} {
		_, err := encoding.Resolve(encoding.Request{Input: "in.mov", Scale: scale})
		if !errors.Is(err, services.ErrInvalidArgument) {
			t.Fatalf("scale %q: expected invalid argument, got %v", scale, err)
		}
	}
}

func TestResolveRejectsUnknownPresetAndCodec(t *testing.T) {
	_, err := encoding.Resolve(encoding.Request{Input: "in.mov", Preset: "ultra"})
	if !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("unknown preset: expected invalid argument, got %v", err)
	}
	_, err = encoding.Resolve(encoding.Request{Input: "in.mov", Codec: "vp9"})
	if !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("unknown codec: expected invalid argument, got %v", err)
	}
}

func TestResolveRejectsNegativeFPS(t *testing.T) {
	_, err := encoding.Resolve(encoding.Request{Input: "in.mov", FPS: -24})
	if !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestResolveRequiresInput(t *testing.T) {
	_, err := encoding.Resolve(encoding.Request{})
	if !errors.Is(err, services.ErrMissingInput) {
		t.Fatalf("expected missing input, got %v", err)
	}
}

func TestPlanArgsCanonicalOrder(t *testing.T) {
	plan, err := encoding.Resolve(encoding.Request{
		Input:  "in.mov",
		Preset: "web",
		FPS:    30,
		Output: "out.mp4",
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	got := strings.Join(plan.Args(), " ")
	want := "-hide_banner -nostdin -i in.mov -c:v libx264 -crf 25 -preset medium -vf scale=1280:-2 -r 30 -c:a aac -b:a 128k -y out.mp4"
	if got != want {
		t.Fatalf("args mismatch:\n got  %s\n want %s", got, want)
	}
}

func TestPlanArgsOmitOptionalFlags(t *testing.T) {
	plan, err := encoding.Resolve(encoding.Request{Input: "in.mov", Output: "out.mp4"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	joined := strings.Join(plan.Args(), " ")
	if strings.Contains(joined, "-vf") {
		t.Fatalf("unexpected -vf in %s", joined)
	}
	if strings.Contains(joined, "-r ") {
		t.Fatalf("unexpected -r in %s", joined)
	}
}

func TestDeriveOutputPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/tmp/recording.mov", "/tmp/recording_compressed.mp4"},
		{"clip.mov", "clip_compressed.mp4"},
		{"/tmp/no_extension", "/tmp/no_extension_compressed.mp4"},
		{"/tmp/archive.tar.mov", "/tmp/archive.tar_compressed.mp4"},
	}
	for _, tc := range cases {
		if got := encoding.DeriveOutputPath(tc.in); got != tc.want {
			t.Fatalf("DeriveOutputPath(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}
