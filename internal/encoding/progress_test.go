package encoding

import (
	"testing"
	"time"
)

func TestParseProgressTime(t *testing.T) {
	line := "frame= 3000 fps=120 q=28.0 size=   12288KiB time=01:02:03.45 bitrate=2700.1kbits/s speed=4.1x"
	d, ok := parseProgressTime(line)
	if !ok {
		t.Fatal("expected a time= match")
	}
	want := time.Hour + 2*time.Minute + 3*time.Second
	if d != want {
		t.Fatalf("duration got %v want %v", d, want)
	}
}

func TestParseProgressTimeRejectsOtherLines(t *testing.T) {
	for _, line := range []string{
		"Stream #0:0: Video: h264",
		"Press [q] to stop, [?] for help",
		"",
	} {
		if _, ok := parseProgressTime(line); ok {
			t.Fatalf("line %q should not parse", line)
		}
	}
}

func TestIsProgressLine(t *testing.T) {
	progress := "frame=  100 fps= 30 size=     256KiB time=00:00:04.00 bitrate= 512.0kbits/s"
	if !isProgressLine(progress) {
		t.Fatal("stats line should classify as progress")
	}
	if isProgressLine("Error while decoding stream #0:0") {
		t.Fatal("diagnostic line should not classify as progress")
	}
}

func TestProgressSamplerRateLimits(t *testing.T) {
	now := time.Unix(0, 0)
	sampler := newProgressSampler(2 * time.Second)
	sampler.now = func() time.Time { return now }

	if !sampler.shouldLog() {
		t.Fatal("first sample should log")
	}
	now = now.Add(time.Second)
	if sampler.shouldLog() {
		t.Fatal("sample inside interval should not log")
	}
	now = now.Add(2 * time.Second)
	if !sampler.shouldLog() {
		t.Fatal("sample after interval should log")
	}
}

func TestScanCRLinesSplitsOnCarriageReturn(t *testing.T) {
	data := []byte("first\rsecond\nthird")
	var lines []string
	for len(data) > 0 {
		advance, token, err := scanCRLines(data, true)
		if err != nil {
			t.Fatalf("scan error: %v", err)
		}
		if advance == 0 {
			break
		}
		lines = append(lines, string(token))
		data = data[advance:]
	}
	want := []string{"first", "second", "third"}
	if len(lines) != len(want) {
		t.Fatalf("lines got %v want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d got %q want %q", i, lines[i], want[i])
		}
	}
}
