package encoding_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"movpress/internal/encoding"
	"movpress/internal/services"
	"movpress/internal/testsupport"
)

type scriptedExecutor struct {
	calls int
	lines []string
	err   error
	// write mirrors a real encoder producing the output file.
	write func(args []string) error
}

func (e *scriptedExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	e.calls++
	for _, line := range e.lines {
		onLine(line)
	}
	if e.write != nil {
		if err := e.write(args); err != nil {
			return err
		}
	}
	return e.err
}

func planFor(t *testing.T, input, output string) encoding.Plan {
	t.Helper()
	plan, err := encoding.Resolve(encoding.Request{Input: input, Output: output})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	return plan
}

func TestRunnerSuccessComputesRatio(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mov")
	output := filepath.Join(dir, "out.mp4")
	testsupport.WriteFile(t, input, 1000)

	exec := &scriptedExecutor{
		lines: []string{"frame=  100 fps= 30 size=     256KiB time=00:00:04.00 bitrate= 512.0kbits/s"},
		write: func(args []string) error {
			return os.WriteFile(args[len(args)-1], make([]byte, 250), 0o644)
		},
	}
	runner, err := encoding.NewRunner("ffmpeg", encoding.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	result, err := runner.Run(context.Background(), planFor(t, input, output))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
	if result.InputBytes != 1000 || result.OutputBytes != 250 {
		t.Fatalf("sizes got %d -> %d", result.InputBytes, result.OutputBytes)
	}
	if result.Ratio != 0.25 {
		t.Fatalf("ratio got %v want 0.25", result.Ratio)
	}
	if got := result.ReductionPercent(); got != 75 {
		t.Fatalf("reduction got %v want 75", got)
	}
}

func TestRunnerMissingInputFailsBeforeSpawn(t *testing.T) {
	exec := &scriptedExecutor{}
	runner, err := encoding.NewRunner("ffmpeg", encoding.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	_, err = runner.Run(context.Background(), planFor(t, filepath.Join(t.TempDir(), "absent.mov"), "out.mp4"))
	if !errors.Is(err, services.ErrMissingInput) {
		t.Fatalf("expected missing input, got %v", err)
	}
	if exec.calls != 0 {
		t.Fatalf("no process should spawn, got %d calls", exec.calls)
	}
}

func TestRunnerRejectsDirectoryInput(t *testing.T) {
	runner, err := encoding.NewRunner("ffmpeg", encoding.WithExecutor(&scriptedExecutor{}))
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	_, err = runner.Run(context.Background(), planFor(t, t.TempDir(), "out.mp4"))
	if !errors.Is(err, services.ErrMissingInput) {
		t.Fatalf("expected missing input, got %v", err)
	}
}

func TestRunnerFailureRemovesPartialOutputAndCarriesTail(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mov")
	output := filepath.Join(dir, "out.mp4")
	testsupport.WriteFile(t, input, 100)

	exec := &scriptedExecutor{
		lines: []string{
			"frame=   10 fps= 30 size=      64KiB time=00:00:00.40 bitrate= 128.0kbits/s",
			"Error while decoding stream #0:0",
		},
		write: func(args []string) error {
			return os.WriteFile(args[len(args)-1], []byte("partial"), 0o644)
		},
		err: errors.New("exit status 1"),
	}
	runner, err := encoding.NewRunner("ffmpeg", encoding.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	_, err = runner.Run(context.Background(), planFor(t, input, output))
	if !errors.Is(err, services.ErrEncodingFailed) {
		t.Fatalf("expected encoding failed, got %v", err)
	}
	if !strings.Contains(err.Error(), "Error while decoding stream") {
		t.Fatalf("error %q should carry encoder diagnostics", err)
	}
	if strings.Contains(err.Error(), "time=00:00:00.40") {
		t.Fatalf("error %q should not carry progress lines", err)
	}
	if _, statErr := os.Stat(output); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("partial output should be removed, stat: %v", statErr)
	}
}

func TestRunnerMissingOutputIsIOFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mov")
	testsupport.WriteFile(t, input, 100)

	runner, err := encoding.NewRunner("ffmpeg", encoding.WithExecutor(&scriptedExecutor{}))
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	_, err = runner.Run(context.Background(), planFor(t, input, filepath.Join(dir, "out.mp4")))
	if !errors.Is(err, services.ErrIOFailure) {
		t.Fatalf("expected io failure, got %v", err)
	}
}

func TestRunnerWithRealProcess(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mov")
	output := filepath.Join(dir, "out.mp4")
	testsupport.WriteFile(t, input, 512)

	runner, err := encoding.NewRunner(testsupport.FakeFFmpeg(t, dir))
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	result, err := runner.Run(context.Background(), planFor(t, input, output))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.OutputBytes != 512 {
		t.Fatalf("output bytes got %d want 512", result.OutputBytes)
	}
}

func TestRunnerWithRealProcessFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mov")
	output := filepath.Join(dir, "out.mp4")
	testsupport.WriteFile(t, input, 64)

	runner, err := encoding.NewRunner(testsupport.FailingFFmpeg(t, dir, true))
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	_, err = runner.Run(context.Background(), planFor(t, input, output))
	if !errors.Is(err, services.ErrEncodingFailed) {
		t.Fatalf("expected encoding failed, got %v", err)
	}
	if !strings.Contains(err.Error(), "Error while decoding stream") {
		t.Fatalf("error %q should carry stderr diagnostics", err)
	}
	if _, statErr := os.Stat(output); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("partial output should be removed, stat: %v", statErr)
	}
}

func TestNewRunnerRequiresBinary(t *testing.T) {
	if _, err := encoding.NewRunner("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		value int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.00 KiB"},
		{5 * 1024 * 1024, "5.00 MiB"},
		{3 * 1024 * 1024 * 1024, "3.00 GiB"},
	}
	for _, tc := range cases {
		if got := encoding.FormatBytes(tc.value); got != tc.want {
			t.Fatalf("FormatBytes(%d) = %q want %q", tc.value, got, tc.want)
		}
	}
}
