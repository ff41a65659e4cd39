package encoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"movpress/internal/logging"
	"movpress/internal/services"
)

const (
	// Number of trailing encoder output lines carried into EncodingFailed
	// diagnostics.
	diagnosticTailLines = 20

	progressLogInterval = 2 * time.Second
)

// Runner executes ffmpeg synchronously with a resolved Plan. The call is
// all-or-nothing: no partial progress is reported to the caller, and a
// failed run leaves no partial output file behind.
type Runner struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// Option configures the runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithTimeout bounds a single encode. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// WithLogger attaches a structured logger for launch/progress/result lines.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner constructs a runner around the given ffmpeg binary.
func NewRunner(binary string, opts ...Option) (*Runner, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	runner := &Runner{
		binary: binary,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// Run spawns exactly one encoder process and blocks until it exits. Only a
// zero exit status counts as success.
func (r *Runner) Run(ctx context.Context, plan Plan) (Result, error) {
	inputInfo, err := os.Stat(plan.InputPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrMissingInput, "invoker", "stat input", plan.InputPath, err)
	}
	if inputInfo.IsDir() {
		return Result{}, services.Wrap(services.ErrMissingInput, "invoker", "stat input", fmt.Sprintf("%s is a directory", plan.InputPath), nil)
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logger := logging.NewComponentLogger(r.logger, "encoder")
	logger.Info("launching ffmpeg",
		logging.String("command", r.commandLine(plan)),
		logging.String("input", plan.InputPath),
		logging.String("preset", plan.PresetName),
		logging.Int("crf", plan.CRF),
	)

	tail := make([]string, 0, diagnosticTailLines)
	sampler := newProgressSampler(progressLogInterval)
	onLine := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		if isProgressLine(line) {
			if !sampler.shouldLog() {
				return
			}
			if encoded, ok := parseProgressTime(line); ok {
				logger.Debug("encode progress", logging.Duration("encoded", encoded))
			}
			return
		}
		if len(tail) == diagnosticTailLines {
			copy(tail, tail[1:])
			tail = tail[:diagnosticTailLines-1]
		}
		tail = append(tail, line)
	}

	started := time.Now()
	if runErr := r.exec.Run(runCtx, r.binary, plan.Args(), onLine); runErr != nil {
		r.removePartialOutput(plan.OutputPath, logger)
		detail := strings.Join(tail, "\n")
		if detail == "" {
			detail = "encoder produced no diagnostic output"
		}
		return Result{}, services.Wrap(services.ErrEncodingFailed, "invoker", "ffmpeg", detail, runErr)
	}

	outputInfo, err := os.Stat(plan.OutputPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrIOFailure, "invoker", "stat output", plan.OutputPath, err)
	}
	if outputInfo.Size() == 0 {
		r.removePartialOutput(plan.OutputPath, logger)
		return Result{}, services.Wrap(services.ErrIOFailure, "invoker", "stat output", fmt.Sprintf("%s is empty", plan.OutputPath), nil)
	}

	result := Result{
		InputPath:   plan.InputPath,
		OutputPath:  plan.OutputPath,
		InputBytes:  inputInfo.Size(),
		OutputBytes: outputInfo.Size(),
		Ratio:       float64(outputInfo.Size()) / float64(inputInfo.Size()),
		Success:     true,
	}
	logger.Info("encode complete",
		logging.String("output", result.OutputPath),
		logging.String("size", fmt.Sprintf("%s -> %s", FormatBytes(result.InputBytes), FormatBytes(result.OutputBytes))),
		logging.String("reduction", fmt.Sprintf("%.1f%%", result.ReductionPercent())),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return result, nil
}

func (r *Runner) removePartialOutput(path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to remove partial output", logging.String("path", path), logging.Error(err))
	}
}

func (r *Runner) commandLine(plan Plan) string {
	parts := append([]string{r.binary}, plan.Args()...)
	for i, part := range parts {
		if strings.ContainsAny(part, " \t") {
			parts[i] = fmt.Sprintf("%q", part)
		}
	}
	return strings.Join(parts, " ")
}

// FormatBytes renders a byte count with binary units for human output.
func FormatBytes(value int64) string {
	const (
		kiB = 1024
		miB = kiB * 1024
		giB = miB * 1024
	)
	switch {
	case value >= giB:
		return fmt.Sprintf("%.2f GiB", float64(value)/float64(giB))
	case value >= miB:
		return fmt.Sprintf("%.2f MiB", float64(value)/float64(miB))
	case value >= kiB:
		return fmt.Sprintf("%.2f KiB", float64(value)/float64(kiB))
	default:
		return fmt.Sprintf("%d B", value)
	}
}
