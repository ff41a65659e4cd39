package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"movpress/internal/config"
	"movpress/internal/encoding"
	"movpress/internal/history"
	"movpress/internal/logging"
	"movpress/internal/media/ffprobe"
)

func runCompress(cmd *cobra.Command, ctx *commandContext, input string, flags *compressFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := newCLILogger(cfg, flags.verbose)
	if err != nil {
		return err
	}

	req := encoding.Request{
		Input:  input,
		Preset: flags.preset,
		Scale:  flags.scale,
		FPS:    flags.fps,
		Codec:  flags.codec,
		Output: flags.output,
	}
	if req.Preset == "" {
		req.Preset = cfg.Encoder.DefaultPreset
	}
	if req.Codec == "" {
		req.Codec = cfg.Encoder.DefaultCodec
	}
	if cmd.Flags().Changed("crf") {
		crf := flags.crf
		req.CRF = &crf
	}

	plan, err := encoding.Resolve(req)
	if err != nil {
		return err
	}

	if probed, probeErr := ffprobe.Inspect(cmd.Context(), cfg.Encoder.FFprobeBinary, plan.InputPath); probeErr == nil {
		logger.Debug("input inspected",
			logging.Float64("duration_seconds", probed.DurationSeconds()),
			logging.Int("streams", probed.Format.NBStreams),
		)
	}

	runner, err := encoding.NewRunner(
		cfg.Encoder.FFmpegBinary,
		encoding.WithTimeout(time.Duration(cfg.Encoder.EncodeTimeout)*time.Second),
		encoding.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Compressing %s (preset %s, crf %d)...\n", input, plan.PresetName, plan.CRF)

	started := time.Now()
	result, err := runner.Run(cmd.Context(), plan)
	if err != nil {
		return err
	}

	recordResult(cmd, cfg, plan, result, time.Since(started), logger)

	fmt.Fprintln(out, "Compression complete")
	fmt.Fprintf(out, "  Output:    %s\n", result.OutputPath)
	fmt.Fprintf(out, "  Size:      %s -> %s\n", encoding.FormatBytes(result.InputBytes), encoding.FormatBytes(result.OutputBytes))
	fmt.Fprintf(out, "  Reduction: %.1f%%\n", result.ReductionPercent())
	return nil
}

// recordResult appends to the history ledger; failures are logged, never
// fatal for a finished compression.
func recordResult(cmd *cobra.Command, cfg *config.Config, plan encoding.Plan, result encoding.Result, elapsed time.Duration, logger *slog.Logger) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logger.Warn("open history store", logging.Error(err))
		return
	}
	defer store.Close()

	entry := history.Entry{
		Source:      history.SourceCLI,
		InputName:   filepath.Base(result.InputPath),
		OutputName:  filepath.Base(result.OutputPath),
		Preset:      plan.PresetName,
		Codec:       plan.Encoder,
		CRF:         plan.CRF,
		InputBytes:  result.InputBytes,
		OutputBytes: result.OutputBytes,
		Ratio:       result.Ratio,
		DurationMS:  elapsed.Milliseconds(),
	}
	if _, err := store.Record(cmd.Context(), entry); err != nil {
		logger.Warn("record history", logging.Error(err))
	}
}
