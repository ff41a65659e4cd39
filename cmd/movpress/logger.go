package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"movpress/internal/config"
	"movpress/internal/logging"
)

// newCLILogger writes structured logs to the logfile so one-shot runs keep
// stdout for the human summary. Verbose mode mirrors debug logs to stdout.
func newCLILogger(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		return nil, err
	}
	outputs := []string{filepath.Join(cfg.Paths.LogDir, "movpress.log")}
	level := cfg.Logging.Level
	if verbose {
		outputs = append(outputs, "stdout")
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}
