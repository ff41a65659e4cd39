// Package logging provides slog construction with console and JSON handlers
// plus the attribute helpers used across the repository.
package logging
