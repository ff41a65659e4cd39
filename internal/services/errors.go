package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument marks user input that fails validation before any
	// process is spawned (bad CRF, scale, codec, or preset name).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingInput marks an input path that is absent or unreadable.
	ErrMissingInput = errors.New("missing input")
	// ErrEncodingFailed marks a non-zero exit or spawn failure of the
	// external encoder.
	ErrEncodingFailed = errors.New("encoding failed")
	// ErrIOFailure marks problems writing output or measuring file sizes.
	ErrIOFailure = errors.New("io failure")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIOFailure
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Field wraps a validation failure naming the offending field.
func Field(field, message string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, strings.TrimSpace(field), strings.TrimSpace(message))
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
