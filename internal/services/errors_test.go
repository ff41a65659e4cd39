package services_test

import (
	"errors"
	"strings"
	"testing"

	"movpress/internal/services"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := services.Wrap(services.ErrEncodingFailed, "invoker", "ffmpeg", "stream error", cause)

	if !errors.Is(err, services.ErrEncodingFailed) {
		t.Fatal("expected encoding failed marker")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause preserved")
	}
	for _, fragment := range []string{"invoker", "ffmpeg", "stream error"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("message %q missing %q", err.Error(), fragment)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrMissingInput, "resolver", "resolve", "input path is required", nil)
	if !errors.Is(err, services.ErrMissingInput) {
		t.Fatal("expected missing input marker")
	}
	if errors.Is(err, services.ErrInvalidArgument) {
		t.Fatal("markers must not overlap")
	}
}

func TestFieldIsInvalidArgument(t *testing.T) {
	err := services.Field("crf", "value 90 out of range [0,51]")
	if !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatal("expected invalid argument marker")
	}
	if !strings.Contains(err.Error(), "crf") {
		t.Fatalf("message %q should name the field", err.Error())
	}
}
