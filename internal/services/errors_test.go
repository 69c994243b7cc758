package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrValidation, "import", "parse script", "no speaker tags found", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "import: parse script: no speaker tags found") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrExternalTool, "tts", "render", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause preserved, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient default, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestIsUserError(t *testing.T) {
	if !IsUserError(Wrap(ErrValidation, "a", "b", "c", nil)) {
		t.Fatal("validation should be a user error")
	}
	if IsUserError(Wrap(ErrExternalTool, "a", "b", "c", nil)) {
		t.Fatal("external tool failure is not a user error")
	}
}
