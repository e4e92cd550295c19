package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 7")
	err := Wrap(ErrExternalTool, "ocr", "run ocrmypdf", "OCR engine failed", base)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatal("expected wrapped error to match ErrExternalTool")
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped error to retain the cause")
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "rename", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatal("expected nil marker to default to ErrTransient")
	}
}

func TestNeedsReview(t *testing.T) {
	tests := []struct {
		marker error
		want   bool
	}{
		{ErrValidation, true},
		{ErrConfiguration, true},
		{ErrNotFound, true},
		{ErrExternalTool, false},
		{ErrTransient, false},
		{ErrTimeout, false},
	}
	for _, tc := range tests {
		err := Wrap(tc.marker, "stage", "op", "msg", nil)
		if got := NeedsReview(err); got != tc.want {
			t.Errorf("NeedsReview(%v) = %v, want %v", tc.marker, got, tc.want)
		}
	}
}
