package logging

import (
	"context"
	"testing"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewDefaultsToConsole(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger")
	}
}

func TestContextFields(t *testing.T) {
	ctx := services.WithFile(context.Background(), "/tmp/doc.pdf")
	ctx = services.WithStage(ctx, "rename")
	ctx = services.WithRequestID(ctx, "abc-123")

	fields := ContextFields(ctx)
	if len(fields) != 3 {
		t.Fatalf("expected 3 context fields, got %d", len(fields))
	}
	seen := map[string]string{}
	for _, attr := range fields {
		seen[attr.Key] = attr.Value.String()
	}
	if seen[FieldFile] != "/tmp/doc.pdf" {
		t.Errorf("file field = %q", seen[FieldFile])
	}
	if seen[FieldStage] != "rename" {
		t.Errorf("stage field = %q", seen[FieldStage])
	}
	if seen[FieldCorrelationID] != "abc-123" {
		t.Errorf("correlation field = %q", seen[FieldCorrelationID])
	}
}

func TestWithContextNilLogger(t *testing.T) {
	logger := WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logger.Info("ignored")
}
