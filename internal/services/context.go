package services

import (
	"context"
	"strings"
)

type contextKey string

const (
	fileContextKey      contextKey = "pdfocr.file"
	stageContextKey     contextKey = "pdfocr.stage"
	requestIDContextKey contextKey = "pdfocr.request_id"
)

// WithFile annotates the context with the file currently being processed.
func WithFile(ctx context.Context, path string) context.Context {
	path = strings.TrimSpace(path)
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, fileContextKey, path)
}

// FileFromContext extracts the current file path, when present.
func FileFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(fileContextKey).(string)
	return value, ok && value != ""
}

// WithStage annotates the context with the active pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageContextKey, stage)
}

// StageFromContext extracts the active stage name, when present.
func StageFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(stageContextKey).(string)
	return value, ok && value != ""
}

// WithRequestID annotates the context with a correlation identifier for a
// single cloud API exchange.
func WithRequestID(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestIDFromContext extracts the correlation identifier, when present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(requestIDContextKey).(string)
	return value, ok && value != ""
}
