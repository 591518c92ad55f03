package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	return rec
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l *SlogLogger, ctx context.Context)
		level string
	}{
		{"info", func(l *SlogLogger, ctx context.Context) { l.Info(ctx, "m") }, "INFO"},
		{"warn", func(l *SlogLogger, ctx context.Context) { l.Warn(ctx, "m") }, "WARN"},
		{"error", func(l *SlogLogger, ctx context.Context) { l.Error(ctx, "m") }, "ERROR"},
		{"debug", func(l *SlogLogger, ctx context.Context) { l.Debug(ctx, "m") }, "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferLogger()
			tt.log(l, context.Background())
			rec := lastRecord(t, buf)
			if rec["level"] != tt.level {
				t.Errorf("expected level %s, got %v", tt.level, rec["level"])
			}
		})
	}
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	l, buf := newBufferLogger()

	child := l.With("module", "test")
	child.Info(context.Background(), "hello", "k", "v")

	rec := lastRecord(t, buf)
	if rec["module"] != "test" {
		t.Errorf("expected module=test, got %v", rec["module"])
	}
	if rec["k"] != "v" {
		t.Errorf("expected k=v, got %v", rec["k"])
	}
}
