package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractFieldsFromContext(t *testing.T) {
	ctx := WithSeq(WithRunID(context.Background(), "run-1"), 3)
	fields := extractFieldsFromContext(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != "run_id" || fields[0].String != "run-1" {
		t.Fatalf("unexpected run field: %+v", fields[0])
	}
	if fields[1].Key != "seq" || fields[1].Integer != 3 {
		t.Fatalf("unexpected seq field: %+v", fields[1])
	}
	if got := extractFieldsFromContext(context.Background()); len(got) != 0 {
		t.Fatalf("expected no fields, got %v", got)
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.log")
	l, err := NewLogger(Config{Level: "debug", Format: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.WithContext(WithRunID(context.Background(), "abc")).Info("run started")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"run_id":"abc"`) || !strings.Contains(string(data), "run started") {
		t.Fatalf("unexpected log content: %s", data)
	}
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	if _, err := NewLogger(Config{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestGlobalHelpersWithoutInit(t *testing.T) {
	prev := GetLogger()
	SetLogger(nil)
	defer SetLogger(prev)

	Info(context.Background(), "dropped")
	if err := Sync(); err != nil {
		t.Fatalf("sync without logger: %v", err)
	}
}
