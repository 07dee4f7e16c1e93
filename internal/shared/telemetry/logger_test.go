package telemetry

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorFlattensErrValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Use(zap.New(core))
	defer restore()

	Error("store.failed", map[string]any{
		"op":  "update",
		"err": errors.New("boom"),
	})

	entries := logs.FilterMessage("store.failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["err"] != "boom" {
		t.Fatalf("expected err=boom, got %v", fields["err"])
	}
	if fields["op"] != "update" {
		t.Fatalf("expected op=update, got %v", fields["op"])
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[0].Level)
	}
}

func TestUseRestoresPreviousLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Use(zap.New(core))
	restore()

	Info("after.restore", nil)
	if logs.Len() != 0 {
		t.Fatalf("expected restored logger to receive entries, observer got %d", logs.Len())
	}
}
