package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zapcore.Level
		wantOK bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"verbose", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := parseLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := wrap(zap.New(core)).With(String("request_id", "abc"))

	l.Info("hello", Int("n", 2))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["request_id"] != "abc" {
		t.Errorf("request_id = %v, want abc", ctx["request_id"])
	}
	if ctx["n"] != int64(2) {
		t.Errorf("n = %v (%T), want 2", ctx["n"], ctx["n"])
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded")
	l.With(Bool("x", true)).Warnf("discarded %d", 1)
}
