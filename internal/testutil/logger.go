package testutil

import (
	"io"
	"log/slog"
	"os"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DebugLogger returns a logger that writes debug output to stderr.
// Swap it in for NopLogger when diagnosing a failing test.
func DebugLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
