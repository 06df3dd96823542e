// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, carries request-scoped loggers through
// context.Context, and offers buffer-backed helpers for asserting on log output
// in tests.
package logger
