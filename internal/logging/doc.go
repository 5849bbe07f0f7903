// Package logging assembles structured slog loggers used across seratail.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so the watch loop and its sinks tag
// lines with the same field names (run_id, session, tracks). The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// The terminal belongs to the track renderer while a watch is running, so
// loggers normally write to the log file under paths.log_dir rather than
// stdout.
package logging
