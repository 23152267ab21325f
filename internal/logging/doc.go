// Package logging provides structured logging for ssgctl.
//
// This package wraps the zap logger with convenience functions for the
// patterns used throughout the tool: session lifecycle events and raw HID
// report dumps for protocol debugging.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: raw report hex/ASCII dumps, per-exchange detail
//   - Info: session lifecycle, programmed output changes
//   - Warn: non-fatal issues
//   - Error: fatal issues
//
// # Configuration
//
// Logging is silent by default so CLI output stays clean. Set the
// SSGCTL_LOG_LEVEL environment variable to enable it:
//
//	SSGCTL_LOG_LEVEL=debug ssgctl status
//
// All log output goes to stderr; stdout is reserved for command output.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
