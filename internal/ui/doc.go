// Package ui provides terminal output components for the ssgctl CLI.
//
// This package uses Lipgloss to render styled "run once and exit" output
// (status panels, capability tables, device lists) and Bubble Tea for the
// one interactive surface, the live status watcher.
//
// # Components
//
//   - Status panel: the generator's current output state with fault flags
//   - Capabilities panel: identity and the programmable envelope
//   - Device list: scan results as an aligned table
//   - Watch: a Bubble Tea model polling status at a fixed interval
//
// # Logging Integration
//
// This package expects logging to be controlled via the SSGCTL_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly.
//
// All styled output honors the terminal width, clamped to a readable range.
package ui
