// Package logging provides the structured logger for ecume-admin.
//
// Logging is silent by default so it never corrupts the TUI or the styled
// command output. Set the ECUME_LOG_LEVEL environment variable to "debug",
// "info", "warn", or "error" to enable console logging on stderr.
package logging
