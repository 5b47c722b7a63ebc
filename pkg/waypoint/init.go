// Package waypoint provides the navigation engine of a single-page hybrid
// application: given a destination, it checks that the displayed content may
// unload, builds the next view off-screen, and commits it with the right
// transition animation while keeping the master view, the secondary
// navigation index and the page's fragments consistent.
//
// The Controller is the entry point. Rendering, animation and viewport
// metrics are supplied by the host through the interfaces in package view.
package waypoint

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
)

func init() {
	if level := os.Getenv(constants.LogLevelEnvVar); level != "" {
		internal.SetRawLogLevel(level)
	} else if constants.IsDevMode() {
		internal.SetLogLevel(slog.LevelDebug)
	}
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before the first GetLogger or New to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the engine logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the engine logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// CloseLogger closes the log file, if one was opened.
func CloseLogger() {
	internal.CloseLogger()
}
