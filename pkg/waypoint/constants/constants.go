// Package constants defines shared constants, environment variables and
// default tuning values used throughout the waypoint engine.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by the engine and the demo host.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	ConfigPathEnvVar   = "WAYPOINT_CONFIG"
	LogLevelEnvVar     = "WAYPOINT_LOG_LEVEL"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Default timing values. Both are tuning choices and can be overridden
// through configuration.
const (
	DefaultGuardTimeout     = 120 * time.Second     // Chain-wide unload check timeout
	DefaultOrientationRetry = 50 * time.Millisecond // Yield before draining a deferred orientation change
)

// DefaultHome is the home destination when none is configured.
const DefaultHome = "home"

// Breakpoint upper bounds, in pixels of viewport width (inclusive).
const (
	SmallMaxWidth       = 499
	MediumSmallMaxWidth = 699
	MediumMaxWidth      = 899
	BiggerMaxWidth      = 1099
)

// Layout defaults, in pixels.
const (
	MasterLaneMinWidth = 699  // Below this a paired master is shown maximized
	MasterLaneWidth    = 320  // Fixed lane width up to the "bigger" breakpoint
	MasterLaneRatio    = 0.30 // Proportional lane width at the "full" breakpoint
	IndexBarHeight     = 48   // Horizontal secondary index height
	IndexRailWidth     = 240  // Vertical secondary index width
	SlideOffset        = 40   // Item-level slide translation
)

// Key-repeat timing for hardware input sources.
const (
	DefaultRepeatDelay    = 300 * time.Millisecond
	DefaultRepeatInterval = 100 * time.Millisecond
)
