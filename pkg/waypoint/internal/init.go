// Package internal contains the shared infrastructure of the waypoint engine:
// the engine-wide logger and the key-repeat timing used by input sources.
// Types and functions in this package are not part of the public API.
package internal
