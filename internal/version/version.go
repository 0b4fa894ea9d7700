// Package version contains information on the current version of the
// program. It is split out for easy use by both the CLI and the server.
package version

// Current is the string representing the current version of shrdlite.
const Current = "0.1.0"

// ServerCurrent is the string representing the current version of
// shrdlited, the HTTP server.
const ServerCurrent = "shrdlited-0.1.0"
