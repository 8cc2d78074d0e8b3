// Package logging provides the unified logging interface used by the engine,
// the device layer, and the HTTP server. It wraps zerolog behind a small
// Logger interface and keeps a standard-library adapter for callers that
// already own a *log.Logger.
package logging
