// Package app is piecebook's composition root.
//
// Setup loads the config file (with .env and environment overrides), opens
// the rotating JSON log, and builds the pieces API client. Run hands the
// resulting Session to the Bubble Tea UI; the cobra commands in internal/cli
// use the same Session for headless calls.
//
// Fatal errors (returned from Setup and Run):
//   - malformed config file or request_timeout
//   - log directory that cannot be created
//   - invalid base URL
//
// Everything after startup degrades instead: API failures surface in the UI
// as inline messages or dialogs and are recorded in the log.
package app
