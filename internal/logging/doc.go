// Package logging configures crumb's structured logger and reads it back.
//
// Setup returns a logrus logger writing JSON lines. The interactive browser
// owns the terminal, so it logs to a file; the one-shot CLI modes log to
// stderr. Tail and FormatLine back the in-app log overlay.
package logging
