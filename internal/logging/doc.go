// Package logging assembles the structured slog loggers used across mixdown.
//
// It owns the console and JSON handlers and centralizes level and output
// plumbing so every component emits log lines with the same shape. Prefer
// these constructors over hand-rolled slog setup.
package logging
