// Package logger is a small factory over log/slog: JSON or text handlers,
// level selection, static attributes, and development/production presets.
package logger
