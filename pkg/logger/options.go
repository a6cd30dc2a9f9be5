package logger

import (
	"io"
	"log/slog"
)

// Option adjusts the logger built by New.
type Option func(*config)

// WithDebug lowers the level to Debug. False keeps the Info default.
func WithDebug(debug bool) Option {
	return func(c *config) {
		if debug {
			c.level = slog.LevelDebug
		}
	}
}

// WithPretty selects the charmbracelet/log handler, meant for terminal
// output during local runs.
func WithPretty(pretty bool) Option {
	return func(c *config) {
		c.pretty = pretty
	}
}

// WithJSON selects slog's JSON handler, meant for log files and
// collectors.
func WithJSON(json bool) Option {
	return func(c *config) {
		c.json = json
	}
}

// WithWriter sends output to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.writers = []io.Writer{w}
	}
}

// WithWriters fans output out to every writer given.
func WithWriters(w ...io.Writer) Option {
	return func(c *config) {
		c.writers = w
	}
}

// WithSource annotates each record with the caller's file and line.
func WithSource(source bool) Option {
	return func(c *config) {
		c.source = source
	}
}
