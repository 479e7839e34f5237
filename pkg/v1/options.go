package v1

import "log/slog"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	scope   string
	locale  string
	dataDir string
	logger  *slog.Logger
}

// WithScope forces a specific scope (global or project).
func WithScope(scope string) Option {
	return func(c *clientConfig) {
		c.scope = scope
	}
}

// WithLocale overrides the configured number locale, e.g. "de-DE".
func WithLocale(tag string) Option {
	return func(c *clientConfig) {
		c.locale = tag
	}
}

// WithDataDir uses dir as the data directory instead of resolving a scope.
// The directory is created when missing.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
