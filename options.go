package versiondispatch

import (
	"log/slog"

	"github.com/BenjaminBossan/versiondispatch/facts"
)

// Option configures a Dispatcher at construction time.
type Option func(*config)

// RegisterOption configures a single registration.
type RegisterOption func(*registerConfig)

type config struct {
	facts  facts.Source
	logger *slog.Logger
}

type registerConfig struct {
	warning *WarningSpec
}

// WarningSpec describes a diagnostic emitted on every call when its
// registration wins resolution. It is a side channel, never a failure:
// typically used to flag deprecated code paths kept alive for old
// dependency versions.
type WarningSpec struct {
	// Category groups related warnings, e.g. "deprecation".
	Category string

	// Message is the warning text.
	Message string
}

// WithFacts replaces the fact source predicates are evaluated against.
// The default source reads the process environment and the binary's build
// info. Tests use this to pretend components are installed at chosen
// versions.
func WithFacts(src facts.Source) Option {
	return func(c *config) {
		c.facts = src
	}
}

// WithLogger sets the logger warnings are emitted through. Defaults to
// slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithWarning attaches a warning to a registration. If that registration
// wins resolution, every call emits the warning at Warn level before
// returning the implementation.
func WithWarning(category, message string) RegisterOption {
	return func(c *registerConfig) {
		c.warning = &WarningSpec{Category: category, Message: message}
	}
}
