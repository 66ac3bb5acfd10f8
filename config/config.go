// Package config loads autograder settings from a YAML file, environment
// variables and defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arjunmahishi/autograder/grader"
	"github.com/arjunmahishi/autograder/lint"
	"github.com/arjunmahishi/autograder/report"
)

// Default values.
const (
	DefaultFormat   = "json"
	DefaultMaxBytes = 2 * 1024 * 1024
)

// Config is the top-level configuration.
type Config struct {
	DisableLinting bool           `mapstructure:"disable_linting" yaml:"disable_linting"`
	Jobs           int            `mapstructure:"jobs" yaml:"jobs"`
	MaxBytes       int64          `mapstructure:"max_bytes" yaml:"max_bytes"`
	Format         string         `mapstructure:"format" yaml:"format"`
	Linters        Linters        `mapstructure:"linters" yaml:"linters"`
	Checks         []grader.Check `mapstructure:"checks" yaml:"checks"`
}

// Linters configures the lint engine of each language.
type Linters struct {
	CSS  Linter `mapstructure:"css" yaml:"css"`
	HTML Linter `mapstructure:"html" yaml:"html"`
	JS   Linter `mapstructure:"js" yaml:"js"`
}

// Linter configures one lint engine. Without a command or arguments the
// built-in syntax linter is used; a command alone runs with the engine's
// default arguments.
type Linter struct {
	Command string         `mapstructure:"command" yaml:"command"`
	Args    []string       `mapstructure:"args" yaml:"args"`
	Rules   map[string]any `mapstructure:"rules" yaml:"rules"`
}

// External reports whether an external engine is configured.
func (l Linter) External() bool {
	return l.Command != "" || len(l.Args) > 0
}

// byLang returns the linter settings keyed by language name.
func (l Linters) byLang() map[string]Linter {
	return map[string]Linter{"css": l.CSS, "html": l.HTML, "js": l.JS}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must not be negative, got %d", c.Jobs))
	}
	if c.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("max_bytes must not be negative, got %d", c.MaxBytes))
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	for i, check := range c.Checks {
		if err := check.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("checks[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// GraderOptions translates the configuration into grader options.
func (c *Config) GraderOptions(log zerolog.Logger) []grader.Option {
	opts := []grader.Option{
		grader.WithJobs(c.Jobs),
		grader.WithMaxBytes(c.MaxBytes),
		grader.WithLogger(log),
	}
	if c.DisableLinting {
		opts = append(opts, grader.WithoutLinting())
	}
	for name, l := range c.Linters.byLang() {
		if l.Rules != nil {
			opts = append(opts, grader.WithRules(name, lint.Rules(l.Rules)))
		}
		if !l.External() {
			continue
		}
		lang := grader.Get(name)
		opts = append(opts, grader.WithLinter(name, lang.Engine(lint.Command{Name: l.Command, Args: l.Args})))
	}
	return opts
}
