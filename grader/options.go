package grader

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/arjunmahishi/autograder/html"
	"github.com/arjunmahishi/autograder/lint"
)

// Options configures a Grader.
type Options struct {
	// DisableLinting skips the lint engines; only registered tests run.
	DisableLinting bool

	// Jobs is the number of parallel workers for ProcessDir.
	// If 0, defaults to 1.
	Jobs int

	// MaxBytes skips files larger than this size in ProcessDir.
	// If 0, no size limit is enforced.
	MaxBytes int64

	// Linters overrides the lint engine per language name.
	// Languages without an entry use the built-in syntax linter.
	Linters map[string]lint.Linter

	// Rules is the lint rule configuration per language name.
	Rules map[string]lint.Rules

	// HTMLOptions are applied to every HTML SOM.
	HTMLOptions []html.Option

	// Client fetches sources for ProcessURL.
	// If nil, http.DefaultClient is used.
	Client *http.Client

	// Logger receives grading events. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Option configures a Grader.
type Option func(*Options)

// WithoutLinting disables the lint engines.
func WithoutLinting() Option {
	return func(o *Options) { o.DisableLinting = true }
}

// WithJobs sets the number of parallel workers used by ProcessDir.
func WithJobs(n int) Option {
	return func(o *Options) { o.Jobs = n }
}

// WithMaxBytes skips files larger than n bytes in ProcessDir.
func WithMaxBytes(n int64) Option {
	return func(o *Options) { o.MaxBytes = n }
}

// WithLinter sets the lint engine for a language.
func WithLinter(lang string, l lint.Linter) Option {
	return func(o *Options) {
		if o.Linters == nil {
			o.Linters = make(map[string]lint.Linter)
		}
		o.Linters[lang] = l
	}
}

// WithRules sets the lint rules for a language.
func WithRules(lang string, rules lint.Rules) Option {
	return func(o *Options) {
		if o.Rules == nil {
			o.Rules = make(map[string]lint.Rules)
		}
		o.Rules[lang] = rules
	}
}

// WithHTMLOptions applies query options to every HTML SOM.
func WithHTMLOptions(opts ...html.Option) Option {
	return func(o *Options) { o.HTMLOptions = append(o.HTMLOptions, opts...) }
}

// WithHTTPClient sets the client used by ProcessURL.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.Client = c }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = &l }
}
