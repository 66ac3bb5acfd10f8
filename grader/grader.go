// Package grader lints and tests CSS, HTML and JavaScript sources and collects
// the findings into reports.
package grader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arjunmahishi/autograder/css"
	"github.com/arjunmahishi/autograder/html"
	"github.com/arjunmahishi/autograder/js"
	"github.com/arjunmahishi/autograder/lint"
	"github.com/arjunmahishi/autograder/report"
)

// Rules of the notices and errors the grader itself reports.
const (
	RuleUnsupported    = "unsupported-file-type"
	RuleNotFound       = "file-not-found"
	RuleProcessing     = "processing-error"
	RuleNoExtensions   = "no-extensions"
	RuleJSParseError   = "js-parse-error"
	RuleCSSParseError  = "css-parse-error"
	RuleHTMLParseError = "html-parse-error"
)

// Test callbacks receive the SOM of a file and the report to add findings to.
type (
	CSSTest  func(m *css.SOM, r *report.Report)
	HTMLTest func(m *html.SOM, r *report.Report)
	JSTest   func(m *js.SOM, r *report.Report)
)

// TestSet groups test callbacks by language.
type TestSet struct {
	CSS  []CSSTest
	HTML []HTMLTest
	JS   []JSTest
}

// Grader runs lint engines and registered tests over sources. Registration
// and processing may happen from different goroutines.
type Grader struct {
	opts Options
	log  zerolog.Logger

	mu    sync.RWMutex
	tests TestSet
}

// New creates a Grader.
func New(opts ...Option) *Grader {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	g := &Grader{opts: o, log: zerolog.Nop()}
	if o.Logger != nil {
		g.log = o.Logger.With().Str("component", "grader").Logger()
	}
	if g.opts.Client == nil {
		g.opts.Client = http.DefaultClient
	}
	return g
}

// RegisterCSSTest adds a CSS test. Nil callbacks are ignored.
func (g *Grader) RegisterCSSTest(fn CSSTest) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tests.CSS = append(g.tests.CSS, fn)
}

// RegisterHTMLTest adds an HTML test. Nil callbacks are ignored.
func (g *Grader) RegisterHTMLTest(fn HTMLTest) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tests.HTML = append(g.tests.HTML, fn)
}

// RegisterJSTest adds a JavaScript test. Nil callbacks are ignored.
func (g *Grader) RegisterJSTest(fn JSTest) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tests.JS = append(g.tests.JS, fn)
}

// RegisterTests adds every test of the set.
func (g *Grader) RegisterTests(set TestSet) {
	for _, fn := range set.CSS {
		g.RegisterCSSTest(fn)
	}
	for _, fn := range set.HTML {
		g.RegisterHTMLTest(fn)
	}
	for _, fn := range set.JS {
		g.RegisterJSTest(fn)
	}
}

func (g *Grader) snapshot() TestSet {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return TestSet{
		CSS:  append([]CSSTest(nil), g.tests.CSS...),
		HTML: append([]HTMLTest(nil), g.tests.HTML...),
		JS:   append([]JSTest(nil), g.tests.JS...),
	}
}

// linter returns the engine configured for a language.
func (g *Grader) linter(lang Language) lint.Linter {
	if l, ok := g.opts.Linters[lang.Name()]; ok && l != nil {
		return l
	}
	return lint.NewSyntax(lang.TreeSitterLang())
}

// ProcessSource lints and tests src as a file with the given extension. file
// is the path or URL the source came from; it only labels the report.
func (g *Grader) ProcessSource(ctx context.Context, ext, file, src string) *report.Report {
	ext = normalizeExt(ext)
	lang := ByExtension(ext)
	if lang == nil {
		return notice(fmt.Sprintf("Unsupported file type, no tests run: %s", ext), RuleUnsupported)
	}

	var lintRes lint.Result
	code := report.New()

	eg, egCtx := errgroup.WithContext(ctx)
	if !g.opts.DisableLinting {
		eg.Go(func() error {
			lintRes = lint.Run(egCtx, g.linter(lang), lang.Name(), []byte(src), g.opts.Rules[lang.Name()])
			return nil
		})
	}
	eg.Go(func() error {
		g.test(egCtx, lang, src, code)
		return nil
	})
	_ = eg.Wait()

	r := report.New()
	r.AddLint(lintRes)
	r.Merge(code)
	r.File = file
	r.Name = path.Base(filepath.ToSlash(file))
	r.Ext = ext
	r.Src = src

	g.log.Debug().
		Str("file", file).
		Str("lang", lang.Name()).
		Int("errors", len(r.Error)).
		Int("warnings", len(r.Warning)).
		Int("notices", len(r.Notice)).
		Msg("graded")
	return r
}

// test builds the SOM of src and runs the registered tests of its language
// in registration order.
func (g *Grader) test(ctx context.Context, lang Language, src string, r *report.Report) {
	tests := g.snapshot()

	switch lang.Name() {
	case "css":
		m, err := css.ParseContext(ctx, src)
		if err != nil {
			g.log.Warn().Err(err).Msg("css parse failed")
			r.AddError(report.MakeItem(err.Error(), RuleCSSParseError, 0, 0))
		}
		for _, fn := range tests.CSS {
			g.guard(r, func() { fn(m, r) })
		}
	case "html":
		m, err := html.ParseContext(ctx, src, g.opts.HTMLOptions...)
		if err != nil {
			g.log.Warn().Err(err).Msg("html parse failed")
			r.AddError(report.MakeItem(err.Error(), RuleHTMLParseError, 0, 0))
		}
		for _, fn := range tests.HTML {
			g.guard(r, func() { fn(m, r) })
		}
	case "js":
		m, err := js.ParseContext(ctx, src)
		if err != nil {
			var pe *js.ParseError
			if errors.As(err, &pe) {
				r.AddError(report.MakeItem(pe.Error(), RuleJSParseError, pe.Line, pe.Column))
			} else {
				r.AddError(report.MakeItem(err.Error(), RuleJSParseError, 0, 0))
			}
			return
		}
		for _, fn := range tests.JS {
			g.guard(r, func() { fn(m, r) })
		}
	}
}

// guard runs a test and reports a panic as a processing error.
func (g *Grader) guard(r *report.Report, fn func()) {
	defer func() {
		if v := recover(); v != nil {
			g.log.Error().Interface("panic", v).Msg("test panicked")
			r.AddError(report.MakeItem(fmt.Sprintf("Error: test panicked: %v", v), RuleProcessing, 0, 0))
		}
	}()
	fn()
}

// ProcessFile lints and tests the file at path.
func (g *Grader) ProcessFile(ctx context.Context, file string) *report.Report {
	return g.processFile(ctx, file, file)
}

func (g *Grader) processFile(ctx context.Context, file, display string) *report.Report {
	ext := normalizeExt(filepath.Ext(file))
	if ByExtension(ext) == nil {
		return notice(fmt.Sprintf("Unsupported file type, no tests run: %s", ext), RuleUnsupported)
	}

	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return notice("File not found.", RuleNotFound)
	}
	if err != nil {
		g.log.Warn().Err(err).Str("file", file).Msg("read failed")
		return notice(fmt.Sprintf("Error: %v", err), RuleProcessing)
	}
	return g.ProcessSource(ctx, ext, display, string(data))
}

// ProcessDir grades every file below dir whose extension is in exts. An
// empty exts means every supported extension. When no extension is supported
// a single report carrying a "no-extensions" notice is returned. Reports are
// sorted by file path relative to dir.
func (g *Grader) ProcessDir(ctx context.Context, dir string, exts ...string) ([]*report.Report, error) {
	allowed := supportedExts(exts)
	if len(allowed) == 0 {
		return []*report.Report{notice("No valid file extension(s) provided.", RuleNoExtensions)}, nil
	}

	s := newScanner(scannerConfig{
		root:     dir,
		exts:     allowed,
		maxBytes: g.opts.MaxBytes,
	})
	files, err := s.collect()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	g.log.Debug().Str("dir", dir).Int("files", len(files)).Int("jobs", g.opts.Jobs).Msg("grading directory")

	reports := runWorkers(files, g.opts.Jobs, func(job FileJob) *report.Report {
		if ctx.Err() != nil {
			return notice(fmt.Sprintf("Error: %v", ctx.Err()), RuleProcessing)
		}
		r := g.processFile(ctx, job.AbsPath, job.DisplayPath)
		r.File = job.DisplayPath
		return r
	})
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].File < reports[j].File
	})
	return reports, nil
}

// supportedExts filters exts down to the registered extensions, returned
// with a leading dot. An empty exts selects every registered extension.
func supportedExts(exts []string) map[string]struct{} {
	out := make(map[string]struct{})
	if len(exts) == 0 {
		for _, name := range List() {
			for _, e := range Get(name).Extensions() {
				out[e] = struct{}{}
			}
		}
		return out
	}
	for _, e := range exts {
		e = normalizeExt(e)
		if ByExtension(e) != nil {
			out["."+e] = struct{}{}
		}
	}
	return out
}

func notice(text, rule string) *report.Report {
	r := report.New()
	r.AddNotice(report.MakeItem(text, rule, 0, 0))
	return r
}
