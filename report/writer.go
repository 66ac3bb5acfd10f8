package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Format selects how reports are written.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatConsole Format = "console"
)

// ParseFormat validates a format name. The empty name means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, FormatConsole:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml or console)", s)
}

// Config holds output configuration.
type Config struct {
	Format  Format
	Compact bool
	NoColor bool
	Output  io.Writer
}

// Writer writes reports in the configured format.
type Writer struct {
	cfg Config
}

// NewWriter creates a new report Writer.
func NewWriter(cfg Config) *Writer {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Format == "" {
		cfg.Format = FormatJSON
	}
	return &Writer{cfg: cfg}
}

// Write outputs the reports.
func (w *Writer) Write(reports []*Report) error {
	switch w.cfg.Format {
	case FormatYAML:
		return w.writeYAML(reports)
	case FormatConsole:
		return w.writeConsole(reports)
	default:
		return w.WriteValue(reports)
	}
}

// WriteValue outputs any value as JSON.
func (w *Writer) WriteValue(v any) error {
	enc := json.NewEncoder(w.cfg.Output)
	enc.SetEscapeHTML(false)
	if !w.cfg.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func (w *Writer) writeYAML(reports []*Report) error {
	enc := yaml.NewEncoder(w.cfg.Output)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

type palette struct {
	title, err, warn, notice, ok *color.Color
}

func (w *Writer) palette() palette {
	p := palette{
		title:  color.New(color.Bold),
		err:    color.New(color.FgRed),
		warn:   color.New(color.FgYellow),
		notice: color.New(color.FgCyan),
		ok:     color.New(color.FgGreen),
	}
	if w.cfg.NoColor {
		for _, c := range []*color.Color{p.title, p.err, p.warn, p.notice, p.ok} {
			c.DisableColor()
		}
	}
	return p
}

// writeConsole renders one table per file followed by a summary line.
func (w *Writer) writeConsole(reports []*Report) error {
	p := w.palette()
	out := w.cfg.Output

	for _, r := range reports {
		name := r.File
		if name == "" {
			name = r.Name
		}
		p.title.Fprintf(out, "%s\n", name)

		if r.Empty() {
			p.ok.Fprintf(out, "  no problems found\n\n")
			continue
		}

		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"Severity", "Rule", "Line", "Col", "Message"})
		for _, it := range r.Error {
			tbl.AppendRow(table.Row{p.err.Sprint("error"), it.Rule, it.Line, it.Col, it.Text})
		}
		for _, it := range r.Warning {
			tbl.AppendRow(table.Row{p.warn.Sprint("warning"), it.Rule, it.Line, it.Col, it.Text})
		}
		for _, it := range r.Notice {
			tbl.AppendRow(table.Row{p.notice.Sprint("notice"), it.Rule, it.Line, it.Col, it.Text})
		}
		tbl.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d errors, %d warnings, %d notices",
			len(r.Error), len(r.Warning), len(r.Notice))})
		if _, err := fmt.Fprintf(out, "%s\n\n", tbl.Render()); err != nil {
			return err
		}
	}

	var errs, warns, notices int
	for _, r := range reports {
		errs += len(r.Error)
		warns += len(r.Warning)
		notices += len(r.Notice)
	}
	summary := p.ok
	if errs > 0 {
		summary = p.err
	} else if warns > 0 {
		summary = p.warn
	}
	_, err := summary.Fprintf(out, "%d files: %d errors, %d warnings, %d notices\n",
		len(reports), errs, warns, notices)
	return err
}
