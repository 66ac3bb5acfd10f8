package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/autograder/grader"
)

const sample = `
disable_linting: true
jobs: 2
format: console
linters:
  css:
    command: stylelint
    rules:
      block-no-empty: true
checks:
  - lang: html
    rule: has-heading
    pattern: h1
    success: Heading found.
  - lang: html
    rule: no-marquee
    pattern: marquee
    max: 0
    severity: warning
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autograder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	require.True(t, cfg.DisableLinting)
	require.Equal(t, 2, cfg.Jobs)
	require.Equal(t, int64(DefaultMaxBytes), cfg.MaxBytes)
	require.Equal(t, "console", cfg.Format)
	require.Equal(t, "stylelint", cfg.Linters.CSS.Command)
	require.Equal(t, true, cfg.Linters.CSS.Rules["block-no-empty"])
	require.True(t, cfg.Linters.CSS.External())
	require.False(t, cfg.Linters.JS.External())

	require.Len(t, cfg.Checks, 2)
	require.Nil(t, cfg.Checks[0].Max)
	require.NotNil(t, cfg.Checks[1].Max)
	require.Equal(t, 0, *cfg.Checks[1].Max)
	require.Equal(t, "warning", cfg.Checks[1].Severity)
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	cfg, err := Load("")
	require.NoError(t, err)
	require.False(t, cfg.DisableLinting)
	require.Equal(t, runtime.NumCPU(), cfg.Jobs)
	require.Equal(t, DefaultFormat, cfg.Format)
	require.Empty(t, cfg.Checks)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("AUTOGRADER_JOBS", "7")
	t.Setenv("AUTOGRADER_FORMAT", "yaml")
	t.Setenv("AUTOGRADER_LINTERS_JS_COMMAND", "eslint")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Jobs)
	require.Equal(t, "yaml", cfg.Format)
	require.Equal(t, "eslint", cfg.Linters.JS.Command)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad_format", "format: xml\n"},
		{"negative_jobs", "jobs: -1\n"},
		{"bad_check", "checks:\n  - lang: py\n    rule: x\n    pattern: def\n"},
		{"bad_yaml", "jobs: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicit config file must exist")
}

func TestGraderOptions(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	g := grader.New(cfg.GraderOptions(zerolog.Nop())...)
	require.NoError(t, g.RegisterChecks(cfg.Checks...))

	r := g.ProcessSource(context.Background(), "html", "index.html", "<h1>Hi</h1>\n<marquee>x</marquee>")
	require.Empty(t, r.Error)
	require.Len(t, r.Warning, 1)
	require.Equal(t, "no-marquee", r.Warning[0].Rule)
	require.Len(t, r.Notice, 1)
	require.Equal(t, "Heading found.", r.Notice[0].Text)
}
