package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Placeholders substituted in command arguments.
const (
	ConfigPlaceholder = "{config}"
	FilePlaceholder   = "{file}"
)

// Command is an external lint engine invocation. When no argument contains
// FilePlaceholder the source is written to the engine's stdin.
type Command struct {
	Name string   `mapstructure:"command" json:"command" yaml:"command"`
	Args []string `mapstructure:"args" json:"args" yaml:"args"`
}

// Default commands for the supported engines.
var (
	DefaultStylelint = Command{
		Name: "stylelint",
		Args: []string{"--stdin", "--formatter", "json", "--config", ConfigPlaceholder},
	}
	DefaultHTMLHint = Command{
		Name: "htmlhint",
		Args: []string{"--format", "json", "--config", ConfigPlaceholder, FilePlaceholder},
	}
	DefaultESLint = Command{
		Name: "eslint",
		Args: []string{"--format", "json", "--no-eslintrc", "--config", ConfigPlaceholder, "--stdin"},
	}
)

// Exec runs an external lint engine and decodes its JSON output.
type Exec struct {
	cmd    Command
	ext    string
	config func(Rules) any
	decode func([]byte) (Result, error)
}

// NewStylelint returns a CSS linter backed by stylelint.
func NewStylelint(cmd Command) *Exec {
	return &Exec{
		cmd:    withDefault(cmd, DefaultStylelint),
		ext:    ".css",
		config: func(r Rules) any { return map[string]any{"rules": nonNil(r)} },
		decode: DecodeStylelint,
	}
}

// NewHTMLHint returns an HTML linter backed by htmlhint. HTMLHint takes the
// rules as the whole configuration.
func NewHTMLHint(cmd Command) *Exec {
	return &Exec{
		cmd:    withDefault(cmd, DefaultHTMLHint),
		ext:    ".html",
		config: func(r Rules) any { return nonNil(r) },
		decode: DecodeHTMLHint,
	}
}

// NewESLint returns a JS linter backed by eslint. The browser environment and
// the latest ECMAScript version are always enabled.
func NewESLint(cmd Command) *Exec {
	return &Exec{
		cmd: withDefault(cmd, DefaultESLint),
		ext: ".js",
		config: func(r Rules) any {
			return map[string]any{
				"env":           map[string]any{"browser": true},
				"parserOptions": map[string]any{"ecmaVersion": "latest"},
				"rules":         nonNil(r),
			}
		},
		decode: DecodeESLint,
	}
}

func withDefault(cmd, def Command) Command {
	if cmd.Name == "" {
		cmd.Name = def.Name
	}
	if len(cmd.Args) == 0 {
		cmd.Args = def.Args
	}
	return cmd
}

func nonNil(r Rules) Rules {
	if r == nil {
		return Rules{}
	}
	return r
}

// Command returns the resolved command line.
func (e *Exec) Command() Command {
	return e.cmd
}

// Lint implements Linter. Engines exit non-zero when they report problems, so
// the exit status only matters when nothing could be decoded.
func (e *Exec) Lint(ctx context.Context, src []byte, rules Rules) (Result, error) {
	dir, err := os.MkdirTemp("", "autograder-lint-*")
	if err != nil {
		return Result{}, fmt.Errorf("create lint workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "config.json")
	config, err := json.Marshal(e.config(rules))
	if err != nil {
		return Result{}, fmt.Errorf("encode lint config: %w", err)
	}
	if err := os.WriteFile(configPath, config, 0o644); err != nil {
		return Result{}, fmt.Errorf("write lint config: %w", err)
	}

	filePath := filepath.Join(dir, "source"+e.ext)
	usesFile := false
	args := make([]string, len(e.cmd.Args))
	for i, a := range e.cmd.Args {
		if strings.Contains(a, FilePlaceholder) {
			usesFile = true
		}
		a = strings.ReplaceAll(a, ConfigPlaceholder, configPath)
		args[i] = strings.ReplaceAll(a, FilePlaceholder, filePath)
	}

	cmd := exec.CommandContext(ctx, e.cmd.Name, args...)
	if usesFile {
		if err := os.WriteFile(filePath, src, 0o644); err != nil {
			return Result{}, fmt.Errorf("write lint source: %w", err)
		}
	} else {
		cmd.Stdin = bytes.NewReader(src)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return Result{}, fmt.Errorf("run %s: %w", e.cmd.Name, runErr)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		out = bytes.TrimSpace(stderr.Bytes())
	}
	res, err := e.decode(out)
	if err != nil {
		if runErr != nil {
			return Result{}, fmt.Errorf("run %s: %w: %s", e.cmd.Name, runErr, firstLine(stderr.String()))
		}
		return Result{}, err
	}
	return res, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
