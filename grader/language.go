package grader

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/autograder/lint"
)

// Language defines the interface for a gradable language.
type Language interface {
	// Name returns the language identifier ("css", "html" or "js").
	Name() string

	// Extensions returns file extensions for this language (e.g., [".css"]).
	Extensions() []string

	// TreeSitterLang returns the tree-sitter language grammar.
	TreeSitterLang() *sitter.Language

	// Engine returns the external lint engine for the language, run with cmd.
	Engine(cmd lint.Command) lint.Linter
}

// registry holds all registered languages.
var registry = make(map[string]Language)

// Register adds a language to the registry.
// This is typically called from init() functions in language implementation files.
func Register(lang Language) {
	registry[lang.Name()] = lang
}

// Get returns a language by name, or nil if not found.
func Get(name string) Language {
	return registry[name]
}

// List returns all registered language names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByExtension finds a language by file extension. The leading dot is
// optional and case is ignored.
func ByExtension(ext string) Language {
	ext = normalizeExt(ext)
	if ext == "" {
		return nil
	}
	for _, lang := range registry {
		for _, e := range lang.Extensions() {
			if e == "."+ext {
				return lang
			}
		}
	}
	return nil
}

// normalizeExt lowercases an extension and strips its leading dot.
func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
