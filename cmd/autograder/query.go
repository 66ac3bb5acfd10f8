package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/autograder/css"
	"github.com/arjunmahishi/autograder/grader"
	"github.com/arjunmahishi/autograder/html"
	"github.com/arjunmahishi/autograder/js"
	"github.com/arjunmahishi/autograder/som"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "run a SOM query against a file",
		Description: "The query language depends on the file type; see example-queries.\n\n" +
			"Examples:\n" +
			"  autograder query -f style.css -q '@media+print, .nav'\n" +
			"  autograder query -f index.html -q 'a[data-test=testing]'\n" +
			"  autograder query -f app.js -q 'class Shape' --first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "file to query (required)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "query",
				Aliases:  []string{"q"},
				Usage:    "query string (required)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "first",
				Usage: "return only the first match",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "HTML only: fail instead of restarting when a level matches nothing",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
		},
		Action: runQuery,
	}
}

// match is one query result.
type match struct {
	Key   string   `json:"key"`
	Loc   som.Span `json:"loc"`
	Value string   `json:"value"`
}

func matchesOf[P any](entries []*som.Entry[P], value func(som.Entry[P]) string) []match {
	out := make([]match, 0, len(entries))
	for _, e := range entries {
		out = append(out, match{Key: e.Key, Loc: e.Loc, Value: value(*e)})
	}
	return out
}

func runQuery(ctx context.Context, cmd *cli.Command) error {
	lang, src, err := readSource(cmd.String("file"))
	if err != nil {
		return err
	}
	q := cmd.String("query")

	var matches []match
	switch lang.Name() {
	case "css":
		m, err := css.ParseContext(ctx, src)
		if err != nil {
			return err
		}
		matches = matchesOf(m.FindAll(q), m.Value)
	case "html":
		var opts []html.Option
		if cmd.Bool("strict") {
			opts = append(opts, html.WithStrictLevels())
		}
		m, err := html.ParseContext(ctx, src, opts...)
		if err != nil {
			return err
		}
		matches = matchesOf(m.FindAll(q), m.Value)
	case "js":
		m, err := js.ParseContext(ctx, src)
		if err != nil {
			return err
		}
		matches = matchesOf(m.FindAll(q), m.Value)
	}

	if cmd.Bool("first") {
		if len(matches) == 0 {
			return writeJSON(nil, cmd.Bool("compact"))
		}
		return writeJSON(matches[0], cmd.Bool("compact"))
	}
	return writeJSON(matches, cmd.Bool("compact"))
}

func structureCommand() *cli.Command {
	return &cli.Command{
		Name:  "structure",
		Usage: "print the structured object model of a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "file to analyze (required)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
		},
		Action: runStructure,
	}
}

func runStructure(ctx context.Context, cmd *cli.Command) error {
	lang, src, err := readSource(cmd.String("file"))
	if err != nil {
		return err
	}

	var structure any
	switch lang.Name() {
	case "css":
		m, err := css.ParseContext(ctx, src)
		if err != nil {
			return err
		}
		structure = m.Structure()
	case "html":
		m, err := html.ParseContext(ctx, src)
		if err != nil {
			return err
		}
		structure = m.Structure()
	case "js":
		m, err := js.ParseContext(ctx, src)
		if err != nil {
			return err
		}
		structure = m.Structure()
	}
	return writeJSON(structure, cmd.Bool("compact"))
}

// readSource reads a file of a supported language.
func readSource(path string) (grader.Language, string, error) {
	lang := grader.ByExtension(filepath.Ext(path))
	if lang == nil {
		return nil, "", fmt.Errorf("unsupported file type: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return lang, string(data), nil
}
