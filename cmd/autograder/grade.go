package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/autograder/config"
	"github.com/arjunmahishi/autograder/grader"
	"github.com/arjunmahishi/autograder/report"
)

func gradeCommand() *cli.Command {
	return &cli.Command{
		Name:  "grade",
		Usage: "lint and test files, a directory or a URL",
		Description: "Exactly one of --file, --path or --url selects the input.\n" +
			"Checks and linters come from autograder.yaml (see example-config).\n\n" +
			"Examples:\n" +
			"  autograder grade --path site --ext html --ext css\n" +
			"  autograder grade -f index.html --format console\n" +
			"  autograder grade --url https://example.com/ --disable-linting",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (default: autograder.yaml in . or $HOME)",
			},
			&cli.StringSliceFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "file to grade (repeatable)",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "directory to grade recursively",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "URL to fetch and grade",
			},
			&cli.StringSliceFlag{
				Name:  "ext",
				Usage: "extensions to grade with --path (default: all supported)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: json, yaml or console",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize JSON output",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colors in console output",
			},
			&cli.BoolFlag{
				Name:  "disable-linting",
				Usage: "run only the configured checks",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "number of parallel workers",
			},
			&cli.Int64Flag{
				Name:  "max-bytes",
				Usage: "skip files larger than this",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "exit non-zero when any error is reported",
			},
		},
		Action: runGrade,
	}
}

func runGrade(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	applyFlags(cfg, cmd)

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	g := grader.New(cfg.GraderOptions(log.Logger)...)
	if err := g.RegisterChecks(cfg.Checks...); err != nil {
		return err
	}

	reports, err := collectReports(ctx, g, cmd)
	if err != nil {
		return err
	}

	w := report.NewWriter(report.Config{
		Format:  format,
		Compact: cmd.Bool("compact"),
		NoColor: cmd.Bool("no-color"),
	})
	if err := w.Write(reports); err != nil {
		return err
	}

	if cmd.Bool("fail-on-error") {
		var n int
		for _, r := range reports {
			n += len(r.Error)
		}
		if n > 0 {
			return fmt.Errorf("%d errors found", n)
		}
	}
	return nil
}

// applyFlags lets explicitly set flags override the loaded configuration.
func applyFlags(cfg *config.Config, cmd *cli.Command) {
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("disable-linting") {
		cfg.DisableLinting = cmd.Bool("disable-linting")
	}
	if cmd.IsSet("jobs") {
		cfg.Jobs = cmd.Int("jobs")
	}
	if cmd.IsSet("max-bytes") {
		cfg.MaxBytes = cmd.Int64("max-bytes")
	}
}

func collectReports(ctx context.Context, g *grader.Grader, cmd *cli.Command) ([]*report.Report, error) {
	files := cmd.StringSlice("file")
	dir := cmd.String("path")
	url := cmd.String("url")

	set := 0
	for _, ok := range []bool{len(files) > 0, dir != "", url != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New("exactly one of --file, --path or --url is required")
	}

	switch {
	case dir != "":
		return g.ProcessDir(ctx, dir, cmd.StringSlice("ext")...)
	case url != "":
		return []*report.Report{g.ProcessURL(ctx, url)}, nil
	}

	reports := make([]*report.Report, 0, len(files))
	for _, f := range files {
		reports = append(reports, g.ProcessFile(ctx, f))
	}
	return reports, nil
}
