package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "autograder",
		Usage: "lint and test HTML, CSS and JavaScript assignments",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log debug events to stderr",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogging(cmd.Bool("verbose"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			gradeCommand(),
			queryCommand(),
			structureCommand(),
			examplesCommand(),
			exampleConfigCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		writeError(err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// JSON output helpers
func writeJSON(v any, compact bool) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeError(err error) {
	enc := json.NewEncoder(os.Stderr)
	enc.Encode(map[string]string{
		"error": err.Error(),
	})
}
