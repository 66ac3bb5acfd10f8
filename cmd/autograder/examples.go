package main

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/urfave/cli/v3"
)

//go:embed example_queries.txt
var examplesText string

//go:embed example_config.yaml
var exampleConfig string

func examplesCommand() *cli.Command {
	return &cli.Command{
		Name:  "example-queries",
		Usage: "show example SOM queries",
		Description: "Print example query patterns for CSS, HTML and JavaScript.\n" +
			"Output is designed to be grep-friendly.\n\n" +
			"Examples:\n" +
			"  autograder example-queries                # show all examples\n" +
			"  autograder example-queries | grep '^css'  # CSS patterns only\n" +
			"  autograder example-queries | grep -i class",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Print(examplesText)
			return nil
		},
	}
}

func exampleConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "example-config",
		Usage: "print a commented autograder.yaml",
		Description: "Examples:\n" +
			"  autograder example-config > autograder.yaml",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Print(exampleConfig)
			return nil
		},
	}
}
