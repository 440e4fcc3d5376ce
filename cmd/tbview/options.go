package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// Options holds the tbview command line.
type Options struct {
	Output   string
	Latest   bool
	LogLevel string
	Paths    []string
}

// parseOptions parses args (without the program name).
func parseOptions(args []string, stderr io.Writer) (*Options, error) {
	var opts Options

	fs := pflag.NewFlagSet("tbview", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = true
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: tbview [flags] <file.json|dir>...")
		fs.PrintDefaults()
	}

	fs.StringVarP(&opts.Output, "output", "o", outputText, "Output format: text, json or yaml")
	fs.BoolVar(&opts.Latest, "latest", false, "For directories, show only the most recent traceback file")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.Paths = fs.Args()

	switch opts.Output {
	case outputText, outputJSON, outputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.Output)
	}
	if len(opts.Paths) == 0 {
		return nil, fmt.Errorf("at least one file or directory is required")
	}
	return &opts, nil
}
