package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/peterbourgon/ff/v3/ffcli"
)

const defaultInput = "data.tsv"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := realMain(
		ctx,
		os.Args,
		os.Stdout,
		os.Stderr,
	); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain(
	ctx context.Context,
	args []string,
	stdout io.Writer,
	stderr io.Writer,
) error {
	exec := args[0]

	fs, cfg := newFlagSet(exec, stderr)

	rootCmd := &ffcli.Command{
		ShortUsage: fmt.Sprintf("%v [flags] [file]", exec),
		ShortHelp:  "Sum the integer column of a tab separated file",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most one file, got %d", len(args))
			}

			path := cfg.file
			if len(args) == 1 {
				path = args[0]
			}

			f, err := parseFormat(cfg.format)
			if err != nil {
				return err
			}

			color, err := useColor(cfg.color, stdout)
			if err != nil {
				return err
			}

			logout := io.Discard
			if cfg.debug {
				logout = stderr
			}

			logger := slog.New(
				slog.NewTextHandler(
					logout,
					&slog.HandlerOptions{Level: slog.LevelDebug},
				),
			)

			res, err := AggregateFile(ctx, path, Options{
				Column:    cfg.column,
				MinFields: cfg.minFields,
				Strict:    cfg.strict,
				Logger:    logger.With("file", path),
			})
			if err != nil {
				return err
			}

			return reporter{format: f, color: color}.write(stdout, res)
		},
	}

	return rootCmd.ParseAndRun(ctx, args[1:])
}

type config struct {
	file      string
	column    int
	minFields int
	strict    bool
	format    string
	color     string
	debug     bool
}

// Defaults print the plain two line report; color is opt-in.
func newFlagSet(exec string, stderr io.Writer) (*flag.FlagSet, *config) {
	var cfg config

	fs := flag.NewFlagSet(exec, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.file, "file", defaultInput, "tab separated input file")
	fs.IntVar(&cfg.column, "column", defaultColumn, "zero-based index of the field to sum")
	fs.IntVar(&cfg.minFields, "min-fields", defaultMinFields, "skip lines with fewer fields")
	fs.BoolVar(&cfg.strict, "strict", false, "fail on the first malformed line instead of skipping it")
	fs.StringVar(&cfg.format, "format", string(formatText), "output format: text, table, json, yaml")
	fs.StringVar(&cfg.color, "color", "never", "colorize output: never, auto, always")
	fs.BoolVar(&cfg.debug, "debug", false, "log skipped lines to stderr")

	return fs, &cfg
}
