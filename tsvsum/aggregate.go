package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	defaultColumn    = 4
	defaultMinFields = 5
)

var (
	errMalformed   = errors.New("malformed line")
	errInvalidUTF8 = errors.New("invalid UTF-8")
)

type Options struct {
	// Column is the zero-based index of the field to sum.
	Column int
	// MinFields is the number of tab separated fields a line needs to be
	// considered at all.
	MinFields int
	// Strict turns the first malformed line into an error instead of
	// skipping it.
	Strict bool
	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Column:    defaultColumn,
		MinFields: defaultMinFields,
	}
}

type Result struct {
	Lines   int64
	Total   *big.Int
	Read    int64
	Skipped int64
}

func AggregateFile(ctx context.Context, path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return Aggregate(ctx, f, opts)
}

func Aggregate(ctx context.Context, r io.Reader, opts Options) (Result, error) {
	if opts.Column < 0 {
		return Result{}, fmt.Errorf("invalid column index: %d", opts.Column)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	res := Result{Total: new(big.Int)}

	scanner := newLineScanner(r)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		res.Read++

		line := scanner.Text()
		if !utf8.ValidString(line) {
			return Result{}, fmt.Errorf("line# %v: %w", res.Read, errInvalidUTF8)
		}

		fields := strings.Split(strings.TrimSpace(line), "\t")
		// The target field has to exist for a line to qualify.
		if len(fields) < opts.MinFields || len(fields) <= opts.Column {
			res.Skipped++
			logger.Debug("skip short line", "line", res.Read, "fields", len(fields))
			if opts.Strict {
				return Result{}, fmt.Errorf("line# %v: %w: %s", res.Read, errMalformed, shortLineReason(len(fields), opts))
			}
			continue
		}

		v, ok := parseInteger(fields[opts.Column])
		if !ok {
			res.Skipped++
			logger.Debug("skip non-integer field", "line", res.Read, "value", fields[opts.Column])
			if opts.Strict {
				return Result{}, fmt.Errorf("line# %v: %w: field %d is not an integer: %q", res.Read, errMalformed, opts.Column, fields[opts.Column])
			}
			continue
		}

		res.Total.Add(res.Total, v)
		res.Lines++
	}

	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}

	logger.Debug("done", "read", res.Read, "lines", res.Lines, "skipped", res.Skipped)

	return res, nil
}

func shortLineReason(n int, opts Options) string {
	if n < opts.MinFields {
		return fmt.Sprintf("%d fields, want at least %d", n, opts.MinFields)
	}
	return fmt.Sprintf("%d fields, no field %d", n, opts.Column)
}

// parseInteger accepts a base 10 integer with an optional sign and nothing
// else around it.
func parseInteger(s string) (*big.Int, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return big.NewInt(v), true
	}

	if !errors.Is(err, strconv.ErrRange) {
		return nil, false
	}

	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}

	return b, true
}
