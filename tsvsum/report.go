package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	ansicolor "github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

type format string

const (
	formatText  format = "text"
	formatTable format = "table"
	formatJSON  format = "json"
	formatYAML  format = "yaml"
)

func parseFormat(s string) (format, error) {
	switch f := format(s); f {
	case formatText, formatTable, formatJSON, formatYAML:
		return f, nil
	}

	return "", fmt.Errorf("unknown format %q, want one of: text, table, json, yaml", s)
}

// useColor resolves the -color flag against the output writer.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}

	return false, fmt.Errorf("unknown color mode %q, want one of: auto, always, never", mode)
}

type reporter struct {
	format format
	color  bool
}

func (r reporter) write(w io.Writer, res Result) error {
	total := res.Total
	if total == nil {
		total = new(big.Int)
	}

	switch r.format {
	case formatTable:
		return writeTable(w, res.Lines, total)
	case formatJSON:
		return writeJSON(w, res, total)
	case formatYAML:
		return writeYAML(w, res, total)
	default:
		return r.writeText(w, res.Lines, total)
	}
}

func (r reporter) writeText(w io.Writer, lines int64, total *big.Int) error {
	label := ansicolor.New(ansicolor.Bold)
	if r.color {
		label.EnableColor()
	} else {
		label.DisableColor()
	}

	_, err := fmt.Fprintf(w,
		"%s %d\n%s %s\n",
		label.Sprint("Lines:"), lines,
		label.Sprint("Total:"), commaTotal(total),
	)
	return err
}

func writeTable(w io.Writer, lines int64, total *big.Int) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Lines", "Total"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{humanize.Comma(lines), commaTotal(total)})
	table.Render()

	return nil
}

type jsonReport struct {
	Lines   int64    `json:"lines"`
	Total   *big.Int `json:"total"`
	Read    int64    `json:"read"`
	Skipped int64    `json:"skipped"`
}

func writeJSON(w io.Writer, res Result, total *big.Int) error {
	o, err := json.MarshalIndent(jsonReport{
		Lines:   res.Lines,
		Total:   total,
		Read:    res.Read,
		Skipped: res.Skipped,
	}, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", o)
	return err
}

// yaml.v3 cannot marshal big.Int, so the document is built by hand to keep
// the total an exact !!int.
func writeYAML(w io.Writer, res Result, total *big.Int) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range []struct {
		key   string
		value string
	}{
		{"lines", strconv.FormatInt(res.Lines, 10)},
		{"total", total.String()},
		{"read", strconv.FormatInt(res.Read, 10)},
		{"skipped", strconv.FormatInt(res.Skipped, 10)},
	} {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: kv.value},
		)
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}

func commaTotal(total *big.Int) string {
	// BigComma flips the sign of its argument in place.
	return humanize.BigComma(new(big.Int).Set(total))
}
