// Package output formats CLI output: pretty JSON, jq filtering and tables
// with a TSV fallback for piping.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintJSON pretty-prints v as indented JSON to w.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// ApplyJQ runs a jq expression against data and writes each result to w.
// gojq only accepts plain maps/slices, so typed values are round-tripped
// through encoding/json first.
func ApplyJQ(w io.Writer, data any, expr string) error {
	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("parsing jq expression: %w", err)
	}

	plain, err := toPlain(data)
	if err != nil {
		return err
	}

	iter := query.Run(plain)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return fmt.Errorf("jq evaluation: %w", err)
		}
		if err := PrintJSON(w, v); err != nil {
			return fmt.Errorf("writing jq result: %w", err)
		}
	}
	return nil
}

// PrintTable writes tabular data. When isTTY is true it renders aligned
// columns with a header; otherwise it emits tab-separated values for
// piping.
func PrintTable(w io.Writer, headers []string, rows [][]string, isTTY bool) {
	if !isTTY {
		printTSV(w, headers, rows)
		return
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
					BetweenRows:    tw.Off,
				},
			},
		})),
	)

	table.Header(toAny(headers)...)
	for _, row := range rows {
		table.Append(toAny(row)...)
	}
	table.Render()
}

func printTSV(w io.Writer, headers []string, rows [][]string) {
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}

func toPlain(data any) (any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := json.Unmarshal(b, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}

func toAny(ss []string) []any {
	result := make([]any, len(ss))
	for i, s := range ss {
		result[i] = s
	}
	return result
}
