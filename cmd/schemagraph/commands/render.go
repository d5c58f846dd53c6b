package commands

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"go.yaml.in/yaml/v4"
)

// RenderSummaryTable renders rows as plain text.
// In quiet mode, headers are omitted and rows are tab-separated for piping.
// In normal mode, a fixed-width layout with headers is rendered.
func RenderSummaryTable(w io.Writer, headers []string, rows [][]string, quiet bool) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if !quiet {
		for i, h := range headers {
			if i > 0 {
				_, _ = fmt.Fprint(w, "  ")
			}
			_, _ = fmt.Fprintf(w, "%-*s", widths[i], h)
		}
		_, _ = fmt.Fprintln(w)
	}

	for _, row := range rows {
		for i, cell := range row {
			if quiet {
				if i > 0 {
					_, _ = fmt.Fprint(w, "\t")
				}
				_, _ = fmt.Fprint(w, cell)
			} else {
				if i > 0 {
					_, _ = fmt.Fprint(w, "  ")
				}
				_, _ = fmt.Fprintf(w, "%-*s", widths[i], cell)
			}
		}
		_, _ = fmt.Fprintln(w)
	}
}

// RenderPrettyTable renders rows as a bordered table with an optional title.
func RenderPrettyTable(w io.Writer, title string, headers []string, rows [][]string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	if title != "" {
		tw.SetTitle(title)
	}
	tw.AppendHeader(toRow(headers))
	for _, row := range rows {
		tw.AppendRow(toRow(row))
	}
	tw.Render()
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// RenderTable routes table-shaped output through the renderer the format
// selects: go-pretty for table, structured records for json/yaml, and the
// plain fixed-width layout for text.
func RenderTable(w io.Writer, title string, headers []string, rows [][]string, format string, quiet bool) error {
	switch format {
	case FormatTable:
		RenderPrettyTable(w, title, headers, rows)
		return nil
	case FormatJSON, FormatYAML:
		records := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			rec := make(map[string]string, len(headers))
			for i, h := range headers {
				val := ""
				if i < len(row) {
					val = row[i]
				}
				rec[strings.ToLower(strings.ReplaceAll(h, " ", "_"))] = val
			}
			records = append(records, rec)
		}
		return RenderDetail(w, records, format)
	default:
		RenderSummaryTable(w, headers, rows, quiet)
		return nil
	}
}

// RenderDetail renders a single node in the specified format (JSON, YAML, or text).
// Text falls back to YAML, which reads well for nested detail output.
func RenderDetail(w io.Writer, node any, format string) error {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(node, "", "  ")
	case FormatYAML, FormatText:
		data, err = yaml.Marshal(node)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}

	if _, err := fmt.Fprintln(w, strings.TrimRight(string(data), "\n")); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
