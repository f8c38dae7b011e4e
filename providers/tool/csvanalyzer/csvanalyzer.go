// Package csvanalyzer provides a tool that inspects CSV files. It supports
// listing columns, summary statistics, previewing rows, filtering, and
// simple aggregations.
package csvanalyzer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

const defaultHeadRows = 5

// New returns the csv_analyzer tool specification. Relative paths are
// resolved against dataDir.
func New(dataDir string) tool.Spec {
	return tool.Spec{
		Name: "csv_analyzer",
		Description: "Analyze CSV files. Supported operations: " +
			"'columns' (list columns), 'describe' (summary stats), " +
			"'head' (first N rows), 'filter' (filter rows by value), " +
			"'aggregate' (sum/mean/max/min/count on a column).",
		Params: map[string]string{
			"file_path":    "Path to the CSV file",
			"operation":    "One of: columns, describe, head, filter, aggregate",
			"column":       "(Optional) Column name for filter/aggregate",
			"filter_value": "(Optional) Value to filter by, or number of rows for head",
			"agg_function": "(Optional) One of: sum, mean, max, min, count",
		},
		Run: func(ctx context.Context, args tool.Args) (string, error) {
			return run(dataDir, args)
		},
	}
}

func run(dataDir string, args tool.Args) (string, error) {
	path, err := args.Text("file_path")
	if err != nil {
		return "", err
	}
	operation, err := args.Text("operation")
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}

	table, loadErr := load(path)
	if loadErr != "" {
		return loadErr, nil
	}

	switch operation {
	case "columns":
		return fmt.Sprintf("Columns (%d): %s", len(table.header), strings.Join(table.header, ", ")), nil
	case "describe":
		return table.describe(), nil
	case "head":
		n := defaultHeadRows
		if raw := args.OptionalText("filter_value"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				return fmt.Sprintf("Error: 'head' row count must be a positive integer, got '%s'.", raw), nil
			}
			n = parsed
		}
		return table.head(n).render(), nil
	case "filter":
		return runFilter(table, args), nil
	case "aggregate":
		return runAggregate(table, args), nil
	default:
		return fmt.Sprintf("Unknown operation '%s'. Supported: columns, describe, head, filter, aggregate.", operation), nil
	}
}

func runFilter(t *table, args tool.Args) string {
	column := args.OptionalText("column")
	value := args.OptionalText("filter_value")
	if column == "" || value == "" {
		return "Error: 'filter' requires both 'column' and 'filter_value'."
	}

	idx, ok := t.columnIndex(column)
	if !ok {
		return fmt.Sprintf("Error: Column '%s' not found. Available: %s", column, strings.Join(t.header, ", "))
	}

	filtered := t.filter(idx, value)
	if len(filtered.rows) == 0 {
		return fmt.Sprintf("No rows found where '%s' matches '%s'.", column, value)
	}
	return filtered.render()
}

func runAggregate(t *table, args tool.Args) string {
	column := args.OptionalText("column")
	fn := args.OptionalText("agg_function")
	if column == "" || fn == "" {
		return "Error: 'aggregate' requires both 'column' and 'agg_function'."
	}

	idx, ok := t.columnIndex(column)
	if !ok {
		return fmt.Sprintf("Error: Column '%s' not found. Available: %s", column, strings.Join(t.header, ", "))
	}

	result, err := t.aggregate(idx, fn)
	if err != nil {
		return fmt.Sprintf("Error during analysis: %v", err)
	}
	label := strings.ToUpper(fn[:1]) + fn[1:]
	return fmt.Sprintf("%s of '%s': %s", label, column, result)
}

// table holds a parsed CSV file: a header row plus data rows, all as text.
type table struct {
	header []string
	rows   [][]string
}

func load(path string) (*table, string) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Sprintf("Error: File not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Sprintf("Error reading CSV: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Sprintf("Error reading CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, "Error reading CSV: file is empty"
	}

	return &table{header: records[0], rows: records[1:]}, ""
}

func (t *table) columnIndex(name string) (int, bool) {
	for i, h := range t.header {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

func (t *table) head(n int) *table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return &table{header: t.header, rows: t.rows[:n]}
}

// filter keeps rows whose cell matches value: numeric equality when value
// parses as a number, case-insensitive substring match otherwise.
func (t *table) filter(idx int, value string) *table {
	numeric, isNumeric := parseNumber(value)

	var kept [][]string
	for _, row := range t.rows {
		if idx >= len(row) {
			continue
		}
		cell := row[idx]
		if isNumeric {
			if cellNum, ok := parseNumber(cell); ok && cellNum == numeric {
				kept = append(kept, row)
			}
			continue
		}
		if strings.Contains(strings.ToLower(cell), strings.ToLower(value)) {
			kept = append(kept, row)
		}
	}
	return &table{header: t.header, rows: kept}
}

func (t *table) aggregate(idx int, fn string) (string, error) {
	switch fn {
	case "sum", "mean", "max", "min", "count":
	default:
		return "", fmt.Errorf("unknown agg_function '%s'. Use: sum, mean, max, min, count", fn)
	}

	var values []float64
	nonEmpty := 0
	for _, row := range t.rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		nonEmpty++
		if v, ok := parseNumber(row[idx]); ok {
			values = append(values, v)
		}
	}

	if fn == "count" {
		return strconv.Itoa(nonEmpty), nil
	}
	if len(values) == 0 {
		return "", fmt.Errorf("column has no numeric values")
	}

	switch fn {
	case "sum":
		return formatNumber(sum(values)), nil
	case "mean":
		return formatNumber(sum(values) / float64(len(values))), nil
	case "max":
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return formatNumber(m), nil
	default: // min
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return formatNumber(m), nil
	}
}

// describe reports count, unique, mean, min, and max for every column.
// Non-numeric columns leave the numeric statistics blank.
func (t *table) describe() string {
	stats := &table{
		header: append([]string{"stat"}, t.header...),
	}

	counts := make([]string, len(t.header))
	uniques := make([]string, len(t.header))
	means := make([]string, len(t.header))
	mins := make([]string, len(t.header))
	maxs := make([]string, len(t.header))

	for i := range t.header {
		nonEmpty := 0
		seen := map[string]struct{}{}
		var values []float64
		for _, row := range t.rows {
			if i >= len(row) || row[i] == "" {
				continue
			}
			nonEmpty++
			seen[row[i]] = struct{}{}
			if v, ok := parseNumber(row[i]); ok {
				values = append(values, v)
			}
		}

		counts[i] = strconv.Itoa(nonEmpty)
		uniques[i] = strconv.Itoa(len(seen))
		if len(values) > 0 && len(values) == nonEmpty {
			means[i] = formatNumber(sum(values) / float64(len(values)))
			minV, maxV := values[0], values[0]
			for _, v := range values[1:] {
				if v < minV {
					minV = v
				}
				if v > maxV {
					maxV = v
				}
			}
			mins[i] = formatNumber(minV)
			maxs[i] = formatNumber(maxV)
		}
	}

	stats.rows = [][]string{
		append([]string{"count"}, counts...),
		append([]string{"unique"}, uniques...),
		append([]string{"mean"}, means...),
		append([]string{"min"}, mins...),
		append([]string{"max"}, maxs...),
	}
	return stats.render()
}

// render prints the table with aligned columns.
func (t *table) render() string {
	var sb strings.Builder
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			if i < len(cells)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			}
		}
		sb.WriteByte('\n')
	}

	writeRow(t.header)
	for _, row := range t.rows {
		writeRow(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
