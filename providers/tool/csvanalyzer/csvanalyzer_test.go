package csvanalyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

const salesCSV = `product,region,amount
Widget,North,1200
Gadget,South,800
Widget,South,450.5
Doohickey,East,2000
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sales.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func analyze(t *testing.T, dir string, args tool.Args) string {
	t.Helper()
	spec := New(dir)
	got, err := spec.Run(context.Background(), args)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return got
}

func TestRun_Columns(t *testing.T) {
	dir := writeCSV(t, salesCSV)
	got := analyze(t, dir, tool.Args{
		"file_path": tool.StringValue("sales.csv"),
		"operation": tool.StringValue("columns"),
	})
	if got != "Columns (3): product, region, amount" {
		t.Errorf("got %q", got)
	}
}

func TestRun_Head(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path":    tool.StringValue("sales.csv"),
		"operation":    tool.StringValue("head"),
		"filter_value": tool.StringValue("2"),
	})

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[1], "Widget") || !strings.Contains(lines[2], "Gadget") {
		t.Errorf("unexpected rows:\n%s", got)
	}
}

func TestRun_HeadDefaultsToFiveRows(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path": tool.StringValue("sales.csv"),
		"operation": tool.StringValue("head"),
	})

	// The file only has 4 data rows, all of them shown.
	if lines := strings.Split(got, "\n"); len(lines) != 5 {
		t.Errorf("expected header plus 4 rows, got %d lines", len(lines))
	}
}

func TestRun_FilterSubstring(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path":    tool.StringValue("sales.csv"),
		"operation":    tool.StringValue("filter"),
		"column":       tool.StringValue("product"),
		"filter_value": tool.StringValue("widget"),
	})

	if !strings.Contains(got, "North") || !strings.Contains(got, "450.5") {
		t.Errorf("expected both Widget rows:\n%s", got)
	}
	if strings.Contains(got, "Gadget") {
		t.Errorf("Gadget should be filtered out:\n%s", got)
	}
}

func TestRun_FilterNumericEquality(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path":    tool.StringValue("sales.csv"),
		"operation":    tool.StringValue("filter"),
		"column":       tool.StringValue("amount"),
		"filter_value": tool.StringValue("800"),
	})

	if !strings.Contains(got, "Gadget") {
		t.Errorf("expected the 800 row:\n%s", got)
	}
	if strings.Contains(got, "1200") {
		t.Errorf("numeric filter must be equality, not substring:\n%s", got)
	}
}

func TestRun_FilterNoRows(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path":    tool.StringValue("sales.csv"),
		"operation":    tool.StringValue("filter"),
		"column":       tool.StringValue("region"),
		"filter_value": tool.StringValue("West"),
	})

	if got != "No rows found where 'region' matches 'West'." {
		t.Errorf("got %q", got)
	}
}

func TestRun_FilterUnknownColumn(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path":    tool.StringValue("sales.csv"),
		"operation":    tool.StringValue("filter"),
		"column":       tool.StringValue("price"),
		"filter_value": tool.StringValue("1"),
	})

	if !strings.HasPrefix(got, "Error: Column 'price' not found.") {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(got, "product, region, amount") {
		t.Errorf("expected the available columns listed: %q", got)
	}
}

func TestRun_Aggregate(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	tests := []struct {
		fn   string
		want string
	}{
		{fn: "sum", want: "Sum of 'amount': 4450.5"},
		{fn: "mean", want: "Mean of 'amount': 1112.625"},
		{fn: "max", want: "Max of 'amount': 2000"},
		{fn: "min", want: "Min of 'amount': 450.5"},
		{fn: "count", want: "Count of 'amount': 4"},
	}

	for _, tc := range tests {
		t.Run(tc.fn, func(t *testing.T) {
			got := analyze(t, dir, tool.Args{
				"file_path":    tool.StringValue("sales.csv"),
				"operation":    tool.StringValue("aggregate"),
				"column":       tool.StringValue("amount"),
				"agg_function": tool.StringValue(tc.fn),
			})
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRun_AggregateNonNumericColumn(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path":    tool.StringValue("sales.csv"),
		"operation":    tool.StringValue("aggregate"),
		"column":       tool.StringValue("product"),
		"agg_function": tool.StringValue("sum"),
	})

	if !strings.HasPrefix(got, "Error during analysis:") {
		t.Errorf("got %q", got)
	}
}

func TestRun_AggregateUnknownFunction(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path":    tool.StringValue("sales.csv"),
		"operation":    tool.StringValue("aggregate"),
		"column":       tool.StringValue("amount"),
		"agg_function": tool.StringValue("median"),
	})

	if !strings.Contains(got, "unknown agg_function 'median'") {
		t.Errorf("got %q", got)
	}
}

func TestRun_Describe(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path": tool.StringValue("sales.csv"),
		"operation": tool.StringValue("describe"),
	})

	for _, want := range []string{"count", "unique", "mean", "1112.625", "450.5", "2000"} {
		if !strings.Contains(got, want) {
			t.Errorf("describe output missing %q:\n%s", want, got)
		}
	}
}

func TestRun_UnknownOperation(t *testing.T) {
	dir := writeCSV(t, salesCSV)

	got := analyze(t, dir, tool.Args{
		"file_path": tool.StringValue("sales.csv"),
		"operation": tool.StringValue("pivot"),
	})

	if got != "Unknown operation 'pivot'. Supported: columns, describe, head, filter, aggregate." {
		t.Errorf("got %q", got)
	}
}

func TestRun_FileNotFound(t *testing.T) {
	got := analyze(t, t.TempDir(), tool.Args{
		"file_path": tool.StringValue("missing.csv"),
		"operation": tool.StringValue("columns"),
	})

	if !strings.HasPrefix(got, "Error: File not found") {
		t.Errorf("got %q", got)
	}
}

func TestRun_MissingRequiredArguments(t *testing.T) {
	spec := New(t.TempDir())

	if _, err := spec.Run(context.Background(), tool.Args{}); err == nil {
		t.Fatal("expected an error for missing file_path")
	}
	if _, err := spec.Run(context.Background(), tool.Args{
		"file_path": tool.StringValue("sales.csv"),
	}); err == nil {
		t.Fatal("expected an error for missing operation")
	}
}
