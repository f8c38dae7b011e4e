package textsearch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_FindsMatchesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "nothing here\nRevenue grew fast\n")
	writeFile(t, dir, "a.txt", "quarterly revenue report\n")

	spec := New(dir)
	got, err := spec.Run(context.Background(), tool.Args{
		"query": tool.StringValue("revenue"),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !strings.HasPrefix(got, "Found 2 match(es) for 'revenue':") {
		t.Errorf("unexpected header: %q", got)
	}
	// Files are visited in sorted order, so a.txt's hit comes first.
	aIdx := strings.Index(got, "a.txt (line 1)")
	bIdx := strings.Index(got, "b.txt (line 2)")
	if aIdx == -1 || bIdx == -1 || aIdx > bIdx {
		t.Errorf("expected a.txt hit before b.txt hit, got:\n%s", got)
	}
}

func TestRun_CaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "ALICE was promoted\n")

	spec := New(dir)
	got, err := spec.Run(context.Background(), tool.Args{
		"query": tool.StringValue("alice"),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(got, "ALICE was promoted") {
		t.Errorf("got %q", got)
	}
}

func TestRun_NoMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "nothing relevant\n")

	spec := New(dir)
	got, err := spec.Run(context.Background(), tool.Args{
		"query": tool.StringValue("unicorn"),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := fmt.Sprintf("No matches found for 'unicorn' in %s", dir)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRun_CapsListedHits(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&sb, "hit number %d\n", i)
	}
	writeFile(t, dir, "many.txt", sb.String())

	spec := New(dir)
	got, err := spec.Run(context.Background(), tool.Args{
		"query": tool.StringValue("hit"),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !strings.HasPrefix(got, "Found 40 match(es)") {
		t.Errorf("header should report the total count, got %q", got)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 1+maxHits {
		t.Errorf("expected %d listed hits, got %d", maxHits, len(lines)-1)
	}
}

func TestRun_SkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.bin", "match\x00me")
	writeFile(t, dir, "plain.txt", "match me\n")

	spec := New(dir)
	got, err := spec.Run(context.Background(), tool.Args{
		"query": tool.StringValue("match"),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.HasPrefix(got, "Found 1 match(es)") {
		t.Errorf("binary file should be skipped, got %q", got)
	}
}

func TestRun_ExplicitDirectory(t *testing.T) {
	defaultDir := t.TempDir()
	otherDir := t.TempDir()
	writeFile(t, otherDir, "notes.txt", "target phrase\n")

	spec := New(defaultDir)
	got, err := spec.Run(context.Background(), tool.Args{
		"query":     tool.StringValue("target"),
		"directory": tool.StringValue(otherDir),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(got, "target phrase") {
		t.Errorf("got %q", got)
	}
}

func TestRun_DirectoryNotFound(t *testing.T) {
	spec := New(filepath.Join(t.TempDir(), "gone"))
	got, err := spec.Run(context.Background(), tool.Args{
		"query": tool.StringValue("x"),
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.HasPrefix(got, "Error: Directory not found") {
		t.Errorf("got %q", got)
	}
}
