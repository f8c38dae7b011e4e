// Package textsearch provides a tool that scans every text file in a
// directory for a case-insensitive keyword and reports matching lines.
package textsearch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

// maxHits caps the number of matching lines in one observation.
const maxHits = 25

// New returns the text_search tool specification. defaultDir is searched
// when the model omits the directory argument.
func New(defaultDir string) tool.Spec {
	return tool.Spec{
		Name: "text_search",
		Description: "Search for a keyword or phrase across all text files in a directory. " +
			"Returns matching lines with file names and line numbers.",
		Params: map[string]string{
			"query":     "The search term or phrase",
			"directory": "(Optional) Directory to search in. Defaults to the sample data directory.",
		},
		Run: func(ctx context.Context, args tool.Args) (string, error) {
			return run(defaultDir, args)
		},
	}
}

func run(defaultDir string, args tool.Args) (string, error) {
	query, err := args.Text("query")
	if err != nil {
		return "", err
	}

	dir := args.OptionalText("directory")
	if dir == "" {
		dir = defaultDir
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return fmt.Sprintf("Error: Directory not found: %s", dir), nil
	}
	if err != nil {
		return fmt.Sprintf("Error during search: %v", err), nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var hits []string
	needle := strings.ToLower(query)
	for _, name := range names {
		// Binary and unreadable files are skipped rather than failing
		// the whole search.
		hits = append(hits, searchFile(filepath.Join(dir, name), name, needle)...)
	}

	if len(hits) == 0 {
		return fmt.Sprintf("No matches found for '%s' in %s", query, dir), nil
	}

	total := len(hits)
	if total > maxHits {
		hits = hits[:maxHits]
	}
	return fmt.Sprintf("Found %d match(es) for '%s':\n%s", total, query, strings.Join(hits, "\n")), nil
}

func searchFile(path, name, needle string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var hits []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.Contains(line, "\x00") {
			return nil
		}
		if strings.Contains(strings.ToLower(line), needle) {
			hits = append(hits, fmt.Sprintf("  %s (line %d): %s", name, lineNo, strings.TrimSpace(line)))
		}
	}
	return hits
}
