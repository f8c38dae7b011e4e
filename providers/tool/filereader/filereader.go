// Package filereader provides a tool that returns the contents of a text
// file, truncated so a single observation cannot flood the model context.
package filereader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

// maxContentLen is the largest file prefix returned in one observation.
const maxContentLen = 3000

const truncationNotice = "\n\n... [truncated - file too large to display fully]"

// New returns the file_reader tool specification. Relative paths are
// resolved against dataDir.
func New(dataDir string) tool.Spec {
	return tool.Spec{
		Name:        "file_reader",
		Description: "Read and return the contents of a text file.",
		Params: map[string]string{
			"file_path": "Path to the file to read",
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

	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fmt.Sprintf("Error: File not found: %s", path), nil
	}
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err), nil
	}

	text := string(content)
	if len(text) > maxContentLen {
		text = text[:maxContentLen] + truncationNotice
	}
	return text, nil
}
