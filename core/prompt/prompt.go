package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

// Facts describes the execution environment embedded in the system prompt so
// the model can reference real paths instead of guessing them.
type Facts struct {
	// DataDir is the directory holding the files the agent may work on.
	DataDir string
	// Files lists the file names available under DataDir.
	Files []string
}

// systemTemplate is the fixed behavioral frame of the system prompt. The tool
// block and environment facts are injected per registry; everything else is
// constant so renders stay deterministic.
var systemTemplate = template.Must(template.New("system").Parse(`You are an autonomous task agent. You solve user tasks by reasoning
step-by-step and calling tools when you need data or computation.

## How you work (the ReAct loop)
1. THOUGHT - reason about what to do next.
2. ACTION - pick ONE tool and supply its arguments.
3. You will receive an OBSERVATION with the tool's output.
4. Go back to step 1. Repeat until you can give a FINAL ANSWER.

## Available tools
{{.ToolBlock}}
{{- if .DataDir}}

## Sample data directory
{{.DataDir}}
{{- if .Files}}
Files available: {{.FileList}}
{{- end}}
{{- end}}

## Rules
- Always start with a THOUGHT.
- Call exactly ONE tool per step.
- Use the FULL file path (sample data directory + filename) when referencing files.
- For CSV files, check the columns first before doing analysis.
- When you have enough information, return a FINAL ANSWER.

## Response format
When calling a tool, respond with ONLY this JSON:
{"thought": "<your reasoning>", "action": "<tool_name>", "arguments": {"<param>": "<value>"}}

When you have the final answer, respond with ONLY this JSON:
{"thought": "<your reasoning>", "final_answer": "<your comprehensive answer>"}`))

// toolDoc is the machine-parseable entry rendered for each tool.
type toolDoc struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters"`
}

// Render produces the system instruction for the given tool specs and
// environment facts. It is a pure function: the same inputs always produce
// the same text (specs render in the order given, parameter keys sorted by
// the JSON encoder), so the result can be rendered once and cached for the
// lifetime of an agent.
func Render(specs []tool.Spec, facts Facts) (string, error) {
	docs := make([]toolDoc, 0, len(specs))
	for _, spec := range specs {
		params := spec.Params
		if params == nil {
			params = map[string]string{}
		}
		docs = append(docs, toolDoc{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  params,
		})
	}

	toolBlock, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering tool descriptions: %w", err)
	}

	data := struct {
		ToolBlock string
		DataDir   string
		Files     []string
		FileList  string
	}{
		ToolBlock: string(toolBlock),
		DataDir:   facts.DataDir,
		Files:     facts.Files,
		FileList:  strings.Join(facts.Files, ", "),
	}

	var sb strings.Builder
	if err := systemTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering system prompt: %w", err)
	}
	return sb.String(), nil
}
