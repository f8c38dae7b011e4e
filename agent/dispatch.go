package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

// Dispatch resolves name against the registry, invokes the tool, and returns
// the observation to feed back into the conversation. It always returns a
// usable observation; every failure mode is rendered as text the model can
// read and recover from:
//
//   - An unknown tool name produces an observation enumerating every
//     registered tool, so the model can correct itself next step.
//   - A tool returning an error (missing or mistyped argument) produces an
//     observation describing the call error.
//   - A panicking tool is recovered here as a last resort. Tools are
//     expected to handle their own domain errors; this backstop only covers
//     genuine contract violations.
//
// A successful invocation returns the tool's output verbatim, with no added
// metadata or interpretation.
func Dispatch(ctx context.Context, registry *tool.Registry, name string, args tool.Args) (observation string) {
	spec, ok := registry.Lookup(name)
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q. Available tools: %s",
			name, strings.Join(registry.Names(), ", "))
	}

	defer func() {
		if r := recover(); r != nil {
			observation = fmt.Sprintf("Error calling %q: tool panicked: %v", name, r)
		}
	}()

	output, err := spec.Run(ctx, args)
	if err != nil {
		return fmt.Sprintf("Error calling %q: %v", name, err)
	}
	return output
}
