package tool

import "context"

// Func is the normalized execution signature every tool is adapted to:
// named arguments in, observation text out.
//
// Responsibility split:
//   - The tool handles its own domain errors (missing file, bad column,
//     division by zero) and reports them as descriptive observation text.
//   - A returned error is reserved for contract violations: a required
//     argument that is absent or of the wrong type. The dispatcher converts
//     it into an observation instead of propagating it.
type Func func(ctx context.Context, args Args) (string, error)

// Spec binds a tool name and its documentation to an executable function.
// Params maps each parameter name to a human-readable meaning; it is rendered
// into the system prompt so the model knows how to call the tool.
//
// Specs are built once at process start and never mutated afterwards, so they
// are safe to share across concurrent agent runs.
type Spec struct {
	Name        string
	Description string
	Params      map[string]string
	Run         Func
}
