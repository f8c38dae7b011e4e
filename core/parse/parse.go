package parse

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

// NoThought is the placeholder recorded when a reply omits the thought field.
const NoThought = "(no thought)"

// DecisionKind identifies which variant a [Decision] holds.
type DecisionKind int

const (
	// DecisionAction is a request to invoke one tool with arguments.
	DecisionAction DecisionKind = iota
	// DecisionFinal carries the model's final answer; the loop terminates.
	DecisionFinal
	// DecisionMalformed marks a reply that could not be decoded into either
	// accepted shape. This is fatal to the run: a model that has drifted off
	// the reply format is not assumed to recover within the same format, so
	// the loop aborts instead of retrying.
	DecisionMalformed
)

// String returns the kind's name for logs.
func (k DecisionKind) String() string {
	switch k {
	case DecisionAction:
		return "action"
	case DecisionFinal:
		return "final_answer"
	case DecisionMalformed:
		return "malformed"
	}
	return "unknown"
}

// Decision is the parsed form of one model reply: a tagged variant over a
// tool invocation, a final answer, or an undecodable payload. A Decision is
// produced fresh each step and not persisted beyond it; its content is folded
// back into the conversation as messages.
type Decision struct {
	Kind    DecisionKind
	Thought string

	// Tool and Arguments are set when Kind is DecisionAction.
	Tool      string
	Arguments tool.Args

	// Answer is set when Kind is DecisionFinal.
	Answer string

	// Raw is the original reply text, kept for logging and for malformed
	// replies where nothing else could be extracted.
	Raw string
}

// envelope is the wire shape of a model reply. FinalAnswer is a pointer so
// that an explicitly empty final answer is still recognized as terminal.
type envelope struct {
	Thought     string    `json:"thought"`
	FinalAnswer *string   `json:"final_answer"`
	Action      string    `json:"action"`
	Arguments   tool.Args `json:"arguments"`
}

// Parse decodes a raw model reply into a [Decision].
//
// Decoding is attempted strictly first; if that fails the payload is run
// through jsonrepair (models routinely emit single quotes, trailing commas,
// or fenced JSON) and decoded once more. A payload that still cannot be
// decoded, or that decodes to neither accepted shape, yields a
// [DecisionMalformed].
//
// When a reply contains both final_answer and action, final_answer wins.
// This first-match precedence is deliberate and covered by tests: a model
// confident enough to answer should not trigger a trailing tool call.
//
// Argument values are not validated against any schema here; type coercion
// is deferred to the dispatcher and the tool adapters.
func Parse(raw string) Decision {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return Decision{Kind: DecisionMalformed, Raw: raw}
		}
		if err := json.Unmarshal([]byte(repaired), &env); err != nil {
			return Decision{Kind: DecisionMalformed, Raw: raw}
		}
	}

	thought := env.Thought
	if thought == "" {
		thought = NoThought
	}

	if env.FinalAnswer != nil {
		return Decision{
			Kind:    DecisionFinal,
			Thought: thought,
			Answer:  *env.FinalAnswer,
			Raw:     raw,
		}
	}

	if env.Action != "" {
		args := env.Arguments
		if args == nil {
			args = tool.Args{}
		}
		return Decision{
			Kind:      DecisionAction,
			Thought:   thought,
			Tool:      env.Action,
			Arguments: args,
			Raw:       raw,
		}
	}

	return Decision{Kind: DecisionMalformed, Raw: raw}
}

// MarshalJSON serializes the decision back to its wire shape, so that parsing
// the output of MarshalJSON yields an equal decision. Malformed decisions
// serialize to their raw payload.
func (d Decision) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DecisionFinal:
		return json.Marshal(struct {
			Thought     string `json:"thought"`
			FinalAnswer string `json:"final_answer"`
		}{Thought: d.Thought, FinalAnswer: d.Answer})
	case DecisionAction:
		return json.Marshal(struct {
			Thought   string    `json:"thought"`
			Action    string    `json:"action"`
			Arguments tool.Args `json:"arguments"`
		}{Thought: d.Thought, Action: d.Tool, Arguments: d.Arguments})
	}
	return json.Marshal(d.Raw)
}
