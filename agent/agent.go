package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/core/parse"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/core/prompt"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/internal/utils"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/ai"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

const (
	// DefaultMaxSteps is the step budget applied when no option overrides it.
	DefaultMaxSteps = 10

	// DefaultTemperature keeps tool-calling replies close to deterministic.
	DefaultTemperature = 0.2

	// StepBudgetAnswer is the fixed terminal answer returned when the step
	// budget is exhausted without a final answer. Budget exhaustion is a
	// defined outcome, not an error.
	StepBudgetAnswer = "Agent reached the maximum number of steps without producing a final answer."

	// MalformedAnswer is the fixed terminal answer returned when a model
	// reply cannot be decoded. The run aborts without retrying: a model that
	// has drifted off the reply format will not be corrected by re-asking.
	MalformedAnswer = "Agent stopped: the model reply could not be parsed as a tool call or a final answer."

	// observationPrefix labels tool output when it is fed back to the model.
	observationPrefix = "OBSERVATION:\n"

	// taskPrefix labels the opening user message.
	taskPrefix = "Task: "

	// logPreviewLen caps thought/observation text in log output.
	logPreviewLen = 500
)

// Outcome classifies how a run terminated.
type Outcome string

const (
	OutcomeFinalAnswer         Outcome = "final_answer"
	OutcomeMalformedReply      Outcome = "malformed_reply"
	OutcomeStepBudgetExhausted Outcome = "step_budget_exhausted"
)

// Result is the terminal state of one run. Answer is always populated: the
// model's final answer on success, or one of the two fixed terminal strings.
type Result struct {
	Answer  string
	Outcome Outcome
	// Steps is the number of model requests issued.
	Steps int
}

// Agent drives the ReAct loop: it sends the growing conversation to the
// model, parses each reply into a decision, dispatches requested tools, feeds
// observations back, and decides termination.
//
// An Agent is immutable after New and safe for concurrent use: each Run owns
// its conversation exclusively, and the only shared state (registry, rendered
// system prompt) is read-only.
type Agent struct {
	send       SendFunc
	registry   *tool.Registry
	model      string
	maxSteps   int
	generation ai.GenerationConfig
	facts      prompt.Facts
	system     string
	logger     *slog.Logger
}

// Option configures an Agent during construction.
type Option func(*Agent)

// WithModel sets the model identifier sent to the provider.
func WithModel(model string) Option {
	return func(a *Agent) { a.model = model }
}

// WithMaxSteps sets the step budget. Values below one are ignored.
func WithMaxSteps(maxSteps int) Option {
	return func(a *Agent) {
		if maxSteps > 0 {
			a.maxSteps = maxSteps
		}
	}
}

// WithLogger sets the structured logger used for step-level logging.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithEnvironment sets the environment facts rendered into the system prompt.
func WithEnvironment(facts prompt.Facts) Option {
	return func(a *Agent) { a.facts = facts }
}

// WithGenerationConfig overrides the sampling parameters sent per request.
func WithGenerationConfig(config ai.GenerationConfig) Option {
	return func(a *Agent) { a.generation = config }
}

// New builds an Agent over the given provider and tool registry. The system
// prompt is rendered once here and reused by every Run. Middlewares wrap the
// provider call outermost-first.
func New(provider ai.Provider, registry *tool.Registry, middlewares []Middleware, opts ...Option) (*Agent, error) {
	if provider == nil {
		return nil, fmt.Errorf("agent: provider must not be nil")
	}
	if registry == nil || registry.Size() == 0 {
		return nil, fmt.Errorf("agent: registry must hold at least one tool")
	}

	a := &Agent{
		send:       buildSendChain(provider, middlewares),
		registry:   registry,
		maxSteps:   DefaultMaxSteps,
		generation: ai.GenerationConfig{Temperature: DefaultTemperature},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	system, err := prompt.Render(registry.All(), a.facts)
	if err != nil {
		return nil, fmt.Errorf("agent: %w", err)
	}
	a.system = system

	return a, nil
}

// Run executes the ReAct loop for a single task and returns its terminal
// result. The conversation is created here, grows by one assistant message
// and at most one observation message per step, and is discarded on return;
// nothing is retained across runs.
//
// A non-nil error is returned only for transport-level provider failures.
// Protocol-level failures (unparseable reply, unknown tool, bad arguments,
// budget exhaustion) terminate through Result instead.
func (a *Agent) Run(ctx context.Context, task string) (*Result, error) {
	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: a.system},
		{Role: ai.RoleUser, Content: taskPrefix + task},
	}

	a.logger.InfoContext(ctx, "task started",
		slog.String("task", utils.TruncateString(task, logPreviewLen)),
		slog.Int("max_steps", a.maxSteps),
	)

	generation := a.generation
	for step := 1; step <= a.maxSteps; step++ {
		response, err := a.send(ctx, ai.ChatRequest{
			Model:            a.model,
			Messages:         messages,
			ResponseFormat:   &ai.ResponseFormat{Type: "json_object"},
			GenerationConfig: &generation,
		})
		if err != nil {
			return nil, fmt.Errorf("agent: model request failed at step %d: %w", step, err)
		}

		// The raw reply joins the conversation even when it turns out to be
		// malformed, so the recorded history matches what the model saw.
		messages = append(messages, ai.Message{Role: ai.RoleAssistant, Content: response.Content})

		decision := parse.Parse(response.Content)

		a.logger.InfoContext(ctx, "step",
			slog.Int("step", step),
			slog.String("decision", decision.Kind.String()),
			slog.String("thought", utils.TruncateString(decision.Thought, logPreviewLen)),
		)

		switch decision.Kind {
		case parse.DecisionFinal:
			a.logger.InfoContext(ctx, "final answer",
				slog.Int("steps", step),
				slog.String("answer", utils.TruncateString(decision.Answer, logPreviewLen)),
			)
			return &Result{Answer: decision.Answer, Outcome: OutcomeFinalAnswer, Steps: step}, nil

		case parse.DecisionMalformed:
			a.logger.WarnContext(ctx, "unparseable model reply, aborting",
				slog.Int("step", step),
				slog.String("raw", utils.TruncateString(decision.Raw, logPreviewLen)),
			)
			return &Result{Answer: MalformedAnswer, Outcome: OutcomeMalformedReply, Steps: step}, nil

		case parse.DecisionAction:
			observation := Dispatch(ctx, a.registry, decision.Tool, decision.Arguments)
			a.logger.InfoContext(ctx, "observation",
				slog.Int("step", step),
				slog.String("tool", decision.Tool),
				slog.String("observation", utils.TruncateString(observation, logPreviewLen)),
			)
			messages = append(messages, ai.Message{Role: ai.RoleUser, Content: observationPrefix + observation})
		}
	}

	a.logger.WarnContext(ctx, "step budget exhausted", slog.Int("steps", a.maxSteps))
	return &Result{Answer: StepBudgetAnswer, Outcome: OutcomeStepBudgetExhausted, Steps: a.maxSteps}, nil
}
