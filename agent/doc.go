// Package agent implements the ReAct control loop: think, act, observe,
// repeat. The [Agent] owns the conversation for one task execution, drives
// the model through the middleware chain, and terminates on a final answer,
// an unparseable reply, or step-budget exhaustion. [Dispatch] is the single
// gateway between model decisions and tool execution.
package agent
