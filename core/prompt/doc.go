// Package prompt renders the system instruction that frames every agent run:
// the ReAct behavioral rules, a machine-parseable block describing each
// registered tool, and the environment facts the tools operate on.
package prompt
