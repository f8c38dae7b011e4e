// Package ai defines the provider-neutral chat models and the [Provider]
// interface that concrete LLM backends implement. The agent core depends only
// on this package; provider specifics live in subpackages such as
// [github.com/vatsavvamsi-hub/autonomous-task-agent/providers/ai/openai].
package ai
